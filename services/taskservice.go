package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"exale/model"
	"exale/store"
)

type TaskService struct {
	store store.Store
	now   func() time.Time
}

func NewTaskService(s store.Store) *TaskService {
	return &TaskService{store: s, now: time.Now}
}

const serialAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewSerial builds TSK-<unix ms in base36>-<4 random base36 chars>.
func NewSerial(now time.Time) string {
	var suffix [4]byte
	for i := range suffix {
		suffix[i] = serialAlphabet[rand.IntN(len(serialAlphabet))]
	}
	return "TSK-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)) + "-" + string(suffix[:])
}

func TasksQuery() store.Query {
	return store.Query{Collection: CollectionTasks, OrderBy: "createdAt", Direction: store.Desc}
}

func PriorityQuery() store.Query {
	return store.Query{Collection: CollectionTasks, OrderBy: "priority", Direction: store.Desc, Limit: 3}
}

func DecodeTasks(docs []store.Doc) []model.Task {
	return decodeAll(CollectionTasks, docs, func(t *model.Task, id string) { t.ID = id })
}

func (t *TaskService) List(ctx context.Context) ([]model.Task, error) {
	docs, err := t.store.Query(ctx, TasksQuery())
	if err != nil {
		return nil, err
	}
	return DecodeTasks(docs), nil
}

func (t *TaskService) TopPriority(ctx context.Context) ([]model.Task, error) {
	docs, err := t.store.Query(ctx, PriorityQuery())
	if err != nil {
		return nil, err
	}
	return DecodeTasks(docs), nil
}

func (t *TaskService) Get(ctx context.Context, id string) (model.Task, error) {
	doc, err := t.store.Get(ctx, CollectionTasks, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Task{}, notFound("Task not found")
		}
		return model.Task{}, err
	}
	var task model.Task
	if err := store.Decode(doc, &task); err != nil {
		return model.Task{}, err
	}
	task.ID = doc.ID
	return task, nil
}

// BackfillSerials gives every task without a serial number a fresh one.
// Failures are skipped; the next snapshot retries.
func (t *TaskService) BackfillSerials(ctx context.Context, tasks []model.Task) int {
	n := 0
	for _, task := range tasks {
		if task.SerialNumber != "" {
			continue
		}
		if err := t.store.Update(ctx, CollectionTasks, task.ID, map[string]interface{}{"serialNumber": NewSerial(t.now())}); err == nil {
			n++
		}
	}
	return n
}

func (t *TaskService) SetStatus(ctx context.Context, s model.Session, id, status string) error {
	if err := requireSignedIn(s); err != nil {
		return err
	}
	st, ok := model.ParseStatus(status)
	if !ok {
		return invalid("Status must be one of new, inprogress, accepted, rejected")
	}
	return t.update(ctx, id, map[string]interface{}{"status": string(st)})
}

func (t *TaskService) AddComment(ctx context.Context, s model.Session, id, text string) (model.Comment, error) {
	if err := requireSignedIn(s); err != nil {
		return model.Comment{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Comment{}, invalid("Comment text is required")
	}
	c := model.Comment{Author: s.Author(), Text: text, Timestamp: t.now().UnixMilli()}
	if err := t.update(ctx, id, map[string]interface{}{"comments": store.ArrayUnion(c.Fields())}); err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

func (t *TaskService) AssignToSelf(ctx context.Context, s model.Session, id string) (string, error) {
	if err := requireSignedIn(s); err != nil {
		return "", err
	}
	if s.Email == "" {
		return "", invalid("Please login to assign.")
	}
	return s.Email, t.update(ctx, id, map[string]interface{}{"assignee": s.Email})
}

func (t *TaskService) Delete(ctx context.Context, s model.Session, id string) error {
	if err := requireManager(s, "Only Owners/Admins can delete tasks."); err != nil {
		return err
	}
	if _, err := t.Get(ctx, id); err != nil {
		return err
	}
	return t.store.Delete(ctx, CollectionTasks, id)
}

// Create files a new request; it enters the workflow as "new" with its
// serial already assigned.
func (t *TaskService) Create(ctx context.Context, task model.Task) (string, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return "", invalid("Title is required")
	}
	if task.Priority < 0 || task.Priority > 100 {
		return "", invalid("Priority must be between 0 and 100")
	}
	now := t.now()
	task.Status = model.StatusNew
	task.Assignee = ""
	task.Comments = nil
	task.CreatedAt = now
	task.SerialNumber = NewSerial(now)
	return t.store.Add(ctx, CollectionTasks, task.Fields())
}

var demoTasks = []model.Task{
	{Title: "Fix landing hero contrast", Company: "Exale", Email: "client1@example.com", Message: "Adjust hero overlay and CTA colors", Priority: 90, Status: model.StatusNew},
	{Title: "Integrate payment provider", Company: "ShopCo", Email: "pm@shopco.com", Message: "Add Stripe integration to checkout", Priority: 80, Status: model.StatusInProgress},
	{Title: "Audit security rules", Company: "Internal", Email: "sec@exale.net", Message: "Review Firestore rules and auth flows", Priority: 95, Status: model.StatusNew},
	{Title: "Design partner page", Company: "Foundry", Email: "hello@foundry.co", Message: "Create partners listing and modal details", Priority: 70, Status: model.StatusAccepted},
	{Title: "Mobile nav accessibility", Company: "Exale", Email: "ux@exale.net", Message: "Add escape-close and aria attributes", Priority: 85, Status: model.StatusInProgress},
}

func (t *TaskService) Seed(ctx context.Context, s model.Session) (int, error) {
	if err := requireManager(s, "Only Owners/Admins can seed demo tasks."); err != nil {
		return 0, err
	}
	return SeedTasks(ctx, t.store, t.now())
}

// SeedTasks writes the demo tasks without serial numbers; they get one the
// first time the task list is rendered.
func SeedTasks(ctx context.Context, st store.Store, now time.Time) (int, error) {
	for i, d := range demoTasks {
		d.CreatedAt = now
		if _, err := st.Add(ctx, CollectionTasks, d.Fields()); err != nil {
			return i, fmt.Errorf("seed %q: %w", d.Title, err)
		}
	}
	return len(demoTasks), nil
}

func (t *TaskService) update(ctx context.Context, id string, fields map[string]interface{}) error {
	err := t.store.Update(ctx, CollectionTasks, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Task not found")
	}
	return err
}
