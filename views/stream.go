package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"exale/services"
	"exale/store"

	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html
var templatesFS embed.FS

const keepAliveInterval = 25 * time.Second

// Streamer serves views from a store: one-off snapshots as view models and
// live subscriptions as datastar element patches.
type Streamer struct {
	store store.Store
	tasks *services.TaskService
	tmpl  *template.Template
}

func NewStreamer(st store.Store, tasks *services.TaskService) (*Streamer, error) {
	tmpl, err := template.New("views").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Streamer{store: st, tasks: tasks, tmpl: tmpl}, nil
}

func (s *Streamer) Snapshot(ctx context.Context, v View, req Request) (ViewModel, error) {
	docs, err := s.store.Query(ctx, v.Query())
	if err != nil {
		return ViewModel{}, err
	}
	vm, err := v.Build(docs, req)
	if err != nil {
		return ViewModel{}, err
	}
	s.backfill(ctx, vm)
	return vm, nil
}

// Fragment renders the list markup for vm.
func (s *Streamer) Fragment(vm ViewModel) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, vm.View, vm); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Selector is the element whose contents a view's fragment replaces.
func Selector(v View) string {
	return "#" + v.Name + "-list"
}

// Stream holds one watch per subscriber and re-renders the whole list on
// every snapshot until the client goes away.
func (s *Streamer) Stream(w http.ResponseWriter, r *http.Request, v View, req Request) {
	sse := datastar.NewSSE(w, r)
	ctx, cancel := context.WithCancel(sse.Context())
	defer cancel()

	snaps, err := s.store.Watch(ctx, v.Query())
	if err != nil {
		_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
		return
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	selector := Selector(v)
	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			if snap.Err != nil {
				log.Printf("warning: %s view subscription failed: %v", v.Name, snap.Err)
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, snap.Err.Error()))
				return
			}
			vm, err := v.Build(snap.Docs, req)
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			html, err := s.Fragment(vm)
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			_ = sse.PatchElements(html, datastar.WithSelector(selector), datastar.WithMode(datastar.ElementPatchModeInner))
			_ = sse.MarshalAndPatchSignals(map[string]any{v.Name + "Count": vm.Count})
			s.backfill(ctx, vm)
		}
	}
}

// backfill hands out serial numbers to the tasks that rendered without one.
// The resulting writes produce the next snapshot.
func (s *Streamer) backfill(ctx context.Context, vm ViewModel) {
	if s.tasks == nil || len(vm.pending) == 0 {
		return
	}
	s.tasks.BackfillSerials(ctx, vm.pending)
}
