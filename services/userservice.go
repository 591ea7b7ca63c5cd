package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"exale/model"
	"exale/store"
)

type UserService struct {
	store    store.Store
	activity *ActivityCache
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s, activity: NewActivityCache()}
}

var demoUsers = []model.User{
	{Name: "Alice Owner", Email: "alice@exale.net", Role: model.RoleOwner},
	{Name: "Bob Admin", Email: "bob@exale.net", Role: model.RoleAdmin},
	{Name: "Cathy Agent", Email: "cathy@exale.net", Role: model.RoleAgent},
}

// ResolveRole reads the role from the user's profile record. A stored guest
// role is kept as is; anyone signed in without a usable record is an agent.
func (u *UserService) ResolveRole(ctx context.Context, uid string) model.Role {
	if uid == "" {
		return model.RoleGuest
	}
	user, err := u.Get(ctx, uid)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("warning: could not fetch role for %s: %v", uid, err)
		}
		return model.RoleAgent
	}
	if role, ok := model.ParseRole(string(user.Role)); ok {
		return role
	}
	if strings.EqualFold(strings.TrimSpace(string(user.Role)), string(model.RoleGuest)) {
		return model.RoleGuest
	}
	return model.RoleAgent
}

func (u *UserService) Get(ctx context.Context, uid string) (model.User, error) {
	doc, err := u.store.Get(ctx, CollectionUsers, uid)
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := store.Decode(doc, &user); err != nil {
		return model.User{}, err
	}
	user.ID = doc.ID
	return user, nil
}

// UsersQuery reads the whole collection; records written by other tools may
// lack createdAt and must still be listed.
func UsersQuery() store.Query {
	return store.Query{Collection: CollectionUsers}
}

func DecodeUsers(docs []store.Doc) []model.User {
	return decodeAll(CollectionUsers, docs, func(u *model.User, id string) { u.ID = id })
}

func (u *UserService) List(ctx context.Context) ([]model.User, error) {
	docs, err := u.store.Query(ctx, UsersQuery())
	if err != nil {
		return nil, err
	}
	return DecodeUsers(docs), nil
}

func (u *UserService) UserExist(ctx context.Context, email string) (bool, error) {
	docs, err := u.store.Query(ctx, store.Query{Collection: CollectionUsers, Limit: 1}.Where("email", email))
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

// Create records a user profile. No identity account is created for it.
func (u *UserService) Create(ctx context.Context, s model.Session, name, email, role string) (string, error) {
	if err := requireOwner(s, "Only Owner can create users"); err != nil {
		return "", err
	}
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" {
		return "", invalid("Name and email required")
	}
	r, ok := model.ParseRole(role)
	if !ok {
		return "", invalid("Role must be owner, admin or agent")
	}
	exists, err := u.UserExist(ctx, email)
	if err != nil {
		return "", fmt.Errorf("check existing email: %w", err)
	}
	if exists {
		return "", invalid("Email is already registered")
	}
	return u.store.Add(ctx, CollectionUsers, map[string]interface{}{
		"name":      name,
		"email":     email,
		"role":      string(r),
		"createdAt": store.ServerTimestamp,
	})
}

func (u *UserService) ChangeRole(ctx context.Context, s model.Session, uid, role string) error {
	if err := requireOwner(s, "Only Owner can change roles."); err != nil {
		return err
	}
	r, ok := model.ParseRole(role)
	if !ok {
		return invalid("Role must be owner, admin or agent")
	}
	err := u.store.Update(ctx, CollectionUsers, uid, map[string]interface{}{"role": string(r)})
	if errors.Is(err, store.ErrNotFound) {
		return notFound("User not found")
	}
	return err
}

func (u *UserService) Seed(ctx context.Context, s model.Session) (int, error) {
	if err := requireOwner(s, "Only Owner can seed users."); err != nil {
		return 0, err
	}
	return SeedUsers(ctx, u.store)
}

// SeedUsers writes the demo owner, admin and agent profiles.
func SeedUsers(ctx context.Context, st store.Store) (int, error) {
	for i, d := range demoUsers {
		if _, err := st.Add(ctx, CollectionUsers, map[string]interface{}{
			"name":      d.Name,
			"email":     d.Email,
			"role":      string(d.Role),
			"createdAt": store.ServerTimestamp,
		}); err != nil {
			return i, fmt.Errorf("seed %s: %w", d.Email, err)
		}
	}
	return len(demoUsers), nil
}

// Delete removes only the profile record; tasks, events and comments that
// reference the user are left untouched.
func (u *UserService) Delete(ctx context.Context, s model.Session, uid string) error {
	if err := requireOwner(s, "Only Owner can delete users."); err != nil {
		return err
	}
	if _, err := u.store.Get(ctx, CollectionUsers, uid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("User not found")
		}
		return err
	}
	return u.store.Delete(ctx, CollectionUsers, uid)
}

// SetActivity echoes the new status immediately; persisting it is best
// effort and never fails the call.
func (u *UserService) SetActivity(ctx context.Context, s model.Session, activity string) (string, error) {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return "", invalid("Activity is required")
	}
	if s.UserID == "" {
		return activity, nil
	}
	u.activity.Set(s.UserID, activity)

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	go func() {
		defer cancel()
		if err := u.store.Update(writeCtx, CollectionUsers, s.UserID, map[string]interface{}{"activity": activity}); err != nil {
			log.Printf("warning: could not update user activity: %v", err)
		}
	}()
	return activity, nil
}

// Activity is the last status picked in this process, falling back to the
// stored one.
func (u *UserService) Activity(ctx context.Context, uid string) string {
	if uid == "" {
		return ""
	}
	if v, ok := u.activity.Get(uid); ok {
		return v
	}
	user, err := u.Get(ctx, uid)
	if err != nil {
		return ""
	}
	return user.Activity
}
