// Package store is the typed client every view and service uses to reach the
// document backend. Records are untyped documents grouped in named
// collections; the backend assigns keys and pushes live query results.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

type Direction int

const (
	Asc Direction = iota
	Desc
)

// Filter is an equality filter on a top-level field.
type Filter struct {
	Field string
	Value interface{}
}

type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Direction  Direction
	Limit      int
}

func (q Query) Where(field string, value interface{}) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Value: value})
	return q
}

type Doc struct {
	ID   string
	Data map[string]interface{}
}

// Snapshot is the full ordered result of a watched query. A snapshot with a
// non-nil Err is the last one sent on its channel.
type Snapshot struct {
	Docs []Doc
	Err  error
}

type Store interface {
	Get(ctx context.Context, collection, id string) (Doc, error)
	Query(ctx context.Context, q Query) ([]Doc, error)
	Add(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	Watch(ctx context.Context, q Query) (<-chan Snapshot, error)
	Close() error
}

type serverTimestamp struct{}

// ServerTimestamp is replaced by the backend's clock when written.
var ServerTimestamp interface{} = serverTimestamp{}

type arrayUnion struct {
	values []interface{}
}

// ArrayUnion appends each value to an array field unless an equal element is
// already present.
func ArrayUnion(values ...interface{}) interface{} {
	return arrayUnion{values: values}
}
