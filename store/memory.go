package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps every collection in process memory. Watches are fed by
// an in-process hub that fires after each write.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
	hub         *broadcaster
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]interface{}),
		hub:         newBroadcaster(),
		now:         time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.collections[collection][id]
	if !ok {
		return Doc{}, ErrNotFound
	}
	return Doc{ID: id, Data: cloneData(data)}, nil
}

func (s *MemoryStore) Query(ctx context.Context, q Query) ([]Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	docs := make([]Doc, 0, len(s.collections[q.Collection]))
	for id, data := range s.collections[q.Collection] {
		docs = append(docs, Doc{ID: id, Data: cloneData(data)})
	}
	s.mu.RUnlock()
	return applyQuery(docs, q), nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	id := uuid.New().String()
	if err := s.Set(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	s.mu.Lock()
	coll := s.collections[collection]
	if coll == nil {
		coll = make(map[string]map[string]interface{})
		s.collections[collection] = coll
	}
	coll[id] = applyFields(nil, data, s.now())
	s.mu.Unlock()

	s.hub.notify(collection)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	existing, ok := s.collections[collection][id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.collections[collection][id] = applyFields(existing, fields, s.now())
	s.mu.Unlock()

	s.hub.notify(collection)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	_, ok := s.collections[collection][id]
	delete(s.collections[collection], id)
	s.mu.Unlock()

	if ok {
		s.hub.notify(collection)
	}
	return nil
}

func (s *MemoryStore) Watch(ctx context.Context, q Query) (<-chan Snapshot, error) {
	return watchLocal(ctx, s.hub, q, s.Query), nil
}

func (s *MemoryStore) Close() error { return nil }
