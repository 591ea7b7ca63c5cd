package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore talks to Cloud Firestore. Live queries are Firestore query
// snapshots, so changes made by any client reach every watcher.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Doc, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return Doc{}, mapFirestoreErr(err)
	}
	if !snap.Exists() {
		return Doc{}, ErrNotFound
	}
	return Doc{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) Query(ctx context.Context, q Query) ([]Doc, error) {
	iter := s.query(q).Documents(ctx)
	defer iter.Stop()

	var docs []Doc
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapFirestoreErr(err)
		}
		docs = append(docs, Doc{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, toFirestoreFields(data))
	if err != nil {
		return "", mapFirestoreErr(err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, toFirestoreFields(data))
	return mapFirestoreErr(err)
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	var updates []firestore.Update
	for path, value := range toFirestoreFields(fields) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	return mapFirestoreErr(err)
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return mapFirestoreErr(err)
}

func (s *FirestoreStore) Watch(ctx context.Context, q Query) (<-chan Snapshot, error) {
	it := s.query(q).Snapshots(ctx)
	out := make(chan Snapshot)
	go func() {
		defer close(out)
		defer it.Stop()
		for {
			qs, err := it.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				select {
				case out <- Snapshot{Err: mapFirestoreErr(err)}:
				case <-ctx.Done():
				}
				return
			}
			snaps, err := qs.Documents.GetAll()
			docs := make([]Doc, 0, len(snaps))
			for _, snap := range snaps {
				docs = append(docs, Doc{ID: snap.Ref.ID, Data: snap.Data()})
			}
			select {
			case out <- Snapshot{Docs: docs, Err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return out, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) query(q Query) firestore.Query {
	query := s.client.Collection(q.Collection).Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, "==", f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Direction == Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	return query
}

func toFirestoreFields(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		switch tv := v.(type) {
		case serverTimestamp:
			out[k] = firestore.ServerTimestamp
		case arrayUnion:
			out[k] = firestore.ArrayUnion(tv.values...)
		default:
			out[k] = v
		}
	}
	return out
}

func mapFirestoreErr(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return fmt.Errorf("firestore: %w", err)
}
