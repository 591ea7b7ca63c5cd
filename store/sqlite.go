package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps documents as JSON rows in a single local database file.
// Change notifications only cover writes made through this process.
type SQLiteStore struct {
	db  *sql.DB
	hub *broadcaster
	now func() time.Time
}

const timeKey = "$time"

func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		data_json TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL,
		PRIMARY KEY (collection, id)
	)`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, hub: newBroadcaster(), now: time.Now}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (Doc, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data_json FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Doc{}, ErrNotFound
	}
	if err != nil {
		return Doc{}, err
	}
	data, err := decodeJSON(raw)
	if err != nil {
		return Doc{}, fmt.Errorf("%s/%s: %w", collection, id, err)
	}
	return Doc{ID: id, Data: data}, nil
}

func (s *SQLiteStore) Query(ctx context.Context, q Query) ([]Doc, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, data_json FROM documents WHERE collection = ?`, q.Collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Doc
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		data, err := decodeJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", q.Collection, id, err)
		}
		docs = append(docs, Doc{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return applyQuery(docs, q), nil
}

func (s *SQLiteStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	id := uuid.New().String()
	if err := s.Set(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLiteStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	now := s.now()
	raw, err := encodeJSON(applyFields(nil, data, now))
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents(collection, id, data_json, updated_at_unixms) VALUES(?, ?, ?, ?)`,
		collection, id, raw, now.UnixMilli()); err != nil {
		return err
	}
	s.hub.notify(collection)
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT data_json FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	existing, err := decodeJSON(raw)
	if err != nil {
		return err
	}
	now := s.now()
	updated, err := encodeJSON(applyFields(existing, fields, now))
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET data_json = ?, updated_at_unixms = ? WHERE collection = ? AND id = ?`,
		updated, now.UnixMilli(), collection, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.hub.notify(collection)
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.hub.notify(collection)
	}
	return nil
}

func (s *SQLiteStore) Watch(ctx context.Context, q Query) (<-chan Snapshot, error) {
	return watchLocal(ctx, s.hub, q, s.Query), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func encodeJSON(data map[string]interface{}) (string, error) {
	b, err := json.Marshal(tagTimes(data))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeJSON(raw string) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var v map[string]interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return untagTimes(v).(map[string]interface{}), nil
}

// JSON has no timestamp type; times travel as {"$time": RFC3339Nano}.
func tagTimes(v interface{}) interface{} {
	switch tv := v.(type) {
	case time.Time:
		return map[string]interface{}{timeKey: tv.UTC().Format(time.RFC3339Nano)}
	case map[string]interface{}:
		m := make(map[string]interface{}, len(tv))
		for k, e := range tv {
			m[k] = tagTimes(e)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(tv))
		for i, e := range tv {
			s[i] = tagTimes(e)
		}
		return s
	}
	return v
}

func untagTimes(v interface{}) interface{} {
	switch tv := v.(type) {
	case json.Number:
		if n, err := tv.Int64(); err == nil {
			return n
		}
		f, _ := tv.Float64()
		return f
	case map[string]interface{}:
		if s, ok := tv[timeKey].(string); ok && len(tv) == 1 {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				return t
			}
		}
		m := make(map[string]interface{}, len(tv))
		for k, e := range tv {
			m[k] = untagTimes(e)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(tv))
		for i, e := range tv {
			s[i] = untagTimes(e)
		}
		return s
	}
	return v
}
