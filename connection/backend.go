package connection

import (
	"context"
	"fmt"

	"exale/config"
	"exale/store"

	"firebase.google.com/go/auth"
)

// Backend is the document store plus, on the firestore backend, the Auth
// client of the same Firebase app.
type Backend struct {
	Store store.Store
	Auth  *auth.Client
}

func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendFirestore:
		fb, err := FBConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: store.NewFirestoreStore(fb.Firestore), Auth: fb.Auth}, nil
	case config.BackendSQLite:
		st, err := store.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: st}, nil
	case config.BackendMemory:
		return &Backend{Store: store.NewMemoryStore()}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
