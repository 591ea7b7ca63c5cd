package connection

import (
	"context"
	"fmt"
	"log"

	"exale/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// Firebase holds the clients that share one Firebase app.
type Firebase struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

func FBConnection(ctx context.Context, cfg *config.Config) (*Firebase, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error getting Auth client: %w", err)
	}

	log.Println("Firestore connection successful")
	return &Firebase{Firestore: client, Auth: authClient}, nil
}
