package database

import (
	"context"
	"fmt"

	"tripnest/config"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NeedsFirebase reports whether any configured component talks to Firebase.
func NeedsFirebase(cfg *config.Config) bool {
	return cfg.DocstoreDriver == DriverFirestore || cfg.AuthProvider == "firebase" || cfg.PushEnabled
}

// InitFirebase creates the Firebase app shared by Firestore, Auth and Messaging.
func InitFirebase(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	return app, nil
}
