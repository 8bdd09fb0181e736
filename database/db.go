package database

import (
	"context"
	"fmt"
	"time"

	"tripnest/config"
	"tripnest/database/docstore"

	firebase "firebase.google.com/go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Supported DOCSTORE_DRIVER values.
const (
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
	DriverMemory    = "memory"
)

// InitStore opens the document store selected by cfg. app is only used by the
// firestore driver and may be nil otherwise.
func InitStore(ctx context.Context, cfg *config.Config, app *firebase.App, logger *zap.Logger) (docstore.Store, error) {
	switch cfg.DocstoreDriver {
	case DriverFirestore:
		if app == nil {
			return nil, fmt.Errorf("firestore driver requires a firebase app")
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to open firestore: %w", err)
		}
		logger.Info("Connected to Firestore", zap.String("project", cfg.FirebaseProjectID))
		return docstore.NewFirestoreStore(client), nil

	case DriverMongo:
		db, err := connectMongo(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to MongoDB successfully", zap.String("database", cfg.DatabaseName))
		return docstore.NewMongoStore(db), nil

	case DriverMemory, "":
		logger.Warn("Using in-memory document store; data is lost on restart")
		return docstore.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown DOCSTORE_DRIVER %q", cfg.DocstoreDriver)
}

func connectMongo(ctx context.Context, uri, name string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client.Database(name), nil
}
