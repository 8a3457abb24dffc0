package database

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"asokatrip/config"
	"asokatrip/database/docstore"
	bookingRepo "asokatrip/database/repository/booking"
	catalogRepo "asokatrip/database/repository/catalog"
	contentRepo "asokatrip/database/repository/content"
	"asokatrip/utils"
)

// InitDB connects to MongoDB and verifies the connection.
func InitDB(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	utils.GetLogger().Info("Connected to MongoDB successfully", zap.String("database", "mongo"))
	return client, nil
}

// OpenStore builds the document store selected by STORE_BACKEND. fs is only used for the
// firestore backend and may be nil otherwise.
func OpenStore(ctx context.Context, cfg *config.Config, fs *firestore.Client) (docstore.Store, error) {
	switch cfg.StoreBackend {
	case "mongo":
		client, err := InitDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store := docstore.NewMongoStore(client, cfg.DatabaseName)
		if err := EnsureIndexes(ctx, store.Database()); err != nil {
			utils.GetLogger().Warn("failed to create indexes", zap.Error(err))
		}
		return store, nil
	case "firestore", "":
		if fs == nil {
			return nil, fmt.Errorf("firestore backend selected but no firestore client was initialised")
		}
		return docstore.NewFirestoreStore(fs), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// EnsureIndexes creates every MongoDB index the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, ensure := range []func(context.Context, *mongo.Database) error{
		bookingRepo.EnsureIndexes,
		catalogRepo.EnsureIndexes,
		contentRepo.EnsureIndexes,
	} {
		if err := ensure(ctx, db); err != nil {
			return err
		}
	}
	return nil
}
