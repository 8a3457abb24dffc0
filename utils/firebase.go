// utils/firebase.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"asokatrip/config"
)

// FirebaseClients are the Firebase project handles shared by the services.
type FirebaseClients struct {
	App       *firebase.App
	Auth      *auth.Client
	Firestore *firestore.Client
	Messaging *messaging.Client
	Storage   *storage.Client
	ProjectID string
}

// InitFirebase initializes the Firebase App and its clients from the service account file.
// Firestore is only opened when it is the configured document store.
func InitFirebase(ctx context.Context, cfg *config.Config) (*FirebaseClients, error) {
	opt := option.WithCredentialsFile(cfg.FirebaseCredentialsFile)

	projectID := cfg.FirebaseProjectID
	if projectID == "" {
		sa, err := readServiceAccount(cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		projectID = sa.ProjectID
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: cfg.FirebaseBucket,
	}, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	fc := &FirebaseClients{App: app, ProjectID: projectID}
	if fc.Auth, err = app.Auth(ctx); err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}
	if fc.Messaging, err = app.Messaging(ctx); err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}
	if cfg.StoreBackend != "mongo" {
		if fc.Firestore, err = app.Firestore(ctx); err != nil {
			return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
		}
	}
	if cfg.StorageBackend != "cloudinary" {
		if fc.Storage, err = storage.NewClient(ctx, opt); err != nil {
			return nil, fmt.Errorf("firebase: error creating storage client: %w", err)
		}
	}

	GetLogger().Info("Firebase initialized", zap.String("projectId", projectID))
	return fc, nil
}

// Close releases the clients that hold connections.
func (f *FirebaseClients) Close() {
	if f.Firestore != nil {
		_ = f.Firestore.Close()
	}
	if f.Storage != nil {
		_ = f.Storage.Close()
	}
}

func readServiceAccount(path string) (*config.ServiceAccount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("firebase: reading service account: %w", err)
	}
	var sa config.ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("firebase: parsing service account: %w", err)
	}
	if sa.ProjectID == "" {
		return nil, fmt.Errorf("firebase: service account %s has no project_id", path)
	}
	return &sa, nil
}
