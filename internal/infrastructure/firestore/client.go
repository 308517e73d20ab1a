package firestore

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agriconnect/pkg/config"
	"agriconnect/pkg/logger"
)

// NewClient opens a Firestore client for the session store. Credentials come
// from FIREBASE_SERVICE_ACCOUNT_JSON, then FIREBASE_SERVICE_ACCOUNT_PATH, then
// the application default credentials.
func NewClient(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	var opts []option.ClientOption

	switch {
	case cfg.ServiceAccountJSON != "":
		logger.Info("Using Firestore service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	case cfg.ServiceAccountPath != "":
		if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("service account file does not exist: %s", cfg.ServiceAccountPath)
		}
		logger.Info("Using Firestore service account from file: %s", cfg.ServiceAccountPath)
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	default:
		logger.Info("Using application default credentials for Firestore")
	}

	client, err := firestore.NewClient(ctx, cfg.FirestoreProject, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}

// Ping reads a document that need not exist. A NotFound answer still proves
// the project is reachable with the configured credentials.
func Ping(ctx context.Context, client *firestore.Client) error {
	_, err := client.Collection("dashboard_health").Doc("ping").Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}
