package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Firebase bundles the clients created from one Firebase app.
type Firebase struct {
	App           *firebase.App
	Firestore     *firestore.Client
	StorageBucket string
}

// NewFirebase initializes the app from a service account file. An empty
// credentials path falls back to application default credentials.
func NewFirebase(ctx context.Context, projectID, credentialsFile, storageBucket string) (*Firebase, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: storageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore: %w", err)
	}

	return &Firebase{App: app, Firestore: client, StorageBucket: storageBucket}, nil
}

// Auth returns the ID token verifier client.
func (f *Firebase) Auth(ctx context.Context) (*auth.Client, error) {
	client, err := f.App.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
	}
	return client, nil
}

// Bucket returns the configured Cloud Storage bucket.
func (f *Firebase) Bucket(ctx context.Context) (*gcs.BucketHandle, error) {
	client, err := f.App.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase storage: %w", err)
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", f.StorageBucket, err)
	}
	return bucket, nil
}

func (f *Firebase) Close() error {
	return f.Firestore.Close()
}
