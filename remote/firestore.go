package remote

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
)

// FirestoreStore writes documents to Cloud Firestore
type FirestoreStore struct {
	client  *firestore.Client
	timeout time.Duration
}

// NewFirestoreStore opens a Firestore client from app. A positive timeout
// bounds every call.
func NewFirestoreStore(ctx context.Context, app *firebase.App, timeout time.Duration) (*FirestoreStore, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open Firestore client: %w", err)
	}
	return &FirestoreStore{client: client, timeout: timeout}, nil
}

func (s *FirestoreStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// SetDocument replaces the whole document at path
func (s *FirestoreStore) SetDocument(ctx context.Context, path string, fields map[string]interface{}) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc := s.client.Doc(path)
	if doc == nil {
		return fmt.Errorf("invalid document path %q", path)
	}
	if _, err := doc.Set(ctx, fields); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) DeleteDocument(ctx context.Context, path string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc := s.client.Doc(path)
	if doc == nil {
		return fmt.Errorf("invalid document path %q", path)
	}
	if _, err := doc.Delete(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
