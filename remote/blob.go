package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

// BlobStore uploads binary objects such as receipt images
type BlobStore interface {
	// Upload stores r at path and returns a reference to the object
	Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error)
}

// StorageBlobStore writes to the default Firebase Storage bucket
type StorageBlobStore struct {
	bucket *storage.BucketHandle
}

func NewStorageBlobStore(ctx context.Context, app *firebase.App) (*StorageBlobStore, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("open Firebase Storage client: %w", err)
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("open default bucket: %w", err)
	}
	return &StorageBlobStore{bucket: bucket}, nil
}

func (s *StorageBlobStore) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	obj := s.bucket.Object(path)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finish upload %s: %w", path, err)
	}
	return fmt.Sprintf("gs://%s/%s", obj.BucketName(), obj.ObjectName()), nil
}

// MemoryBlobStore keeps uploads in memory
type MemoryBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{objects: make(map[string][]byte)}
}

func (m *MemoryBlobStore) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = buf.Bytes()
	return "mem://" + path, nil
}

// Object returns the bytes stored at path
func (m *MemoryBlobStore) Object(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[path]
	return b, ok
}
