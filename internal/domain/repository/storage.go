package repository

import (
	"context"
	"io"
)

// StoredObject is an object read back from storage, metadata included.
type StoredObject struct {
	Key         string
	ContentType string
	Size        int64
	Checksum    string
	Content     io.ReadCloser
}

// ObjectStorage defines the interface for object storage operations.
// The catalog references stored payloads by key strings only; the storage
// owns the binary payload lifetime.
type ObjectStorage interface {
	// Store writes an object under the given key.
	Store(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Get retrieves an object. Returns ErrObjectNotFound if absent.
	// Caller is responsible for closing the object's Content.
	Get(ctx context.Context, key string) (*StoredObject, error)

	// List returns the keys stored under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// DeleteAll removes every named object. Missing objects are ignored.
	DeleteAll(ctx context.Context, keys []string) error

	// Exists checks whether an object is stored under the key.
	Exists(ctx context.Context, key string) (bool, error)
}
