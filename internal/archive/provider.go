// Package archive keeps compressed board snapshots in a file system or an
// S3-compatible bucket.
package archive

import (
	"context"
	"time"
)

// Object describes one stored snapshot.
type Object struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for snapshot object storage. Keys use forward
// slashes and are relative to the provider root.
type Provider interface {
	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]Object, error)
	// Read returns the object's bytes, or apperr.ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write stores data under key, replacing any previous object.
	Write(ctx context.Context, key string, data []byte) error
	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error
}
