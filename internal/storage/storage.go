// Package storage defines the object storage interface backing the asset gateway.
package storage

import (
	"context"
	"time"
)

// ObjectInfo is backend metadata for a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStorage abstracts the bucket. Implemented by the S3 client and by
// test fakes. Implementations must be safe for concurrent use.
type ObjectStorage interface {
	// Put stores data under key with the given content type. Key uniqueness
	// is the caller's responsibility.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// List returns metadata for the bucket's current contents.
	List(ctx context.Context) ([]ObjectInfo, error)
	// Delete removes an object. Returns errs.ErrNotFound if the object is absent.
	Delete(ctx context.Context, key string) error
	// PublicURL resolves the public URL for a key. Pure, no I/O.
	PublicURL(key string) string
}
