package interfaces

import (
	"context"
	"io"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
)

// Cache is a byte oriented key value store with expiry.
type Cache interface {
	// Get returns the value and true, or false on a miss
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX stores value only when key is absent and reports whether it did
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

type SearchIndex interface {
	Index(ctx context.Context, doc *model.SearchDocument) error
	Remove(ctx context.Context, kind types.ResourceKind, id string) error
	Search(ctx context.Context, query model.SearchQuery) ([]*model.SearchHit, error)
}

// BlobStore keeps uploaded document content.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Notifier delivers notifications to one external integration.
type Notifier interface {
	Name() string
	// Configured is false when the adapter runs in dry-run mode
	Configured() bool
	Notify(ctx context.Context, n *model.Notification) error
}
