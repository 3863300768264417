package port

import (
	"context"
	"time"
)

// MediaStorage is an interface to define blob store interactions
type MediaStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// SignedURL returns a time-limited download URL for the object. URLs are
	// resolved on demand and must not be persisted.
	SignedURL(ctx context.Context, key string) (string, *time.Time, error)
	Remove(ctx context.Context, key string) error
}
