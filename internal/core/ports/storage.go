package ports

import (
	"context"
	"errors"
	"io"
	"time"
)

// KeyValueStore is a string store with browser-storage semantics. Two
// instances back every scope: a short-lived one bound to the tab and a
// durable one bound to the device.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

var (
	ErrBucketNotFound = errors.New("bucket not found")
	ErrObjectNotFound = errors.New("object not found")
)

// ObjectStorage stores files in named buckets.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, path string, r io.Reader, contentType string) error
	PublicURL(bucket, path string) string
	SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error)
	Remove(ctx context.Context, bucket string, paths ...string) error
}
