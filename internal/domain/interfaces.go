package domain

import (
	"context"
	"time"
)

// Fetcher resolves a source descriptor (URL or local path) to text.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (string, error)
	Close() error
}

// Cache is a key-value store for fetched source text.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Has(ctx context.Context, key string) bool
	Delete(ctx context.Context, key string) error
	Close() error
}
