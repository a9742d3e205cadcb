package cache

import (
	"context"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sgmodkit/sgmerge/internal/domain"
)

// BadgerCache stores fetched source text in BadgerDB, keyed by source URL.
type BadgerCache struct {
	db *badger.DB
}

// Ensure BadgerCache implements domain.Cache
var _ domain.Cache = (*BadgerCache)(nil)

// Options contains cache configuration options
type Options struct {
	Directory string
	InMemory  bool
}

// NewBadgerCache opens (or creates) the cache database.
func NewBadgerCache(opts Options) (*BadgerCache, error) {
	var badgerOpts badger.Options

	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Directory == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			opts.Directory = homeDir + "/.sgmerge/cache"
		}

		if err := os.MkdirAll(opts.Directory, 0755); err != nil {
			return nil, err
		}

		badgerOpts = badger.DefaultOptions(opts.Directory)
	}

	badgerOpts = badgerOpts.WithLogger(nil)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	return &BadgerCache{db: db}, nil
}

// Get retrieves cached source text.
func (c *BadgerCache) Get(ctx context.Context, key string) ([]byte, error) {
	cacheKey := GenerateKey(key)

	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cacheKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return domain.ErrCacheMiss
			}
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})

	if err != nil {
		return nil, err
	}

	return value, nil
}

// Set stores source text with a TTL.
func (c *BadgerCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cacheKey := GenerateKey(key)

	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(cacheKey), value)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Has checks if a key exists in cache
func (c *BadgerCache) Has(ctx context.Context, key string) bool {
	cacheKey := GenerateKey(key)

	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(cacheKey))
		return err
	})

	return err == nil
}

// Delete removes a key from cache
func (c *BadgerCache) Delete(ctx context.Context, key string) error {
	cacheKey := GenerateKey(key)

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(cacheKey))
	})
}

// Close releases cache resources
func (c *BadgerCache) Close() error {
	return c.db.Close()
}

// Clear removes all entries from the cache
func (c *BadgerCache) Clear() error {
	return c.db.DropAll()
}
