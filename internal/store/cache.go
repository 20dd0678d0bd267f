package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"atelier/internal/types"
)

var (
	bucketRecords      = []byte("records")
	bucketConsoleState = []byte("console_state")

	ErrNoCachedRecords = errors.New("no cached records")
)

const defaultUserKey = "default"

// Cache keeps the last-seen record listing and console state on disk
// so the CLI has something to show before (or without) the gateway.
type Cache struct {
	db *bolt.DB
	mu sync.Mutex
}

func OpenCache(path string) (*Cache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cache db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initCacheSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func initCacheSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRecords); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketConsoleState); err != nil {
			return err
		}
		return nil
	})
}

func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// SaveRecords replaces the cached listing for one user.
func (c *Cache) SaveRecords(ctx context.Context, user string, records []types.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if records == nil {
		records = []types.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		if b == nil {
			return errors.New("records bucket missing")
		}
		return b.Put(userKey(user), raw)
	})
}

// LoadRecords returns the cached listing, or ErrNoCachedRecords when
// the user has never synced.
func (c *Cache) LoadRecords(ctx context.Context, user string) ([]types.Record, error) {
	var out []types.Record
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		if b == nil {
			return nil
		}
		raw := b.Get(userKey(user))
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, &out)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNoCachedRecords
	}
	return out, nil
}

func (c *Cache) SaveConsoleState(ctx context.Context, user string, state *types.ConsoleState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if state == nil {
		return errors.New("console state is required")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConsoleState)
		if b == nil {
			return errors.New("console state bucket missing")
		}
		return b.Put(userKey(user), raw)
	})
}

// LoadConsoleState returns a zero state when nothing is cached.
func (c *Cache) LoadConsoleState(ctx context.Context, user string) (*types.ConsoleState, error) {
	state := &types.ConsoleState{}
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConsoleState)
		if b == nil {
			return nil
		}
		raw := b.Get(userKey(user))
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, state)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func userKey(user string) []byte {
	user = strings.TrimSpace(user)
	if user == "" {
		user = defaultUserKey
	}
	return []byte(user)
}
