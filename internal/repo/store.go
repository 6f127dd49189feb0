// Package repo implements the persistence layer on a remote Redis key-value
// store. Every aggregate lives under its own key namespace with JSON-encoded
// values. Creates and updates use existence preconditions (SET NX / SET XX)
// instead of content-version checks: two concurrent updates to the same
// record race, and the later write fully overwrites the earlier one.
package repo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/intelhub/backend/internal/domain"
)

// Key namespaces, one per aggregate. Inverted-index keys carry two more
// segments: tagindex:<slug>:<entityType>#<entityID>.
const (
	keyTag        = "tag:"
	keyTagIndex   = "tagindex:"
	keyCompetitor = "competitor:"
	keyWishlist   = "wishlist:"
	keyVendor     = "vendor:"
	keyProduct    = "product:"
)

// scanCount is the COUNT hint passed to SCAN. Full-catalog scans assume a
// small data set; at scale the uniqueness checks built on them need a
// secondary lookup structure instead.
const scanCount = 200

// Store wraps a Redis client with the primitives every repository uses:
// point get/put/delete with existence preconditions, prefix scans, and
// pipelined batch writes. Batches are not atomic; a crash mid-pipeline
// leaves a prefix of the batch applied.
type Store struct {
	rdb *redis.Client
}

// Dial connects to the Redis instance at redisURL and verifies it is
// reachable before returning.
func Dial(ctx context.Context, redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("repo.Dial: parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("repo.Dial: connect to redis: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

// NewStore wraps an existing Redis client. Used by tests to point the
// repositories at a miniredis instance.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Ping checks that the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

// Close releases the underlying client connections.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// storeErr wraps an unexpected Redis failure in the ErrStore sentinel.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStore, err)
}

// get returns the value at key, or domain.ErrNotFound if the key is absent.
func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return raw, nil
}

// putIfAbsent writes value at key only if the key does not exist.
// Returns domain.ErrConflict if it does.
func (s *Store) putIfAbsent(ctx context.Context, key string, value []byte) error {
	ok, err := s.rdb.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return domain.ErrConflict
	}
	return nil
}

// putIfPresent writes value at key only if the key already exists.
// Returns domain.ErrNotFound if it does not.
func (s *Store) putIfPresent(ctx context.Context, key string, value []byte) error {
	ok, err := s.rdb.SetXX(ctx, key, value, 0).Result()
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// deleteIfPresent removes key, returning domain.ErrNotFound if it was absent.
func (s *Store) deleteIfPresent(ctx context.Context, key string) error {
	n, err := s.rdb.Del(ctx, key).Result()
	if err != nil {
		return storeErr(err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanKeys walks the keyspace under prefix page by page and returns every
// matching key, sorted for deterministic iteration.
func (s *Store) scanKeys(ctx context.Context, prefix string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		page, next, err := s.rdb.Scan(ctx, cursor, prefix+"*", scanCount).Result()
		if err != nil {
			return nil, storeErr(err)
		}
		keys = append(keys, page...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(keys)
	// SCAN may report a key more than once across pages; drop adjacent dups.
	deduped := keys[:0]
	for i, k := range keys {
		if i > 0 && keys[i-1] == k {
			continue
		}
		deduped = append(deduped, k)
	}
	return deduped, nil
}

// scanValues returns the values of every key under prefix. Keys deleted
// between the scan and the fetch are skipped.
func (s *Store) scanValues(ctx context.Context, prefix string) ([][]byte, error) {
	keys, err := s.scanKeys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}
	values := make([][]byte, 0, len(keys))
	for start := 0; start < len(keys); start += scanCount {
		end := min(start+scanCount, len(keys))
		page, err := s.rdb.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return nil, storeErr(err)
		}
		for _, v := range page {
			raw, ok := v.(string)
			if !ok {
				continue
			}
			values = append(values, []byte(raw))
		}
	}
	return values, nil
}

// putBatch writes every entry in one pipeline. Not atomic.
func (s *Store) putBatch(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}
	pipe := s.rdb.Pipeline()
	for key, value := range entries {
		pipe.Set(ctx, key, value, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr(err)
	}
	return nil
}

// deleteBatch removes every key in one pipeline. Missing keys are ignored.
func (s *Store) deleteBatch(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	pipe := s.rdb.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr(err)
	}
	return nil
}
