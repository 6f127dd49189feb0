package repo_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/intelhub/backend/internal/repo"
)

// newTestStore spins up an in-process miniredis and returns a Store pointed
// at it. The server and client are torn down with the test.
func newTestStore(t *testing.T) *repo.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return repo.NewStore(rdb)
}
