package label

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grouplabel/grouplabel/store"
	"github.com/grouplabel/grouplabel/store/db/sqlite"
	"github.com/grouplabel/grouplabel/store/test"
)

// countingDriver wraps a real driver and counts membership list queries,
// optionally holding them until released.
type countingDriver struct {
	store.Driver
	listCalls atomic.Int64
	gate      chan struct{} // nil means no gating
}

func (d *countingDriver) ListMemberships(ctx context.Context, find *store.FindMembership) ([]*store.Membership, error) {
	d.listCalls.Add(1)
	if d.gate != nil {
		<-d.gate
	}
	return d.Driver.ListMemberships(ctx, find)
}

func newCountingStore(ctx context.Context, t *testing.T) (*store.Store, *countingDriver) {
	p := test.GetTestingProfile(t)
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)

	counting := &countingDriver{Driver: driver}
	st := store.New(counting, p)
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { _ = st.Close() })
	return st, counting
}

func TestCacheMemoizesAndInvalidates(t *testing.T) {
	ctx := context.Background()
	st, counting := newCountingStore(ctx, t)
	cache := NewCache(NewResolver(st, clock.NewMock()))

	group, err := st.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 1})
	require.NoError(t, err)

	prefix, err := cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, NoneLabel, prefix)
	callsAfterFirst := counting.listCalls.Load()

	// Hit path: no further backend traffic.
	prefix, err = cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, NoneLabel, prefix)
	assert.Equal(t, callsAfterFirst, counting.listCalls.Load())

	// A direct ledger write without invalidation is allowed to go unseen;
	// that is the explicit-invalidation contract.
	_, err = st.CreateMembership(ctx, &store.Membership{SubjectID: "u1", GroupID: group.ID})
	require.NoError(t, err)
	prefix, err = cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, NoneLabel, prefix)

	cache.Invalidate("u1")
	prefix, err = cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "&6VIP", prefix)
}

func TestCacheForceRefresh(t *testing.T) {
	ctx := context.Background()
	ts := test.NewTestingStore(ctx, t)
	cache := NewCache(NewResolver(ts, clock.NewMock()))

	group, err := ts.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 1})
	require.NoError(t, err)

	prefix, err := cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, NoneLabel, prefix)

	_, err = ts.CreateMembership(ctx, &store.Membership{SubjectID: "u1", GroupID: group.ID})
	require.NoError(t, err)

	prefix, err = cache.ForceRefresh(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "&6VIP", prefix)
}

func TestCacheConcurrentMissCoalescing(t *testing.T) {
	ctx := context.Background()
	st, counting := newCountingStore(ctx, t)
	cache := NewCache(NewResolver(st, clock.NewMock()))

	group, err := st.CreateGroup(ctx, &store.Group{Name: "vip", Prefix: "&6VIP", Weight: 1})
	require.NoError(t, err)
	_, err = st.CreateMembership(ctx, &store.Membership{SubjectID: "u1", GroupID: group.ID})
	require.NoError(t, err)

	counting.gate = make(chan struct{})

	const n = 16
	results := make([]string, n)
	var started, done sync.WaitGroup
	started.Add(n)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			started.Done()
			defer done.Done()
			prefix, err := cache.Get(ctx, "u1")
			assert.NoError(t, err)
			results[i] = prefix
		}(i)
	}
	started.Wait()
	close(counting.gate)
	done.Wait()

	for _, prefix := range results {
		assert.Equal(t, "&6VIP", prefix)
	}
	// One resolution: one reconcile pass plus one live read of the ledger.
	assert.Equal(t, int64(2), counting.listCalls.Load())
}

func TestCacheInvalidateDuringResolveDropsStaleValue(t *testing.T) {
	ctx := context.Background()
	st, counting := newCountingStore(ctx, t)
	cache := NewCache(NewResolver(st, clock.NewMock()))

	counting.gate = make(chan struct{})

	resolved := make(chan struct{})
	go func() {
		defer close(resolved)
		_, err := cache.Get(ctx, "u1")
		assert.NoError(t, err)
	}()

	// Let the resolve reach the backend, then invalidate underneath it.
	counting.gate <- struct{}{}
	cache.Invalidate("u1")
	counting.gate <- struct{}{}
	close(counting.gate)
	<-resolved

	// The in-flight result must not have been published.
	assert.Equal(t, 0, cache.Size())
}

func TestCachePurge(t *testing.T) {
	ctx := context.Background()
	ts := test.NewTestingStore(ctx, t)
	cache := NewCache(NewResolver(ts, clock.NewMock()))

	for _, subject := range []string{"u1", "u2", "u3"} {
		_, err := cache.Get(ctx, subject)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, cache.Size())

	cache.Purge()
	assert.Equal(t, 0, cache.Size())
}
