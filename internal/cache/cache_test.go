package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrFetch_CachesValue(t *testing.T) {
	c := New(time.Minute, time.Minute)
	calls := 0

	fetch := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"chase", "citi"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrFetch(context.Background(), c, "banks", 0, fetch)
		require.NoError(t, err)
		assert.Equal(t, []string{"chase", "citi"}, got)
	}
	assert.Equal(t, 1, calls)
}

func TestGetOrFetch_ExpiresAfterTTL(t *testing.T) {
	c := New(time.Minute, time.Minute)
	calls := 0

	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, err := GetOrFetch(context.Background(), c, "dashboard", 20*time.Millisecond, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	time.Sleep(40 * time.Millisecond)

	v, err = GetOrFetch(context.Background(), c, "dashboard", 20*time.Millisecond, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestGetOrFetch_ErrorNotCached(t *testing.T) {
	c := New(time.Minute, time.Minute)
	errBoom := errors.New("boom")
	calls := 0

	fetch := func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errBoom
		}
		return 42, nil
	}

	_, err := GetOrFetch(context.Background(), c, "bonus:1", 0, fetch)
	assert.ErrorIs(t, err, errBoom)

	v, err := GetOrFetch(context.Background(), c, "bonus:1", 0, fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

func TestGetOrFetch_ConcurrentCallersShareFetch(t *testing.T) {
	c := New(time.Minute, time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "ok", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := GetOrFetch(context.Background(), c, "bonuses", 0, fetch)
			if err == nil {
				results[i] = v
			}
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "ok", r)
	}
	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestGetOrFetch_CanceledCallerDoesNotFailOthers(t *testing.T) {
	c := New(time.Minute, time.Minute)
	started := make(chan struct{}, 1)
	release := make(chan struct{})

	fetch := func(ctx context.Context) (int, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 42, nil
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := GetOrFetch(firstCtx, c, "dashboard", 0, fetch)
		firstErr <- err
	}()
	<-started

	type result struct {
		v   int
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := GetOrFetch(context.Background(), c, "dashboard", 0, fetch)
		second <- result{v, err}
	}()

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	time.Sleep(20 * time.Millisecond)
	close(release)

	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, 42, res.v)

	v, err := GetOrFetch(context.Background(), c, "dashboard", 0, func(ctx context.Context) (int, error) {
		return 0, errors.New("must be served from cache")
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute, time.Minute)
	ctx := context.Background()

	for _, key := range []string{"banks", "bank:1", "bank:2", "player-tracked-bonuses:1", "player-tracked-bonuses:2", "dashboard"} {
		_, err := GetOrFetch(ctx, c, key, 0, func(ctx context.Context) (string, error) { return key, nil })
		require.NoError(t, err)
	}
	require.Equal(t, 6, c.Len())

	assert.Equal(t, 1, c.Invalidate("dashboard"))
	assert.Equal(t, 2, c.Invalidate("player-tracked-bonuses:*"))
	assert.Equal(t, 0, c.Invalidate("bonus:*"))
	assert.Equal(t, 3, c.Len())

	assert.Equal(t, 2, c.Invalidate("bank:*"))
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}
