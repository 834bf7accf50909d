package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(value []byte, calls *atomic.Int64) Loader {
	return func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		return value, nil
	}
}

func TestSWRCache_LoadsOnMiss(t *testing.T) {
	s := NewSWRCache(NewMemoryCache(), time.Minute, time.Minute)
	ctx := context.Background()

	var calls atomic.Int64
	got, err := s.GetOrLoad(ctx, "k", countingLoader([]byte("v"), &calls))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, int64(1), calls.Load())
}

func TestSWRCache_ServesFreshWithoutReload(t *testing.T) {
	s := NewSWRCache(NewMemoryCache(), time.Minute, time.Minute)
	ctx := context.Background()

	var calls atomic.Int64
	load := countingLoader([]byte("v"), &calls)

	_, err := s.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)

	got, err := s.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, int64(1), calls.Load())
}

func TestSWRCache_ServesStaleAndRefreshesInBackground(t *testing.T) {
	s := NewSWRCache(NewMemoryCache(), time.Millisecond, time.Minute)
	ctx := context.Background()

	var calls atomic.Int64
	_, err := s.GetOrLoad(ctx, "k", countingLoader([]byte("old"), &calls))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	// The stale value is served immediately; the refresh runs behind it.
	got, err := s.GetOrLoad(ctx, "k", countingLoader([]byte("new"), &calls))
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), got)

	assert.Eventually(t, func() bool {
		v, err := s.GetOrLoad(ctx, "k", countingLoader([]byte("new"), &calls))
		return err == nil && string(v) == "new"
	}, time.Second, 5*time.Millisecond)
}

func TestSWRCache_LoadsSynchronouslyPastGrace(t *testing.T) {
	s := NewSWRCache(NewMemoryCache(), time.Millisecond, time.Millisecond)
	ctx := context.Background()

	var calls atomic.Int64
	_, err := s.GetOrLoad(ctx, "k", countingLoader([]byte("old"), &calls))
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	got, err := s.GetOrLoad(ctx, "k", countingLoader([]byte("new"), &calls))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestSWRCache_LoaderErrorPropagates(t *testing.T) {
	s := NewSWRCache(NewMemoryCache(), time.Minute, time.Minute)

	wantErr := errors.New("upstream down")
	_, err := s.GetOrLoad(context.Background(), "k", func(ctx context.Context) ([]byte, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestSWRCache_InvalidateForcesReload(t *testing.T) {
	s := NewSWRCache(NewMemoryCache(), time.Minute, time.Minute)
	ctx := context.Background()

	var calls atomic.Int64
	load := countingLoader([]byte("v"), &calls)

	_, err := s.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	require.NoError(t, s.Invalidate(ctx, "k"))

	_, err = s.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestSWRCache_Clear(t *testing.T) {
	s := NewSWRCache(NewMemoryCache(), time.Minute, time.Minute)
	ctx := context.Background()

	var calls atomic.Int64
	load := countingLoader([]byte("v"), &calls)

	_, err := s.GetOrLoad(ctx, "a", load)
	require.NoError(t, err)
	_, err = s.GetOrLoad(ctx, "b", load)
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))

	_, err = s.GetOrLoad(ctx, "a", load)
	require.NoError(t, err)
	assert.Equal(t, int64(3), calls.Load())
}
