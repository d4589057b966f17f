package recipe

import (
	"Go-Recipe-Admin/domain"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeCacheSharesConcurrentFetch(t *testing.T) {
	cache := NewRecipeCache()
	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context, id string) (domain.Recipe, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return domain.Recipe{ID: id, Name: "Soup"}, nil
	}

	var wg sync.WaitGroup
	results := make([]domain.Recipe, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := cache.Get(context.Background(), "r-1", fetch)
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "Soup", r.Name)
	}
}

func TestRecipeCacheDoesNotKeepErrors(t *testing.T) {
	cache := NewRecipeCache()
	boom := errors.New("boom")

	_, err := cache.Get(context.Background(), "r-1", func(ctx context.Context, id string) (domain.Recipe, error) {
		return domain.Recipe{}, boom
	})
	assert.ErrorIs(t, err, boom)

	r, err := cache.Get(context.Background(), "r-1", func(ctx context.Context, id string) (domain.Recipe, error) {
		return domain.Recipe{ID: id}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "r-1", r.ID)
}

func TestRecipeCacheKeepsFetchForRemainingCallers(t *testing.T) {
	cache := NewRecipeCache()
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context, id string) (domain.Recipe, error) {
		close(started)
		select {
		case <-release:
			return domain.Recipe{ID: id, Name: "Soup"}, nil
		case <-ctx.Done():
			return domain.Recipe{}, ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.Get(firstCtx, "r-1", fetch)
		firstErr <- err
	}()
	<-started

	second := make(chan error, 1)
	var got domain.Recipe
	go func() {
		r, err := cache.Get(context.Background(), "r-1", fetch)
		got = r
		second <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	require.NoError(t, <-second)
	assert.Equal(t, "Soup", got.Name)
	_, ok := cache.Peek("r-1")
	assert.True(t, ok)
}

func TestRecipeCacheEntriesStayUntilInvalidated(t *testing.T) {
	cache := NewRecipeCache()

	cache.Set("r-1", domain.Recipe{ID: "r-1"})
	_, ok := cache.Peek("r-1")
	assert.True(t, ok)

	cache.Invalidate("r-1")
	_, ok = cache.Peek("r-1")
	assert.False(t, ok)
}
