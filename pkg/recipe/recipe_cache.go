package recipe

import (
	"Go-Recipe-Admin/domain"
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

type (
	FetchFunc func(ctx context.Context, id string) (domain.Recipe, error)

	// RecipeCache keeps fetched recipes keyed by id. Concurrent misses for the
	// same id share one fetch. Entries change only through Set and Invalidate.
	RecipeCache struct {
		mu      sync.Mutex
		entries map[string]domain.Recipe
		group   singleflight.Group
	}
)

func NewRecipeCache() *RecipeCache {
	return &RecipeCache{entries: make(map[string]domain.Recipe)}
}

// Get returns the cached recipe for id or fetches it. The shared fetch is not
// cancelled when one waiting caller gives up.
func (c *RecipeCache) Get(ctx context.Context, id string, fetch FetchFunc) (domain.Recipe, error) {
	if recipe, ok := c.Peek(id); ok {
		return recipe, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (any, error) {
		recipe, err := fetch(shared, id)
		if err != nil {
			return domain.Recipe{}, err
		}
		c.Set(id, recipe)
		return recipe, nil
	})

	select {
	case <-ctx.Done():
		return domain.Recipe{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Recipe{}, res.Err
		}
		return res.Val.(domain.Recipe), nil
	}
}

// Peek returns a cached recipe without fetching.
func (c *RecipeCache) Peek(id string) (domain.Recipe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	recipe, ok := c.entries[id]
	return recipe, ok
}

func (c *RecipeCache) Set(id string, recipe domain.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = recipe
}

func (c *RecipeCache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}
