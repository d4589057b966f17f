package recipe

import (
	"Go-Recipe-Admin/domain"
	"context"
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
)

// EditPage drives the "edit recipe" form. The draft is initialised from the
// fetched recipe and re-initialised whenever a later fetch returns different data.
type EditPage struct {
	formPage
	recipeGateway RecipeGateway
	cache         *RecipeCache
	id            string
	data          *domain.Recipe
	loadErr       error
}

func NewEditPage(recipeGateway RecipeGateway, cache *RecipeCache, validate *validator.Validate, navigator Navigator) *EditPage {
	p := &EditPage{
		recipeGateway: recipeGateway,
		cache:         cache,
	}
	p.init(validate, navigator)
	return p
}

// Load resolves id into a recipe. An empty id leaves the page loading. The
// same id is fetched only once; a new id starts over. A recipe already cached
// by another page is shown at once and then revalidated against the gateway.
func (p *EditPage) Load(ctx context.Context, id string) error {
	p.mu.Lock()
	if p.unmounted {
		p.mu.Unlock()
		return domain.ErrPageClosed
	}
	if id == "" {
		p.state = StateLoading
		p.mu.Unlock()
		return nil
	}
	if id == p.id && (p.data != nil || p.state == StateLoading) {
		p.mu.Unlock()
		return nil
	}
	p.id = id
	p.data = nil
	p.loaded = false
	p.loadErr = nil
	p.state = StateLoading
	p.mu.Unlock()

	cached, hit := p.cache.Peek(id)
	if !hit {
		recipe, err := p.cache.Get(ctx, id, p.recipeGateway.GetRecipeByID)
		return p.applyFetch(id, recipe, err)
	}

	if err := p.applyFetch(id, cached, nil); err != nil {
		return err
	}
	// a failed revalidation keeps the cached draft; the error stays on LoadError
	if err := p.Revalidate(ctx); errors.Is(err, domain.ErrPageClosed) {
		return err
	}
	return nil
}

// Revalidate fetches the current id again, bypassing the cache.
func (p *EditPage) Revalidate(ctx context.Context) error {
	p.mu.Lock()
	id := p.id
	p.mu.Unlock()
	if id == "" {
		return nil
	}

	recipe, err := p.recipeGateway.GetRecipeByID(ctx, id)
	switch {
	case err == nil:
		p.cache.Set(id, recipe)
	case errors.Is(err, domain.ErrRecipeNotFound):
		p.cache.Invalidate(id)
	}
	return p.applyFetch(id, recipe, err)
}

func (p *EditPage) applyFetch(id string, recipe domain.Recipe, err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.unmounted || p.id != id {
		return domain.ErrPageClosed
	}
	if err != nil {
		log.Warnw("failed to load recipe", "recipe_id", id, "error", err)
		p.loadErr = err
		if p.data == nil {
			p.state = StateFailed
		}
		return err
	}

	p.loadErr = nil
	p.setData(recipe)
	if p.state == StateLoading || p.state == StateFailed {
		p.state = StateReady
	}
	return nil
}

// setData swaps in recipe and re-initialises the draft when the data changed.
func (p *EditPage) setData(recipe domain.Recipe) {
	if p.data == nil || !reflect.DeepEqual(*p.data, recipe) {
		p.form.Reinitialize(recipe.Draft())
	}
	p.data = &recipe
	p.loaded = true
}

// Submit validates the draft and replaces the recipe with it.
func (p *EditPage) Submit(ctx context.Context) error {
	p.mu.Lock()
	id := p.id
	p.mu.Unlock()

	return p.submit(ctx,
		func(ctx context.Context, draft domain.RecipeDraft) (domain.Recipe, error) {
			return p.recipeGateway.UpdateRecipeByID(ctx, id, draft)
		},
		func(saved domain.Recipe) {
			p.cache.Set(id, saved)
			p.setData(saved)
		},
	)
}

// Recipe returns the last fetched or saved copy.
func (p *EditPage) Recipe() (domain.Recipe, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		return domain.Recipe{}, false
	}
	return *p.data, true
}

func (p *EditPage) ID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

func (p *EditPage) View() PageView {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := p.view()
	v.LoadError = p.loadErr
	return v
}
