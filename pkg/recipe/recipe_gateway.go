package recipe

import (
	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/pkg/gateway"
	"context"
	"net/http"
	"net/url"
)

type (
	// RecipeGateway performs the remote create, read and update calls for recipes.
	RecipeGateway interface {
		CreateRecipe(ctx context.Context, draft domain.RecipeDraft) (domain.Recipe, error)
		GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error)
		UpdateRecipeByID(ctx context.Context, id string, draft domain.RecipeDraft) (domain.Recipe, error)
	}

	httpRecipeGateway struct {
		client *gateway.Client
	}
)

func NewHTTPRecipeGateway(client *gateway.Client) RecipeGateway {
	return &httpRecipeGateway{client: client}
}

func (g *httpRecipeGateway) CreateRecipe(ctx context.Context, draft domain.RecipeDraft) (domain.Recipe, error) {
	var out domain.Recipe
	err := g.client.Do(ctx, gateway.Request{
		Op:     "recipes.create",
		Method: http.MethodPost,
		Path:   "/recipes",
		Body:   draft,
	}, &out)
	return out, err
}

func (g *httpRecipeGateway) GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error) {
	var out domain.Recipe
	err := g.client.Do(ctx, gateway.Request{
		Op:       "recipes.read",
		Method:   http.MethodGet,
		Path:     "/recipes/" + url.PathEscape(id),
		NotFound: domain.ErrRecipeNotFound,
	}, &out)
	return out, err
}

func (g *httpRecipeGateway) UpdateRecipeByID(ctx context.Context, id string, draft domain.RecipeDraft) (domain.Recipe, error) {
	var out domain.Recipe
	err := g.client.Do(ctx, gateway.Request{
		Op:       "recipes.update",
		Method:   http.MethodPut,
		Path:     "/recipes/" + url.PathEscape(id),
		Body:     draft,
		NotFound: domain.ErrRecipeNotFound,
	}, &out)
	return out, err
}
