package recipe

import (
	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/entities"
	"Go-Recipe-Admin/pkg/gateway"
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dbRecipeGateway struct {
	recipeRepository RecipeRepository
}

// NewDBRecipeGateway serves the gateway contract straight from the database.
func NewDBRecipeGateway(recipeRepository RecipeRepository) RecipeGateway {
	return &dbRecipeGateway{recipeRepository: recipeRepository}
}

func (g *dbRecipeGateway) CreateRecipe(ctx context.Context, draft domain.RecipeDraft) (domain.Recipe, error) {
	accountID, err := g.resolveAccount(ctx, "recipes.create", draft.AccountID)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		ID:              uuid.New(),
		Name:            draft.Name,
		DifficultyLevel: draft.DifficultyLevel,
		Description:     draft.Description,
		Image:           draft.Image,
		AccountID:       accountID,
	}
	if err := g.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.Recipe{}, storeError("recipes.create", err)
	}

	log.Infow("recipe created", "recipe_id", recipe.ID.String())
	return toDomainRecipe(recipe), nil
}

func (g *dbRecipeGateway) GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error) {
	recipe, err := g.find(ctx, "recipes.read", id)
	if err != nil {
		return domain.Recipe{}, err
	}
	return toDomainRecipe(recipe), nil
}

func (g *dbRecipeGateway) UpdateRecipeByID(ctx context.Context, id string, draft domain.RecipeDraft) (domain.Recipe, error) {
	recipe, err := g.find(ctx, "recipes.update", id)
	if err != nil {
		return domain.Recipe{}, err
	}

	accountID, err := g.resolveAccount(ctx, "recipes.update", draft.AccountID)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe.Name = draft.Name
	recipe.DifficultyLevel = draft.DifficultyLevel
	recipe.Description = draft.Description
	recipe.Image = draft.Image
	recipe.AccountID = accountID

	if err := g.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.Recipe{}, storeError("recipes.update", err)
	}

	log.Infow("recipe updated", "recipe_id", recipe.ID.String())
	return toDomainRecipe(recipe), nil
}

func (g *dbRecipeGateway) find(ctx context.Context, op, id string) (*entities.Recipe, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, notFound(op)
	}
	recipe, err := g.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(op)
		}
		return nil, storeError(op, err)
	}
	return recipe, nil
}

func (g *dbRecipeGateway) resolveAccount(ctx context.Context, op string, id *string) (*uuid.UUID, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	accountID, err := uuid.Parse(*id)
	if err != nil {
		return nil, invalidAccount(op)
	}
	ok, err := g.recipeRepository.AccountExists(ctx, accountID)
	if err != nil {
		return nil, storeError(op, err)
	}
	if !ok {
		return nil, invalidAccount(op)
	}
	return &accountID, nil
}

func notFound(op string) error {
	return &gateway.GatewayError{
		Op:         op,
		StatusCode: http.StatusNotFound,
		Message:    domain.ErrRecipeNotFound.Error(),
		Err:        domain.ErrRecipeNotFound,
	}
}

func invalidAccount(op string) error {
	return &gateway.GatewayError{
		Op:         op,
		StatusCode: http.StatusUnprocessableEntity,
		Message:    domain.ErrAccountNotFound.Error(),
		Err:        domain.ErrAccountNotFound,
	}
}

func storeError(op string, err error) error {
	log.Errorw("recipe store failed", "op", op, "error", err)
	return &gateway.GatewayError{
		Op:         op,
		StatusCode: http.StatusInternalServerError,
		Message:    domain.MessageFailedProcessRequest,
		Err:        err,
	}
}

func toDomainRecipe(r *entities.Recipe) domain.Recipe {
	out := domain.Recipe{
		ID:              r.ID.String(),
		Name:            r.Name,
		DifficultyLevel: r.DifficultyLevel,
		Description:     r.Description,
		Image:           r.Image,
		Like:            make([]domain.Like, 0, len(r.Likes)),
		Review:          make([]domain.Review, 0, len(r.Reviews)),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.AccountID != nil {
		id := r.AccountID.String()
		out.AccountID = &id
	}
	for _, like := range r.Likes {
		out.Like = append(out.Like, domain.Like{
			ID:       like.ID.String(),
			UserID:   like.UserID.String(),
			RecipeID: like.RecipeID.String(),
		})
	}
	for _, review := range r.Reviews {
		out.Review = append(out.Review, domain.Review{
			ID:       review.ID.String(),
			UserID:   review.UserID.String(),
			RecipeID: review.RecipeID.String(),
			Rating:   review.Rating,
			Comment:  review.Comment,
		})
	}
	return out
}
