package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	MessageSuccessCreateRecipe = "recipe created successfully"
	MessageSuccessUpdateRecipe = "recipe updated successfully"

	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedValidateRecipe  = "please fix the highlighted fields"

	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrRecipeNotLoaded = errors.New("recipe has not been loaded yet")
	ErrAccountNotFound = errors.New("account_id must reference an existing account")
	ErrUnknownField    = errors.New("unknown recipe field")
	ErrPageClosed      = errors.New("page is no longer active")
)

const (
	FieldName            = "name"
	FieldDifficultyLevel = "difficulty_level"
	FieldDescription     = "description"
	FieldImage           = "image"
	FieldAccountID       = "account_id"
)

// RecipeFields lists the editable recipe fields in form order.
var RecipeFields = []string{
	FieldName,
	FieldDifficultyLevel,
	FieldDescription,
	FieldImage,
	FieldAccountID,
}

type (
	Like struct {
		ID       string `json:"id"`
		UserID   string `json:"user_id"`
		RecipeID string `json:"recipe_id"`
	}

	Review struct {
		ID       string `json:"id"`
		UserID   string `json:"user_id"`
		RecipeID string `json:"recipe_id"`
		Rating   int    `json:"rating"`
		Comment  string `json:"comment"`
	}

	Recipe struct {
		ID              string    `json:"id"`
		Name            string    `json:"name"`
		DifficultyLevel int       `json:"difficulty_level"`
		Description     string    `json:"description"`
		Image           string    `json:"image"`
		AccountID       *string   `json:"account_id"`
		Like            []Like    `json:"like"`
		Review          []Review  `json:"review"`
		CreatedAt       time.Time `json:"created_at,omitempty"`
		UpdatedAt       time.Time `json:"updated_at,omitempty"`
	}

	// RecipeDraft is the editable, not-yet-persisted copy of a recipe.
	RecipeDraft struct {
		Name            string   `json:"name" validate:"required,max=255"`
		DifficultyLevel int      `json:"difficulty_level" validate:"gte=0,lte=10"`
		Description     string   `json:"description" validate:"max=2000"`
		Image           string   `json:"image" validate:"omitempty,url,max=2048"`
		AccountID       *string  `json:"account_id" validate:"omitempty,max=255"`
		Like            []Like   `json:"like"`
		Review          []Review `json:"review"`
	}
)

// NewRecipeDraft returns the default draft used by the create page.
func NewRecipeDraft(accountID string) RecipeDraft {
	draft := RecipeDraft{
		Like:   []Like{},
		Review: []Review{},
	}
	if accountID != "" {
		draft.AccountID = &accountID
	}
	return draft
}

// Draft copies the editable fields of r.
func (r Recipe) Draft() RecipeDraft {
	draft := RecipeDraft{
		Name:            r.Name,
		DifficultyLevel: r.DifficultyLevel,
		Description:     r.Description,
		Image:           r.Image,
		Like:            append([]Like{}, r.Like...),
		Review:          append([]Review{}, r.Review...),
	}
	if r.AccountID != nil {
		id := *r.AccountID
		draft.AccountID = &id
	}
	return draft
}

// AccountIDValue returns the selected account id or "".
func (d RecipeDraft) AccountIDValue() string {
	if d.AccountID == nil {
		return ""
	}
	return *d.AccountID
}

// Set applies a raw form value to the named field. A non-numeric
// difficulty level becomes 0 and an empty account id clears the selection.
func (d *RecipeDraft) Set(field, raw string) error {
	switch field {
	case FieldName:
		d.Name = raw
	case FieldDifficultyLevel:
		level, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			level = 0
		}
		d.DifficultyLevel = level
	case FieldDescription:
		d.Description = raw
	case FieldImage:
		d.Image = strings.TrimSpace(raw)
	case FieldAccountID:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			d.AccountID = nil
		} else {
			d.AccountID = &raw
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Get returns the raw form value of the named field.
func (d RecipeDraft) Get(field string) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldDifficultyLevel:
		return strconv.Itoa(d.DifficultyLevel)
	case FieldDescription:
		return d.Description
	case FieldImage:
		return d.Image
	case FieldAccountID:
		return d.AccountIDValue()
	default:
		return ""
	}
}
