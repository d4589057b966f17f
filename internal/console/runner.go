package console

import (
	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/pkg/account"
	"Go-Recipe-Admin/pkg/form"
	"Go-Recipe-Admin/pkg/recipe"
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
)

const accountPageSize = 10

var fieldLabels = map[string]string{
	domain.FieldName:            "Name",
	domain.FieldDifficultyLevel: "Difficulty level (0-10)",
	domain.FieldDescription:     "Description",
	domain.FieldImage:           "Image URL",
	domain.FieldAccountID:       "Account",
}

type (
	Runner struct {
		driver         PromptDriver
		recipeGateway  recipe.RecipeGateway
		accountGateway account.AccountGateway
		cache          *recipe.RecipeCache
		validate       *validator.Validate
	}

	// page is the part of CreatePage and EditPage the prompt loop needs.
	page interface {
		SetField(name, raw string) error
		Draft() domain.RecipeDraft
		Submit(ctx context.Context) error
		Unmount()
	}
)

func NewRunner(
	driver PromptDriver,
	recipeGateway recipe.RecipeGateway,
	accountGateway account.AccountGateway,
	cache *recipe.RecipeCache,
	validate *validator.Validate,
) *Runner {
	return &Runner{
		driver:         driver,
		recipeGateway:  recipeGateway,
		accountGateway: accountGateway,
		cache:          cache,
		validate:       validate,
	}
}

// RunCreate prompts for a new recipe until it is saved or the operator gives up.
// It returns the path the page navigated to.
func (r *Runner) RunCreate(ctx context.Context, accountID string) (string, error) {
	nav := &pathRecorder{}
	p := recipe.NewCreatePage(r.recipeGateway, r.validate, nav)
	p.Mount(accountID)
	defer p.Unmount()

	if err := r.driver.Info(ctx, "Create recipe"); err != nil {
		return "", err
	}
	if err := r.run(ctx, p); err != nil {
		return "", err
	}
	return nav.path, r.driver.Info(ctx, domain.MessageSuccessCreateRecipe)
}

// RunEdit loads recipe id and prompts for changes until they are saved.
func (r *Runner) RunEdit(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", domain.ErrMissingIdentifier
	}
	nav := &pathRecorder{}
	p := recipe.NewEditPage(r.recipeGateway, r.cache, r.validate, nav)
	defer p.Unmount()

	if err := p.Load(ctx, id); err != nil {
		return "", fmt.Errorf("%s: %w", domain.MessageFailedGetRecipeDetail, err)
	}
	if err := r.driver.Info(ctx, "Edit recipe "+id); err != nil {
		return "", err
	}
	if err := r.run(ctx, p); err != nil {
		return "", err
	}
	return nav.path, r.driver.Info(ctx, domain.MessageSuccessUpdateRecipe)
}

func (r *Runner) run(ctx context.Context, p page) error {
	fields := domain.RecipeFields
	for {
		if err := r.promptFields(ctx, p, fields); err != nil {
			return err
		}

		err := p.Submit(ctx)
		if err == nil {
			return nil
		}

		if fieldErrors, ok := form.AsValidation(err); ok {
			fields = fields[:0:0]
			for _, field := range domain.RecipeFields {
				if msg := fieldErrors.Get(field); msg != "" {
					if err := r.driver.Info(ctx, fmt.Sprintf("  %s: %s", fieldLabels[field], msg)); err != nil {
						return err
					}
					fields = append(fields, field)
				}
			}
			if len(fields) == 0 {
				return err
			}
			continue
		}

		log.Warnw("recipe submit failed", "error", err)
		if err := r.driver.Info(ctx, "Error: "+err.Error()); err != nil {
			return err
		}
		retry, confirmErr := r.driver.Confirm(ctx, ConfirmConfig{Message: "Edit and try again?", Default: true})
		if confirmErr != nil {
			return confirmErr
		}
		if !retry {
			return err
		}
		fields = domain.RecipeFields
	}
}

func (r *Runner) promptFields(ctx context.Context, p page, fields []string) error {
	for _, field := range fields {
		current := p.Draft().Get(field)

		var (
			value string
			err   error
		)
		if field == domain.FieldAccountID {
			value, err = r.promptAccount(ctx, current)
		} else {
			value, err = r.driver.Input(ctx, InputConfig{Message: fieldLabels[field], Default: current})
		}
		if err != nil {
			return err
		}
		if err := p.SetField(field, value); err != nil {
			return err
		}
	}
	return nil
}

// promptAccount searches accounts and lets the operator pick one. When the
// lookup fails the id is typed in directly.
func (r *Runner) promptAccount(ctx context.Context, current string) (string, error) {
	query, err := r.driver.Input(ctx, InputConfig{
		Message: "Search accounts",
		Help:    "leave empty to list all accounts",
	})
	if err != nil {
		return "", err
	}

	sel := account.NewAsyncSelect(r.accountGateway)
	defer sel.Close()
	accounts, err := sel.Search(ctx, query)
	if err != nil {
		if infoErr := r.driver.Info(ctx, domain.MessageFailedGetAccounts+": "+err.Error()); infoErr != nil {
			return "", infoErr
		}
		return r.driver.Input(ctx, InputConfig{Message: "Account id", Default: current})
	}
	accounts = domain.WithAccount(accounts, current)

	options := make([]string, 0, len(accounts)+1)
	options = append(options, "(none)")
	defaultIndex := 0
	for i, acc := range accounts {
		options = append(options, fmt.Sprintf("%s (%s)", acc.Name, acc.ID))
		if acc.ID == current {
			defaultIndex = i + 1
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      fieldLabels[domain.FieldAccountID],
		Options:      options,
		DefaultIndex: defaultIndex,
		PageSize:     accountPageSize,
	})
	if err != nil {
		return "", err
	}
	if idx <= 0 || idx > len(accounts) {
		return "", nil
	}
	return accounts[idx-1].ID, nil
}

type pathRecorder struct {
	path string
}

func (n *pathRecorder) Push(path string) {
	n.path = path
}

// IsAborted reports whether err came from the operator interrupting a prompt.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
