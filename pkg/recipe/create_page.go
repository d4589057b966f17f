package recipe

import (
	"Go-Recipe-Admin/domain"
	"context"

	"github.com/go-playground/validator/v10"
)

// CreatePage drives the "create recipe" form.
type CreatePage struct {
	formPage
	recipeGateway RecipeGateway
}

func NewCreatePage(recipeGateway RecipeGateway, validate *validator.Validate, navigator Navigator) *CreatePage {
	p := &CreatePage{recipeGateway: recipeGateway}
	p.init(validate, navigator)
	return p
}

// Mount seeds an empty draft, preselecting accountID when it is not empty.
func (p *CreatePage) Mount(accountID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.form.Reinitialize(domain.NewRecipeDraft(accountID))
	p.loaded = true
	p.err = nil
	p.state = StateReady
}

// Submit validates the draft and creates the recipe. Field errors and gateway
// errors are kept on the page and also returned.
func (p *CreatePage) Submit(ctx context.Context) error {
	return p.submit(ctx, p.recipeGateway.CreateRecipe, func(domain.Recipe) {})
}

func (p *CreatePage) View() PageView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view()
}
