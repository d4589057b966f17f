package recipe

import (
	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/pkg/form"
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
)

// formPage is the state shared by the create and edit pages.
type formPage struct {
	mu        sync.Mutex
	form      *form.Form[domain.RecipeDraft]
	navigator Navigator
	state     PageState
	err       error
	loaded    bool
	unmounted bool
}

func (p *formPage) init(validate *validator.Validate, navigator Navigator) {
	p.form = form.New(validate, domain.NewRecipeDraft(""))
	p.navigator = navigator
	p.state = StateIdle
}

// SetField applies a field change to the draft.
func (p *formPage) SetField(name, raw string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.usable(); err != nil {
		return err
	}
	if p.state == StateFailed {
		p.state = StateReady
	}
	return p.form.Update(func(draft *domain.RecipeDraft) error {
		return draft.Set(name, raw)
	})
}

// Unmount detaches the page. Results of calls still in flight are dropped.
func (p *formPage) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unmounted = true
}

func (p *formPage) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *formPage) Draft() domain.RecipeDraft {
	return p.form.Values()
}

func (p *formPage) view() PageView {
	return PageView{
		State:       p.state,
		Draft:       p.form.Values(),
		FieldErrors: p.form.Errors(),
		Error:       p.err,
		Loaded:      p.loaded,
	}
}

func (p *formPage) usable() error {
	if p.unmounted || p.state == StateSuccess {
		return domain.ErrPageClosed
	}
	if !p.loaded {
		return domain.ErrRecipeNotLoaded
	}
	return nil
}

// submit runs validation and then send. On success it calls done under the
// page lock, resets the draft and navigates to the recipe list.
func (p *formPage) submit(
	ctx context.Context,
	send func(ctx context.Context, draft domain.RecipeDraft) (domain.Recipe, error),
	done func(saved domain.Recipe),
) error {
	p.mu.Lock()
	if err := p.usable(); err != nil {
		p.mu.Unlock()
		return err
	}
	p.mu.Unlock()

	var saved domain.Recipe
	err := p.form.Submit(ctx, func(ctx context.Context, draft domain.RecipeDraft) error {
		p.mu.Lock()
		p.err = nil
		p.state = StateSubmitting
		p.mu.Unlock()

		var err error
		saved, err = send(ctx, draft)
		return err
	})

	p.mu.Lock()
	if p.unmounted {
		p.mu.Unlock()
		log.Debugw("dropping result for unmounted page", "error", err)
		return domain.ErrPageClosed
	}

	switch {
	case err == nil:
		done(saved)
		p.form.Reset()
		p.state = StateSuccess
	case errors.Is(err, form.ErrSubmitInFlight):
		p.mu.Unlock()
		return err
	default:
		if _, invalid := form.AsValidation(err); invalid {
			p.err = nil
			p.state = StateReady
		} else {
			p.err = err
			p.state = StateFailed
		}
		p.mu.Unlock()
		return err
	}
	p.mu.Unlock()

	p.navigator.Push(domain.RecipesListPath)
	return nil
}
