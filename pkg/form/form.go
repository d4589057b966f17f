package form

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var ErrSubmitInFlight = errors.New("submission already in progress")

type (
	// Form holds the current values of a draft, its field errors and whether a
	// submission is pending. It is safe for concurrent use.
	Form[T any] struct {
		mu         sync.Mutex
		validate   *validator.Validate
		initial    T
		values     T
		errors     FieldErrors
		submitting bool
	}

	// SubmitFunc receives a snapshot of the validated values.
	SubmitFunc[T any] func(ctx context.Context, values T) error
)

func New[T any](validate *validator.Validate, initial T) *Form[T] {
	return &Form[T]{
		validate: validate,
		initial:  initial,
		values:   initial,
	}
}

func (f *Form[T]) Values() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form[T]) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.clone()
}

func (f *Form[T]) IsSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Update applies fn to the current values. Field errors are kept until the
// next validation.
func (f *Form[T]) Update(fn func(values *T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(&f.values)
}

// Reinitialize replaces both the initial and the current values.
func (f *Form[T]) Reinitialize(initial T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initial = initial
	f.values = initial
	f.errors = nil
}

// Reset restores the initial values and clears field errors.
func (f *Form[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = f.initial
	f.errors = nil
}

// Submit validates the values and, when they pass, hands a snapshot to fn.
// Only one submission runs at a time; a concurrent call gets ErrSubmitInFlight.
func (f *Form[T]) Submit(ctx context.Context, fn SubmitFunc[T]) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.errors = Check(f.validate, f.values)
	if !f.errors.OK() {
		fields := f.errors.clone()
		f.mu.Unlock()
		return &ValidationError{Fields: fields}
	}
	f.submitting = true
	values := f.values
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	return fn(ctx, values)
}
