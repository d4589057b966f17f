package recipe

import (
	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/pkg/form"
)

type PageState int

const (
	StateIdle PageState = iota
	StateLoading
	StateReady
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s PageState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type (
	Navigator interface {
		Push(path string)
	}

	NavigatorFunc func(path string)

	// PageView is a point-in-time copy of what a page should render.
	PageView struct {
		State       PageState
		Draft       domain.RecipeDraft
		FieldErrors form.FieldErrors
		Error       error
		LoadError   error
		Loaded      bool
	}
)

func (f NavigatorFunc) Push(path string) {
	f(path)
}

// CanRender reports whether the form itself should be shown.
func (v PageView) CanRender() bool {
	return v.Loaded
}

// CanSubmit reports whether the submit control is enabled.
func (v PageView) CanSubmit() bool {
	return v.Loaded && v.State != StateSubmitting && v.State != StateSuccess
}
