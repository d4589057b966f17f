package domain

import (
	"errors"
)

const (
	// RecipesListPath is where create and edit pages land after a successful submit.
	RecipesListPath = "/recipes"

	GatewayModeHTTP     = "http"
	GatewayModeDatabase = "database"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedPageExpired    = "form session expired, please try again"
	MessageSubmitInFlight       = "a submission is already in progress"

	ErrMissingIdentifier = errors.New("missing identifier")
)
