package gateway

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// SanitizeMessage strips markup from a server supplied error message and
// returns plain text; callers escape it for their own output.
func SanitizeMessage(raw string) string {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(messagePolicy.Sanitize(raw)))
}
