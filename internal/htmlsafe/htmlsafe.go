// Package htmlsafe sanitizes model-written HTML before it is stored or served.
package htmlsafe

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy().
	AllowElements("span", "mark").
	AllowAttrs("class").OnElements("span")

// Sanitize strips scripts, styles, event handlers and unknown markup
func Sanitize(html string) string {
	return strings.TrimSpace(policy.Sanitize(html))
}
