// Package htmlsanitize strips markup from user-supplied text before it
// is stored or rendered anywhere.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Strict removes all HTML from s, unescapes the surviving entities,
// and trims whitespace. The result is plain text.
func Strict(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
