// Package annotate turns resolved listings into map markers with rich,
// injection-safe popup content.
package annotate

import "strings"

// descPlaceholder is used when a listing has no description. Never emit an
// empty escaped string.
const descPlaceholder = "No description available"

var scriptEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"`", "\\`",
)

// EscapeText makes user-supplied free text safe for both the script context
// the popup payload travels through and the markup it lands in. Quotes,
// backticks and backslashes are escaped first (script-string safety), then
// angle brackets (markup safety). Carriage returns are removed and
// newlines flattened to spaces.
func EscapeText(s string) string {
	s = scriptEscaper.Replace(s)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeDescription applies EscapeText, substituting a fixed placeholder
// for empty input.
func EscapeDescription(s string) string {
	if strings.TrimSpace(s) == "" {
		return descPlaceholder
	}
	return EscapeText(s)
}
