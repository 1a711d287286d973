// Package normalize rewrites free-text street addresses into the long form
// the geocoding service matches best, and reconstructs display addresses
// from structured components.
package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yourorg/housemap-api/internal/listing"
)

// Whole-word abbreviation expansions. Tokens embedded in other words
// ("Broadway") must never be rewritten, hence the \b anchors.
var expansions = map[string]string{
	"st":   "Street",
	"rd":   "Road",
	"ave":  "Avenue",
	"dr":   "Drive",
	"ln":   "Lane",
	"blvd": "Boulevard",
	"ct":   "Court",
	"cir":  "Circle",
	"hwy":  "Highway",
	"pkwy": "Parkway",
	"ter":  "Terrace",
	"pl":   "Place",
}

// abbrPattern is built from the expansions keys so the two can never
// drift apart.
var abbrPattern = func() *regexp.Regexp {
	toks := make([]string, 0, len(expansions))
	for t := range expansions {
		toks = append(toks, t)
	}
	sort.Strings(toks)
	return regexp.MustCompile(`(?i)\b(` + strings.Join(toks, "|") + `)\b`)
}()

// Address expands whole-word abbreviations and strips unit markers. Empty
// input passes through unchanged. Pure and deterministic.
func Address(raw string) string {
	if raw == "" {
		return raw
	}
	out := abbrPattern.ReplaceAllStringFunc(raw, func(m string) string {
		return expansions[strings.ToLower(m)]
	})
	if strings.Contains(out, "#") {
		out = strings.Join(strings.Fields(strings.ReplaceAll(out, "#", " ")), " ")
	}
	return out
}

// Compose joins structured components into one query/display line.
func Compose(street, city, state, zip string) string {
	return street + ", " + city + ", " + state + " " + zip
}

// Display returns the best human-readable address for a house: the full
// structured line when every component is present, otherwise whatever
// partial components exist, otherwise the raw free-text line.
func Display(a listing.Address) string {
	if a.Street != "" && a.City != "" && a.State != "" && a.Zip != "" {
		return Compose(a.Street, a.City, a.State, a.Zip)
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.State, a.Zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return strings.TrimSpace(a.Raw)
}
