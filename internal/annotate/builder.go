package annotate

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/yourorg/housemap-api/internal/geocode"
	"github.com/yourorg/housemap-api/internal/listing"
	"github.com/yourorg/housemap-api/internal/mapengine"
	"github.com/yourorg/housemap-api/internal/normalize"
)

// Popup is the rich-content payload behind one marker. Expanded drives the
// description block's visibility and aria-expanded attribute; popups start
// collapsed and the page toggles the flag client-side.
type Popup struct {
	Title       string
	ImageURL    string
	Price       string
	Beds        string
	Baths       string
	Sqft        string
	LotSize     string
	DaysListed  string
	Description string
	DetailURL   string
	Climate     listing.ClimateRisk
	Expanded    bool
}

// BuildPopup assembles the popup model for a house. All free text is run
// through the escaping rules before it can reach markup.
func BuildPopup(h listing.House) Popup {
	return Popup{
		Title:       normalize.Display(h.Address),
		ImageURL:    pickImage(h.HiResImage, h.Photos),
		Price:       FormatPrice(h.Price),
		Beds:        orNA(h.Beds),
		Baths:       orNA(h.Baths),
		Sqft:        orNA(withUnit(h.Sqft, "sqft")),
		LotSize:     orNA(h.LotSize),
		DaysListed:  orNA(h.DaysListed),
		Description: EscapeDescription(h.Description),
		DetailURL:   h.DetailURL,
		Climate:     h.Climate,
	}
}

// HTML renders the popup body. The description starts hidden unless the
// Expanded flag is set.
func (p Popup) HTML() string {
	var b strings.Builder

	b.WriteString(`<div class="popup">`)
	fmt.Fprintf(&b, `<h3 class="popup-title">%s</h3>`, html.EscapeString(p.Title))

	if p.ImageURL != "" {
		fmt.Fprintf(&b, `<img class="popup-photo" src="%s" alt="%s">`,
			html.EscapeString(p.ImageURL), html.EscapeString(p.Title))
	}

	fmt.Fprintf(&b, `<p class="popup-price">%s</p>`, html.EscapeString(p.Price))

	b.WriteString(`<ul class="popup-facts">`)
	fmt.Fprintf(&b, `<li>Beds: %s</li>`, html.EscapeString(p.Beds))
	fmt.Fprintf(&b, `<li>Baths: %s</li>`, html.EscapeString(p.Baths))
	fmt.Fprintf(&b, `<li>Area: %s</li>`, html.EscapeString(p.Sqft))
	fmt.Fprintf(&b, `<li>Lot: %s</li>`, html.EscapeString(p.LotSize))
	fmt.Fprintf(&b, `<li>Days listed: %s</li>`, html.EscapeString(p.DaysListed))
	b.WriteString(`</ul>`)

	if !p.Climate.Empty() {
		b.WriteString(`<ul class="popup-climate">`)
		for _, badge := range []struct{ kind, name, label string }{
			{"flood", "Flood", p.Climate.Flood},
			{"fire", "Fire", p.Climate.Fire},
			{"heat", "Heat", p.Climate.Heat},
		} {
			if badge.label == "" {
				continue
			}
			fmt.Fprintf(&b, `<li class="risk-%s">%s risk: %s</li>`,
				badge.kind, badge.name, html.EscapeString(badge.label))
		}
		b.WriteString(`</ul>`)
	}

	expanded := "false"
	hidden := " hidden"
	if p.Expanded {
		expanded = "true"
		hidden = ""
	}
	fmt.Fprintf(&b, `<button type="button" class="popup-desc-toggle" aria-expanded="%s">Description</button>`, expanded)
	// Description is already escaped by BuildPopup.
	fmt.Fprintf(&b, `<div class="popup-desc"%s>%s</div>`, hidden, p.Description)

	if p.DetailURL != "" {
		fmt.Fprintf(&b, `<a class="popup-link" href="%s" target="_blank" rel="noopener">View listing</a>`,
			html.EscapeString(p.DetailURL))
	}

	b.WriteString(`</div>`)
	return b.String()
}

// Build converts one resolved listing into a marker. seq is the 1-based
// index of successful placements within the current pass; the glyph shows
// that number, not the listing id.
func Build(h listing.House, loc geocode.ResolvedLocation, seq int) mapengine.Marker {
	popup := BuildPopup(h)
	return mapengine.Marker{
		ID:        h.ID,
		Label:     strconv.Itoa(seq),
		Title:     popup.Title,
		Position:  mapengine.Coord{Lat: loc.Lat, Lng: loc.Lng},
		PopupHTML: popup.HTML(),
	}
}
