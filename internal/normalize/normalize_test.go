package normalize

import (
	"testing"

	"github.com/yourorg/housemap-api/internal/listing"
)

func TestAddressExpandsWholeWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123 Main St", "123 Main Street"},
		{"123 main st", "123 main Street"},
		{"450 Oak Rd, Houston, TX 77001", "450 Oak Road, Houston, TX 77001"},
		{"9 Fifth Ave Apt 2", "9 Fifth Avenue Apt 2"},
		{"77 Sunset Blvd", "77 Sunset Boulevard"},
		{"12 Pecan Ln", "12 Pecan Lane"},
		{"3 Elm Dr", "3 Elm Drive"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Address(tt.in); got != tt.want {
			t.Errorf("Address(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestAddressExpandsEveryKnownAbbreviation(t *testing.T) {
	for abbr, full := range expansions {
		in := "10 Sample " + abbr
		want := "10 Sample " + full
		if got := Address(in); got != want {
			t.Errorf("Address(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestAddressLeavesEmbeddedTokensAlone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1 Broadway", "1 Broadway"},
		{"10 Stone Castle Way", "10 Stone Castle Way"},
		{"5 Harding Pkwy", "5 Harding Parkway"},
		{"22 Terrapin Trail", "22 Terrapin Trail"},
	}
	for _, tt := range tests {
		if got := Address(tt.in); got != tt.want {
			t.Errorf("Address(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestAddressStripsUnitMarker(t *testing.T) {
	if got := Address("12 Oak St # 5"); got != "12 Oak Street 5" {
		t.Errorf("got %q", got)
	}
	if got := Address("12 Oak St #5"); got != "12 Oak Street 5" {
		t.Errorf("got %q", got)
	}
}

func TestDisplay(t *testing.T) {
	full := listing.Address{Street: "1 Elm St", City: "Austin", State: "TX", Zip: "78701"}
	if got := Display(full); got != "1 Elm St, Austin, TX 78701" {
		t.Errorf("full display = %q", got)
	}

	partial := listing.Address{Street: "1 Elm St", City: "Austin", State: "TX"}
	if got := Display(partial); got != "1 Elm St, Austin, TX" {
		t.Errorf("partial display = %q", got)
	}

	raw := listing.Address{Raw: "  1 Elm St, Austin  "}
	if got := Display(raw); got != "1 Elm St, Austin" {
		t.Errorf("raw display = %q", got)
	}

	if got := Display(listing.Address{}); got != "" {
		t.Errorf("empty display = %q", got)
	}
}
