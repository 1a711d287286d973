// Package listing defines the canonical House record and the ingestion of
// the two raw JSON shapes the data files come in.
package listing

// Variant tags which raw shape a House was ingested from.
type Variant string

const (
	// VariantFlat is the scraped card shape: free-text address, price as a
	// display string, no embedded coordinates unless backfilled.
	VariantFlat Variant = "flat"
	// VariantDetailed is the nested shape: a property sub-object with
	// structured address, numeric fields and an optional climate block.
	VariantDetailed Variant = "detailed"
)

// Address carries either a free-text line (flat shape) or structured
// components (detailed shape). Both may be partially empty.
type Address struct {
	Raw    string
	Street string
	City   string
	State  string
	Zip    string
}

// ClimateRisk holds the optional flood/fire/heat risk labels.
type ClimateRisk struct {
	Flood string
	Fire  string
	Heat  string
}

func (c ClimateRisk) Empty() bool {
	return c.Flood == "" && c.Fire == "" && c.Heat == ""
}

// House is the canonical listing record the pipeline operates on. Display
// fields (beds, baths, area, lot size, days listed) are kept as strings;
// empty means "not provided" and renders as N/A downstream.
type House struct {
	ID      string
	Variant Variant
	Address Address

	// Embedded coordinate, if the source already resolved one.
	Lat *float64
	Lng *float64

	// Price in whole currency units; nil when absent or unparseable.
	Price *float64

	Beds       string
	Baths      string
	Sqft       string
	LotSize    string
	DaysListed string

	// HiResImage is the pre-resolved image; Photos is the gallery fallback.
	HiResImage string
	Photos     []string

	Description string
	DetailURL   string

	Climate ClimateRisk
}
