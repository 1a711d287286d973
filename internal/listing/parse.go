package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// stringNumber accepts string or number JSON and stores the textual form.
type stringNumber string

func (s *stringNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = stringNumber(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = stringNumber(num.String())
	return nil
}

// Load reads and parses a listings file.
func Load(path string) ([]House, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(payload)
}

// Parse decodes a JSON object keyed by listing id. Each value is either the
// flat card shape or the nested shape carrying a "property" sub-object; the
// two may be mixed in one file. Records that fail to decode are dropped
// rather than failing the whole file. The result is sorted by id so that a
// rendering pass sees a deterministic order.
func Parse(payload []byte) ([]House, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("listing: decode file: %w", err)
	}

	houses := make([]House, 0, len(raw))
	for id, msg := range raw {
		var probe struct {
			Property json.RawMessage `json:"property"`
		}
		if err := json.Unmarshal(msg, &probe); err != nil {
			continue
		}

		var (
			h   House
			err error
		)
		if len(probe.Property) > 0 && !bytes.Equal(probe.Property, []byte("null")) {
			h, err = parseDetailed(id, msg)
		} else {
			h, err = parseFlat(id, msg)
		}
		if err != nil {
			continue
		}
		houses = append(houses, h)
	}

	sort.Slice(houses, func(i, j int) bool { return houses[i].ID < houses[j].ID })
	return houses, nil
}

type flatRecord struct {
	Image       string       `json:"image"`
	Price       string       `json:"price"`
	Bedrooms    stringNumber `json:"bedrooms"`
	Bathrooms   stringNumber `json:"bathrooms"`
	SquareFeet  stringNumber `json:"square_feet"`
	LotSize     stringNumber `json:"lot_size"`
	DaysListed  stringNumber `json:"days_listed"`
	DetailsURL  string       `json:"details_url"`
	Address     string       `json:"address"`
	Description string       `json:"description"`
	Latitude    *float64     `json:"latitude"`
	Longitude   *float64     `json:"longitude"`
}

func parseFlat(id string, msg json.RawMessage) (House, error) {
	var rec flatRecord
	if err := json.Unmarshal(msg, &rec); err != nil {
		return House{}, err
	}

	h := House{
		ID:          id,
		Variant:     VariantFlat,
		Address:     Address{Raw: strings.TrimSpace(rec.Address)},
		Lat:         rec.Latitude,
		Lng:         rec.Longitude,
		Price:       ParsePrice(rec.Price),
		Beds:        string(rec.Bedrooms),
		Baths:       string(rec.Bathrooms),
		Sqft:        string(rec.SquareFeet),
		LotSize:     string(rec.LotSize),
		DaysListed:  string(rec.DaysListed),
		Description: rec.Description,
		DetailURL:   rec.DetailsURL,
	}
	if rec.Image != "" {
		h.Photos = []string{rec.Image}
	}
	return h, nil
}

type riskSource struct {
	Primary struct {
		RiskScore struct {
			Label string `json:"label"`
		} `json:"riskScore"`
	} `json:"primary"`
}

type detailedRecord struct {
	Property struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`

		Price        *float64 `json:"price"`
		Bedrooms     *float64 `json:"bedrooms"`
		Bathrooms    *float64 `json:"bathrooms"`
		LivingArea   *float64 `json:"livingArea"`
		LotAreaValue *float64 `json:"lotAreaValue"`
		LotAreaUnits string   `json:"lotAreaUnits"`
		DaysOnZillow *float64 `json:"daysOnZillow"`

		Description    string `json:"description"`
		HiResImageLink string `json:"hiResImageLink"`
		HdpURL         string `json:"hdpUrl"`

		Address struct {
			StreetAddress string `json:"streetAddress"`
			City          string `json:"city"`
			State         string `json:"state"`
			Zipcode       string `json:"zipcode"`
		} `json:"address"`

		Photos []struct {
			MixedSources struct {
				Jpeg []struct {
					URL string `json:"url"`
				} `json:"jpeg"`
			} `json:"mixedSources"`
		} `json:"photos"`
	} `json:"property"`

	Climate struct {
		FloodSources riskSource `json:"floodSources"`
		FireSources  riskSource `json:"fireSources"`
		HeatSources  riskSource `json:"heatSources"`
	} `json:"climate"`
}

func parseDetailed(id string, msg json.RawMessage) (House, error) {
	var rec detailedRecord
	if err := json.Unmarshal(msg, &rec); err != nil {
		return House{}, err
	}
	p := rec.Property

	h := House{
		ID:      id,
		Variant: VariantDetailed,
		Address: Address{
			Street: strings.TrimSpace(p.Address.StreetAddress),
			City:   strings.TrimSpace(p.Address.City),
			State:  strings.TrimSpace(p.Address.State),
			Zip:    strings.TrimSpace(p.Address.Zipcode),
		},
		Lat:         p.Latitude,
		Lng:         p.Longitude,
		Price:       p.Price,
		Beds:        formatCount(p.Bedrooms),
		Baths:       formatCount(p.Bathrooms),
		Sqft:        formatCount(p.LivingArea),
		DaysListed:  formatCount(p.DaysOnZillow),
		Description: p.Description,
		HiResImage:  p.HiResImageLink,
		DetailURL:   p.HdpURL,
		Climate: ClimateRisk{
			Flood: rec.Climate.FloodSources.Primary.RiskScore.Label,
			Fire:  rec.Climate.FireSources.Primary.RiskScore.Label,
			Heat:  rec.Climate.HeatSources.Primary.RiskScore.Label,
		},
	}

	if p.LotAreaValue != nil && *p.LotAreaValue > 0 {
		h.LotSize = strings.TrimSpace(formatCount(p.LotAreaValue) + " " + strings.ToLower(p.LotAreaUnits))
	}

	// Gallery entries may lack the jpeg source list entirely; those are
	// skipped, not treated as errors.
	for _, ph := range p.Photos {
		if len(ph.MixedSources.Jpeg) == 0 {
			continue
		}
		if u := ph.MixedSources.Jpeg[0].URL; u != "" {
			h.Photos = append(h.Photos, u)
		}
	}

	return h, nil
}

func formatCount(v *float64) string {
	if v == nil || *v <= 0 {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// ParsePrice extracts a numeric value from display strings like "$449,000".
// Returns nil when no usable number is present.
func ParsePrice(raw string) *float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}
