package geocode

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yourorg/housemap-api/internal/listing"
	"github.com/yourorg/housemap-api/internal/normalize"
	"github.com/yourorg/housemap-api/internal/outcome"
)

// ResolvedLocation pairs a listing with its usable coordinate.
type ResolvedLocation struct {
	ID  string
	Lat float64
	Lng float64
}

// LookupClient is the lookup surface the resolver depends on.
type LookupClient interface {
	Lookup(ctx context.Context, address string) ([]Candidate, error)
}

// Resolver turns each house into exactly one of a ResolvedLocation or a
// SkipRecord. A lookup failure never aborts the pass; it becomes a skip.
type Resolver struct {
	client LookupClient
	log    *slog.Logger
}

func NewResolver(client LookupClient, log *slog.Logger) *Resolver {
	return &Resolver{client: client, log: log}
}

// Resolve applies the resolution policy for one house:
//  1. embedded lat/lng wins, no network call;
//  2. otherwise a single lookup on the normalized address;
//  3. no address material at all skips immediately without a request.
func (r *Resolver) Resolve(ctx context.Context, h listing.House) (*ResolvedLocation, *outcome.SkipRecord) {
	display := normalize.Display(h.Address)

	if h.Lat != nil && h.Lng != nil {
		return &ResolvedLocation{ID: h.ID, Lat: *h.Lat, Lng: *h.Lng}, nil
	}

	query, reason := addressQuery(h)
	if reason != "" {
		return nil, &outcome.SkipRecord{ID: h.ID, Address: display, Reason: reason}
	}

	candidates, err := r.client.Lookup(ctx, normalize.Address(query))
	if err != nil {
		r.log.Warn("geocode lookup failed", "listingId", h.ID, "error", err)
		return nil, &outcome.SkipRecord{ID: h.ID, Address: display, Reason: outcome.ReasonLookupFailed}
	}
	if len(candidates) == 0 {
		r.log.Debug("geocode returned no results", "listingId", h.ID, "address", display)
		return nil, &outcome.SkipRecord{ID: h.ID, Address: display, Reason: outcome.ReasonLookupFailed}
	}

	return &ResolvedLocation{ID: h.ID, Lat: candidates[0].Lat, Lng: candidates[0].Lng}, nil
}

// addressQuery decides what to send to the geocoder, or why not to send
// anything. Structured addresses must be complete; a partially filled
// structured address is invalid rather than guessable.
func addressQuery(h listing.House) (query, skipReason string) {
	a := h.Address
	structured := a.Street != "" || a.City != "" || a.State != "" || a.Zip != ""

	if h.Variant == listing.VariantDetailed || structured {
		if a.Street != "" && a.City != "" && a.State != "" && a.Zip != "" {
			return normalize.Compose(a.Street, a.City, a.State, a.Zip), ""
		}
		if !structured && strings.TrimSpace(a.Raw) == "" {
			return "", outcome.ReasonNoAddress
		}
		if raw := strings.TrimSpace(a.Raw); raw != "" {
			return raw, ""
		}
		return "", outcome.ReasonInvalidAddress
	}

	if raw := strings.TrimSpace(a.Raw); raw != "" {
		return raw, ""
	}
	return "", outcome.ReasonNoAddress
}
