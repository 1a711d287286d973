package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookupReturnsOrderedCandidates(t *testing.T) {
	var gotAddress, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAddress = r.URL.Query().Get("address")
		gotKey = r.URL.Query().Get("key")
		fmt.Fprint(w, `{
			"status": "OK",
			"results": [
				{"formatted_address": "742 Evergreen Terrace, Springfield, OR 97403", "geometry": {"location": {"lat": 44.05, "lng": -123.02}}},
				{"formatted_address": "742 Evergreen Terrace, Springfield, IL 62701", "geometry": {"location": {"lat": 39.8, "lng": -89.64}}}
			]
		}`)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := c.Lookup(context.Background(), "742 Evergreen Terrace")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if gotAddress != "742 Evergreen Terrace" {
		t.Errorf("address param = %q", gotAddress)
	}
	if gotKey != "test-key" {
		t.Errorf("key param = %q", gotKey)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].Lat != 44.05 || got[0].Lng != -123.02 {
		t.Errorf("first candidate = %+v", got[0])
	}
}

func TestLookupZeroResultsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ZERO_RESULTS", "results": []}`)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := c.Lookup(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d candidates, want 0", len(got))
	}
}

func TestLookupServiceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "REQUEST_DENIED", "results": []}`)
	}))
	defer srv.Close()

	c := NewClient("bad-key", WithBaseURL(srv.URL))
	if _, err := c.Lookup(context.Background(), "742 Evergreen Terrace"); err == nil {
		t.Fatal("expected error for REQUEST_DENIED status")
	}
}

func TestLookupHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	if _, err := c.Lookup(context.Background(), "742 Evergreen Terrace"); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestLookupEmptyAddress(t *testing.T) {
	c := NewClient("test-key")
	if _, err := c.Lookup(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank address")
	}
}
