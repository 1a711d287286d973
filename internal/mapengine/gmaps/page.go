package gmaps

import (
	"sync"

	"github.com/yourorg/housemap-api/internal/mapengine"
)

// MarkerView is one placed marker as the page template consumes it.
type MarkerView struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Title string  `json:"title"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Popup string  `json:"popup"`
}

// PageSnapshot is an immutable copy of the page model.
type PageSnapshot struct {
	MapType mapengine.MapType `json:"mapType"`
	Center  mapengine.Coord   `json:"center"`
	Fitted  bool              `json:"fitted"`
	Markers []MarkerView      `json:"markers"`
}

// PageMap is the server-side model of one map instance: the markers placed
// during the current pass, the base layer and the fitted viewport. The HTML
// template renders a snapshot of it for the browser.
type PageMap struct {
	mu      sync.Mutex
	mapType mapengine.MapType
	markers []MarkerView
	center  mapengine.Coord
	fitted  bool
}

func newPageMap(mt mapengine.MapType) *PageMap {
	return &PageMap{mapType: mt}
}

func (m *PageMap) Place(mk mapengine.Marker) (mapengine.Handle, error) {
	if !mk.Position.Finite() {
		return nil, mapengine.ErrBadPosition
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers = append(m.markers, MarkerView{
		ID:    mk.ID,
		Label: mk.Label,
		Title: mk.Title,
		Lat:   mk.Position.Lat,
		Lng:   mk.Position.Lng,
		Popup: mk.PopupHTML,
	})
	return &pageHandle{m: m, id: mk.ID}, nil
}

func (m *PageMap) FitBounds(b mapengine.Bounds) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = b.Center()
	m.fitted = true
}

func (m *PageMap) SetType(mt mapengine.MapType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mapType = mt
}

// Snapshot copies the current page state.
func (m *PageMap) Snapshot() PageSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	markers := make([]MarkerView, len(m.markers))
	copy(markers, m.markers)
	return PageSnapshot{
		MapType: m.mapType,
		Center:  m.center,
		Fitted:  m.fitted,
		Markers: markers,
	}
}

func (m *PageMap) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.markers[:0]
	for _, mk := range m.markers {
		if mk.ID != id {
			kept = append(kept, mk)
		}
	}
	m.markers = kept
}

// pageHandle detaches one marker from the page model on release.
type pageHandle struct {
	once sync.Once
	m    *PageMap
	id   string
}

func (h *pageHandle) Release() {
	h.once.Do(func() { h.m.remove(h.id) })
}
