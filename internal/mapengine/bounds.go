package mapengine

// Bounds accumulates the rectangle spanning every placed marker.
type Bounds struct {
	set                            bool
	minLat, maxLat, minLng, maxLng float64
}

func (b *Bounds) Extend(c Coord) {
	if !b.set {
		b.set = true
		b.minLat, b.maxLat = c.Lat, c.Lat
		b.minLng, b.maxLng = c.Lng, c.Lng
		return
	}
	if c.Lat < b.minLat {
		b.minLat = c.Lat
	}
	if c.Lat > b.maxLat {
		b.maxLat = c.Lat
	}
	if c.Lng < b.minLng {
		b.minLng = c.Lng
	}
	if c.Lng > b.maxLng {
		b.maxLng = c.Lng
	}
}

func (b *Bounds) Empty() bool { return !b.set }

func (b *Bounds) Center() Coord {
	if !b.set {
		return Coord{}
	}
	return Coord{
		Lat: (b.minLat + b.maxLat) / 2,
		Lng: (b.minLng + b.maxLng) / 2,
	}
}

// SouthWest and NorthEast expose the corners for viewport fitting.
func (b *Bounds) SouthWest() Coord { return Coord{Lat: b.minLat, Lng: b.minLng} }
func (b *Bounds) NorthEast() Coord { return Coord{Lat: b.maxLat, Lng: b.maxLng} }
