package types

// LatLng is a coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a geographic bounding box.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

// Expand returns b grown by margin degrees on every side.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		South: b.South - margin,
		West:  b.West - margin,
		North: b.North + margin,
		East:  b.East + margin,
	}
}

// RegionPolicy decides what happens to points outside the target region.
type RegionPolicy string

const (
	// RegionPolicyAccept keeps out-of-region points and reports them in logs and metrics.
	RegionPolicyAccept RegionPolicy = "accept"
	// RegionPolicyReject drops out-of-region points from the result.
	RegionPolicyReject RegionPolicy = "reject"
)

// Region describes the fixed area the assistant is specialised in.
type Region struct {
	Name        string       `json:"name"`
	Language    string       `json:"language"`
	Center      LatLng       `json:"center"`
	DefaultZoom int          `json:"default_zoom"`
	Bounds      Bounds       `json:"bounds"`
	Tolerance   float64      `json:"tolerance"`
	Policy      RegionPolicy `json:"policy"`
}

// Covers reports whether the coordinate is within the region bounds plus tolerance.
func (r Region) Covers(lat, lng float64) bool {
	return r.Bounds.Expand(r.Tolerance).Contains(lat, lng)
}

// DefaultRegion is Cali, Colombia (Valle del Cauca).
func DefaultRegion() Region {
	return Region{
		Name:        "Cali, Colombia (Valle del Cauca)",
		Language:    "Spanish",
		Center:      LatLng{Lat: 3.4516, Lng: -76.5320},
		DefaultZoom: 13,
		Bounds:      Bounds{South: 3.30, West: -76.65, North: 3.55, East: -76.45},
		Tolerance:   0.15,
		Policy:      RegionPolicyAccept,
	}
}
