// Package mapview turns a result list into the view model the browser map draws.
// Build is a pure function: the same inputs always give the same view, and every
// new view makes the client re-fit its viewport.
package mapview

import (
	"fmt"

	"github.com/FACorreiaa/go-geomapper/internal/types"
)

const (
	TileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	TileAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`

	FitPadding = 50
	FitMaxZoom = 16
)

// RouteStyle is the dashed line drawn in route mode.
var RouteStyle = LineStyle{
	Color:     "#4f46e5",
	Weight:    4,
	Opacity:   0.7,
	DashArray: "10, 10",
}

type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

type Popup struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Coords      string `json:"coords"`
}

type Marker struct {
	ID       string       `json:"id"`
	Position types.LatLng `json:"position"`
	Popup    Popup        `json:"popup"`
}

type LineStyle struct {
	Color     string  `json:"color"`
	Weight    int     `json:"weight"`
	Opacity   float64 `json:"opacity"`
	DashArray string  `json:"dash_array"`
}

type Polyline struct {
	Positions []types.LatLng `json:"positions"`
	Style     LineStyle      `json:"style"`
}

// Fit asks the client to fit Bounds into the viewport.
type Fit struct {
	Bounds  types.Bounds `json:"bounds"`
	Padding int          `json:"padding"`
	MaxZoom int          `json:"max_zoom"`
}

// View is everything the client needs to draw one map state.
type View struct {
	Tiles       TileLayer    `json:"tiles"`
	Center      types.LatLng `json:"center"`
	Zoom        int          `json:"zoom"`
	RegionLabel string       `json:"region_label"`
	Markers     []Marker     `json:"markers"`
	Fit         *Fit         `json:"fit,omitempty"`
	Polyline    *Polyline    `json:"polyline,omitempty"`
}

// Build renders points for region. A polyline is present only in route mode with
// at least two points, and follows the list order exactly.
func Build(points []types.LocationPoint, isRoute bool, region types.Region) View {
	v := View{
		Tiles:       TileLayer{URL: TileURL, Attribution: TileAttribution},
		Center:      region.Center,
		Zoom:        region.DefaultZoom,
		RegionLabel: region.Name,
		Markers:     make([]Marker, 0, len(points)),
	}

	for _, p := range points {
		v.Markers = append(v.Markers, Marker{
			ID:       p.ID,
			Position: types.LatLng{Lat: p.Lat, Lng: p.Lng},
			Popup: Popup{
				Title:       p.Name,
				Description: p.Description,
				Coords:      FormatCoords(p.Lat, p.Lng, 4),
			},
		})
	}

	if b, ok := Bounds(points); ok {
		v.Fit = &Fit{Bounds: b, Padding: FitPadding, MaxZoom: FitMaxZoom}
	}

	if isRoute && len(points) >= 2 {
		line := &Polyline{Positions: make([]types.LatLng, len(points)), Style: RouteStyle}
		for i, p := range points {
			line.Positions[i] = types.LatLng{Lat: p.Lat, Lng: p.Lng}
		}
		v.Polyline = line
	}

	return v
}

// Bounds returns the smallest box holding every point. ok is false for an empty list.
func Bounds(points []types.LocationPoint) (b types.Bounds, ok bool) {
	if len(points) == 0 {
		return types.Bounds{}, false
	}
	b = types.Bounds{South: points[0].Lat, North: points[0].Lat, West: points[0].Lng, East: points[0].Lng}
	for _, p := range points[1:] {
		b.South = min(b.South, p.Lat)
		b.North = max(b.North, p.Lat)
		b.West = min(b.West, p.Lng)
		b.East = max(b.East, p.Lng)
	}
	return b, true
}

// FormatCoords renders "lat, lng" with the given number of decimals.
func FormatCoords(lat, lng float64, decimals int) string {
	return fmt.Sprintf("%.*f, %.*f", decimals, lat, decimals, lng)
}
