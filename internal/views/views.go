// Package views renders the single page of the application.
package views

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"unicode/utf8"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-geomapper/internal/mapview"
	"github.com/FACorreiaa/go-geomapper/internal/types"
)

const descriptionPreview = 60

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplate = template.Must(template.New("page.html").ParseFS(templateFS, "templates/*.html"))

// ResultItem is one row of the results list.
type ResultItem struct {
	Index       int
	Name        string
	Description string
	Coords      string
}

// PageData is what the page template reads.
type PageData struct {
	Title       string
	Prompt      string
	IsRoute     bool
	Busy        bool
	Error       string
	HasResults  bool
	Results     []ResultItem
	RegionLabel string
	MapJSON     string
}

// NewPageData assembles the template input from the session fields and its map view.
func NewPageData(prompt string, isRoute, busy bool, errMsg string, points []types.LocationPoint, view mapview.View) (PageData, error) {
	raw, err := json.Marshal(view)
	if err != nil {
		return PageData{}, fmt.Errorf("encode map view: %w", err)
	}

	items := make([]ResultItem, len(points))
	for i, p := range points {
		items[i] = ResultItem{
			Index:       i + 1,
			Name:        p.Name,
			Description: truncate(p.Description, descriptionPreview),
			Coords:      mapview.FormatCoords(p.Lat, p.Lng, 3),
		}
	}

	return PageData{
		Title:       "Cali GeoMapper",
		Prompt:      prompt,
		IsRoute:     isRoute,
		Busy:        busy,
		Error:       errMsg,
		HasResults:  len(points) > 0,
		Results:     items,
		RegionLabel: view.RegionLabel,
		MapJSON:     string(raw),
	}, nil
}

// Page is the full HTML document as a templ component.
func Page(data PageData) templ.Component {
	return templ.FromGoHTML(pageTemplate, data)
}

// Static holds map.js and the stylesheet.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}
