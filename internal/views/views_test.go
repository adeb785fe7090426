package views

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-geomapper/internal/mapview"
	"github.com/FACorreiaa/go-geomapper/internal/types"
)

func render(t *testing.T, data PageData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page(data).Render(context.Background(), &buf))
	return buf.String()
}

func TestPage_Empty(t *testing.T) {
	region := types.DefaultRegion()
	data, err := NewPageData("", false, false, "", nil, mapview.Build(nil, false, region))
	require.NoError(t, err)

	html := render(t, data)
	assert.Contains(t, html, "Cali GeoMapper")
	assert.Contains(t, html, "Generar Mapa")
	assert.Contains(t, html, "Mapa enfocado en Cali, Colombia")
	assert.NotContains(t, html, "Resultados")
	assert.NotContains(t, html, `action="/clear"`)
	assert.NotContains(t, html, `role="alert"`)
}

func TestPage_WithResults(t *testing.T) {
	points := []types.LocationPoint{
		{ID: "loc-1-0", Name: "Cristo Rey", Lat: 3.43561, Lng: -76.56582, Description: strings.Repeat("a", 80)},
		{ID: "loc-1-1", Name: "Zoológico <de> Cali", Lat: 3.44812, Lng: -76.55561, Description: "Zoo"},
	}
	data, err := NewPageData("salsa", true, false, "", points, mapview.Build(points, true, types.DefaultRegion()))
	require.NoError(t, err)

	require.Len(t, data.Results, 2)
	assert.Equal(t, 1, data.Results[0].Index)
	assert.Equal(t, "3.436, -76.566", data.Results[0].Coords)
	assert.Equal(t, strings.Repeat("a", 60)+"…", data.Results[0].Description)

	html := render(t, data)
	assert.Contains(t, html, "#1")
	assert.Contains(t, html, "#2")
	assert.Contains(t, html, "Zoológico &lt;de&gt; Cali")
	assert.Contains(t, html, `action="/clear"`)
	assert.Contains(t, html, "checked")
	assert.Contains(t, html, "data-view=")
}

func TestPage_BusyAndError(t *testing.T) {
	data, err := NewPageData("salsa", false, true, "Error al conectar con la IA.", nil, mapview.Build(nil, false, types.DefaultRegion()))
	require.NoError(t, err)

	html := render(t, data)
	assert.Contains(t, html, "Buscando...")
	assert.Contains(t, html, "disabled")
	assert.Contains(t, html, "Error al conectar con la IA.")
}

func TestStatic(t *testing.T) {
	_, err := fs.Stat(Static(), "map.js")
	assert.NoError(t, err)
	_, err = fs.Stat(Static(), "app.css")
	assert.NoError(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ñañ…", truncate("ñañaña", 3))
}
