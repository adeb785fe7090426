package locations

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/FACorreiaa/go-geomapper/internal/types"
)

const earthRadiusKm = 6371.0

// cleanJSONResponse strips a markdown code fence the model sometimes wraps around its JSON.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(strings.TrimSpace(response), "```")

	return strings.TrimSpace(response)
}

// parseLocations decodes the model output into raw records and drops the ones
// missing a required field, returning how many were dropped. A payload that is not
// a JSON array, or whose records are all incomplete, is types.ErrMalformedResponse.
func parseLocations(text string) ([]types.RawLocation, int, error) {
	cleaned := cleanJSONResponse(text)
	if !strings.HasPrefix(cleaned, "[") {
		return nil, 0, fmt.Errorf("%w: payload is not a JSON array", types.ErrMalformedResponse)
	}

	var raw []types.RawLocation
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", types.ErrMalformedResponse, err)
	}

	complete := raw[:0]
	for _, r := range raw {
		if r.Complete() {
			complete = append(complete, r)
		}
	}
	dropped := len(raw) - len(complete)
	if dropped > 0 && len(complete) == 0 {
		return nil, dropped, fmt.Errorf("%w: all %d records are missing a required field", types.ErrMalformedResponse, dropped)
	}
	return complete, dropped, nil
}

// haversineKm returns the great-circle distance between a and b.
func haversineKm(a, b types.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// nearestNeighbourOrder keeps the first point and then repeatedly visits the closest
// unvisited one. Ties keep the model's order.
func nearestNeighbourOrder(points []types.LocationPoint) []types.LocationPoint {
	if len(points) < 3 {
		return points
	}

	ordered := make([]types.LocationPoint, 0, len(points))
	visited := make([]bool, len(points))
	current := 0
	visited[0] = true
	ordered = append(ordered, points[0])

	for len(ordered) < len(points) {
		from := types.LatLng{Lat: points[current].Lat, Lng: points[current].Lng}
		next, best := -1, math.MaxFloat64
		for i, p := range points {
			if visited[i] {
				continue
			}
			if d := haversineKm(from, types.LatLng{Lat: p.Lat, Lng: p.Lng}); d < best {
				next, best = i, d
			}
		}
		visited[next] = true
		ordered = append(ordered, points[next])
		current = next
	}
	return ordered
}

// routeLengthKm sums the leg distances in list order.
func routeLengthKm(points []types.LocationPoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += haversineKm(
			types.LatLng{Lat: points[i-1].Lat, Lng: points[i-1].Lng},
			types.LatLng{Lat: points[i].Lat, Lng: points[i].Lng},
		)
	}
	return total
}

func hashPrompt(prompt string) string {
	sum := blake2b.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
