package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyResponse is returned when the AI backend answers without a text payload.
	ErrEmptyResponse = errors.New("no data received from the AI backend")
	// ErrEmptyPrompt rejects a blank or whitespace-only prompt before the AI is called.
	ErrEmptyPrompt = errors.New("prompt must not be empty")
	// ErrMalformedResponse marks a payload that does not match the declared schema.
	// It never leaves the location service; it only classifies the soft failure.
	ErrMalformedResponse = errors.New("AI response does not match the location schema")
)

// LocationPoint is a named coordinate returned for one search.
type LocationPoint struct {
	ID          string  `json:"id" example:"loc-1718000000000-0"`                             // Unique within one result set.
	Name        string  `json:"name" example:"Cristo Rey"`                                    // Display name of the place.
	Lat         float64 `json:"lat" example:"3.4356"`                                         // Latitude (WGS 84).
	Lng         float64 `json:"lng" example:"-76.5658"`                                       // Longitude (WGS 84).
	Description string  `json:"description" example:"Monumento icónico con vista de la ciudad."` // Short description in the region language.
}

// RawLocation is one element of the JSON array produced by the AI backend.
type RawLocation struct {
	Name        *string  `json:"name"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Description *string  `json:"description"`
}

// Complete reports whether every schema-required field is present.
func (r RawLocation) Complete() bool {
	return r.Name != nil && r.Lat != nil && r.Lng != nil && r.Description != nil
}

// LocationRequest is the body accepted by the location proxy endpoint.
type LocationRequest struct {
	Prompt  string `json:"prompt" example:"Lugares para bailar salsa"` // Free-text request.
	IsRoute bool   `json:"is_route" example:"false"`                   // Ask for points ordered as a route.
}

// Outcome classifies how a location request resolved.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeNoMatches Outcome = "no_matches"
	OutcomeMalformed Outcome = "malformed"
	OutcomeFailed    Outcome = "failed"
)

// LocationResult is the parsed answer to one request.
type LocationResult struct {
	Points   []LocationPoint `json:"points"`
	Outcome  Outcome         `json:"outcome"`
	Rejected []RawLocation   `json:"-"`
}

// LocationResponse is the JSON body written by the location proxy endpoint.
type LocationResponse struct {
	Points  []LocationPoint `json:"points"`
	Outcome Outcome         `json:"outcome" example:"ok"`
	Count   int             `json:"count" example:"3"`
}

// NewPointID builds the identifier for the index-th point of a result created at t.
func NewPointID(t time.Time, index int) string {
	return fmt.Sprintf("loc-%d-%d", t.UnixMilli(), index)
}
