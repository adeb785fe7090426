package locations

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-geomapper/internal/types"
)

func getSystemInstruction(region types.Region) string {
	return fmt.Sprintf(`
            You are a Geographic Information System (GIS) expert for %[1]s.
            Read the user's request and answer with the places it refers to, each with its latitude and longitude in %[1]s.

            When the user names a category (for example "salsa clubs" or "museums"), return the 3 to 5 most popular places of that kind.
            When the user gives a list of place names, return each of them with its approximate coordinates.
            When the user asks for a route, return the stops in the order that keeps the total travel distance short.

            Every coordinate must be inside %[1]s or close to it.
            Give every place a short, engaging description written in %[2]s.
            Return only the JSON array described by the response schema.`, region.Name, region.Language)
}

// buildUserPrompt returns the user turn. Route requests get an explicit ordering reminder.
func buildUserPrompt(prompt string, isRoute bool) string {
	prompt = strings.TrimSpace(prompt)
	if !isRoute {
		return prompt
	}
	return prompt + "\n\nTreat these places as the stops of one route and list them in visiting order, minimising the total travel distance."
}

func locationSchema(language string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: "A list of location points generated based on the user request.",
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":        {Type: genai.TypeString, Description: "Name of the location"},
				"lat":         {Type: genai.TypeNumber, Description: "Latitude"},
				"lng":         {Type: genai.TypeNumber, Description: "Longitude"},
				"description": {Type: genai.TypeString, Description: "Short description in " + language},
			},
			Required:         []string{"name", "lat", "lng", "description"},
			PropertyOrdering: []string{"name", "lat", "lng", "description"},
		},
	}
}

func newGenerateConfig(region types.Region, temperature float32) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: getSystemInstruction(region)}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   locationSchema(region.Language),
	}
	if temperature > 0 {
		config.Temperature = genai.Ptr[float32](temperature)
	}
	return config
}
