package celestial

// ToolName is the single function the model is forced to call.
const ToolName = "celestial_info"

const ToolDescription = "Return structured information about a celestial object"

// Fields lists the schema property names in display order.
var Fields = []string{
	"name",
	"type",
	"description",
	"distance",
	"orbit",
	"moons",
	"size",
	"composition",
	"special",
	"notes",
}

var fieldDescriptions = map[string]string{
	"name":        "Common name of the object",
	"type":        "Kind of object: planet, star, comet, galaxy, nebula, moon, asteroid, ...",
	"description": "One or two sentence summary of the object",
	"distance":    "Distance from Earth in human-readable units",
	"orbit":       "Orbital characteristics, or what the object orbits",
	"moons":       "Number and names of notable moons, or 'none'",
	"size":        "Physical size: radius, diameter or extent",
	"composition": "What the object is made of",
	"special":     "Most notable special characteristics",
	"notes":       "Additional interesting facts",
}

// FieldDescription returns the human-readable description used in the tool
// schema for the given property.
func FieldDescription(name string) string {
	return fieldDescriptions[name]
}

// Schema builds the structured-output parameter schema: all ten Info fields
// required, strings only, nothing else allowed.
func Schema() map[string]any {
	props := make(map[string]any, len(Fields))
	for _, f := range Fields {
		props[f] = map[string]any{
			"type":        "string",
			"description": fieldDescriptions[f],
		}
	}
	required := make([]any, 0, len(Fields))
	for _, f := range Fields {
		required = append(required, f)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}
