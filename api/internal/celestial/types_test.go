package celestial

import (
	"testing"
)

const fullRecord = `{
	"name": "Halley's Comet",
	"type": "comet",
	"description": "A short-period comet visible from Earth every 72-80 years.",
	"distance": "0.59 AU at perihelion",
	"orbit": "Highly elliptical retrograde orbit around the Sun",
	"moons": "none",
	"size": "About 15 by 8 kilometers",
	"composition": "Ice, dust and frozen gases",
	"special": "The only short-period comet regularly visible to the naked eye",
	"notes": "Next perihelion is expected in 2061."
}`

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "all ten fields present",
			raw:  fullRecord,
		},
		{
			name: "missing notes",
			raw: `{
				"name": "Mars", "type": "planet", "description": "d", "distance": "d",
				"orbit": "o", "moons": "2", "size": "s", "composition": "c", "special": "s"
			}`,
			wantErr: true,
		},
		{
			name: "non-string moons",
			raw: `{
				"name": "Mars", "type": "planet", "description": "d", "distance": "d",
				"orbit": "o", "moons": 2, "size": "s", "composition": "c", "special": "s",
				"notes": "n"
			}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			raw:     "I cannot identify this object.",
			wantErr: true,
		},
		{
			name:    "empty object",
			raw:     "{}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseInfo([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseInfo() expected error, got %+v", info)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInfo() unexpected error: %v", err)
			}
			if info.Name != "Halley's Comet" {
				t.Errorf("Name = %q, want %q", info.Name, "Halley's Comet")
			}
			if info.Type != "comet" {
				t.Errorf("Type = %q, want %q", info.Type, "comet")
			}
			if info.Notes == "" {
				t.Errorf("Notes is empty")
			}
		})
	}
}

func TestIdentifyRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     IdentifyRequest
		wantErr bool
	}{
		{"text query", IdentifyRequest{Type: InputText, Query: "Saturn"}, false},
		{"empty query", IdentifyRequest{Type: InputText, Query: ""}, true},
		{"whitespace query", IdentifyRequest{Type: InputText, Query: "   \t "}, true},
		{"image payload", IdentifyRequest{Type: InputImage, Image: "data:image/png;base64,aGk="}, false},
		{"empty image", IdentifyRequest{Type: InputImage, Image: ""}, true},
		{"unknown type", IdentifyRequest{Type: "audio", Query: "hum"}, true},
		{"missing type", IdentifyRequest{Query: "Saturn"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
