package celestial

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Input modalities of the relay's request envelope.
const (
	InputText  = "text"
	InputImage = "image"
)

// IdentifyRequest is the relay's request envelope. Exactly one of Query/Image
// is populated, selected by Type. Image is a data URL (raw base64 is also
// accepted).
type IdentifyRequest struct {
	Type  string `json:"type"`
	Query string `json:"query,omitempty"`
	Image string `json:"image,omitempty"`
}

func (r *IdentifyRequest) Validate() error {
	switch r.Type {
	case InputText:
		if strings.TrimSpace(r.Query) == "" {
			return errors.New("query must not be empty")
		}
	case InputImage:
		if strings.TrimSpace(r.Image) == "" {
			return errors.New("image must not be empty")
		}
	default:
		return fmt.Errorf("unknown input type %q; use %q or %q", r.Type, InputText, InputImage)
	}
	return nil
}

// Info is the ten-field descriptive record for an identified celestial object.
type Info struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Distance    string `json:"distance"`
	Orbit       string `json:"orbit"`
	Moons       string `json:"moons"`
	Size        string `json:"size"`
	Composition string `json:"composition"`
	Special     string `json:"special"`
	Notes       string `json:"notes"`
}

// ParseInfo decodes structured-output arguments and enforces the ten-field
// contract: every field present and a string. Upstream schema enforcement is
// not trusted.
func ParseInfo(raw []byte) (Info, error) {
	var p struct {
		Name        *string `json:"name"`
		Type        *string `json:"type"`
		Description *string `json:"description"`
		Distance    *string `json:"distance"`
		Orbit       *string `json:"orbit"`
		Moons       *string `json:"moons"`
		Size        *string `json:"size"`
		Composition *string `json:"composition"`
		Special     *string `json:"special"`
		Notes       *string `json:"notes"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return Info{}, fmt.Errorf("bad celestial info JSON: %w", err)
	}

	for _, f := range []struct {
		name  string
		value *string
	}{
		{"name", p.Name},
		{"type", p.Type},
		{"description", p.Description},
		{"distance", p.Distance},
		{"orbit", p.Orbit},
		{"moons", p.Moons},
		{"size", p.Size},
		{"composition", p.Composition},
		{"special", p.Special},
		{"notes", p.Notes},
	} {
		if f.value == nil {
			return Info{}, fmt.Errorf("celestial info missing field %q", f.name)
		}
	}

	return Info{
		Name:        *p.Name,
		Type:        *p.Type,
		Description: *p.Description,
		Distance:    *p.Distance,
		Orbit:       *p.Orbit,
		Moons:       *p.Moons,
		Size:        *p.Size,
		Composition: *p.Composition,
		Special:     *p.Special,
		Notes:       *p.Notes,
	}, nil
}
