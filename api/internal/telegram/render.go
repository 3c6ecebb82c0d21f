package telegram

import (
	"strings"

	"celestial-relay/api/internal/celestial"
)

// Card formats an identification result as a plain-text Telegram message.
func Card(info celestial.Info) string {
	var b strings.Builder
	b.WriteString("🔭 " + info.Name + "\n\n")
	for _, line := range []struct {
		label, value string
	}{
		{"Type", info.Type},
		{"Description", info.Description},
		{"Distance", info.Distance},
		{"Orbit", info.Orbit},
		{"Moons", info.Moons},
		{"Size", info.Size},
		{"Composition", info.Composition},
		{"Special", info.Special},
		{"Notes", info.Notes},
	} {
		b.WriteString(line.label + ": " + line.value + "\n")
	}
	return b.String()
}
