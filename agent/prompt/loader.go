package prompt

import (
	_ "embed"
	"strings"

	catalogx "github.com/tanpawarit/ecom-support-agent/agent/catalog"
)

//go:embed template/system.txt
var systemRaw string

// SystemPrompt renders the instruction preamble sent ahead of every backend
// call, with the stored return-policy texts appended so the model answers
// policy questions from them instead of improvising.
func SystemPrompt(policies *catalogx.PolicyStore) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(systemRaw))

	if policies != nil {
		b.WriteString("\n\nStored return policies:")
		for _, topic := range policies.Topics() {
			b.WriteString("\n- ")
			b.WriteString(topic)
			b.WriteString(": ")
			b.WriteString(policies.Lookup(topic))
		}
	}

	return b.String()
}
