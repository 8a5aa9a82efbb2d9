package dialognode

import "strings"

// Command markers the generative backend may embed in free text. The
// orchestrator resolves them deterministically instead of trusting the
// generated wording.
const (
	markerCheckOrder     = "CHECK_ORDER:"
	markerCollectContact = "COLLECT_CONTACT"
)

type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandCheckOrder
	CommandCollectContact
)

// Command is the tagged result of scanning backend output for markers.
type Command struct {
	Kind    CommandKind
	OrderID string
}

// ParseCommand is the single extraction point for backend command markers.
// CHECK_ORDER takes precedence; its argument is the remainder after the
// colon, trimmed, cut at the first whitespace.
func ParseCommand(response string) Command {
	if idx := strings.Index(response, markerCheckOrder); idx >= 0 {
		rest := strings.TrimSpace(response[idx+len(markerCheckOrder):])
		if cut := strings.IndexFunc(rest, isSpace); cut >= 0 {
			rest = rest[:cut]
		}
		return Command{Kind: CommandCheckOrder, OrderID: rest}
	}

	if strings.Contains(response, markerCollectContact) {
		return Command{Kind: CommandCollectContact}
	}

	return Command{Kind: CommandNone}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
