package dialognode

import (
	"fmt"

	"github.com/rs/zerolog/log"

	catalogx "github.com/tanpawarit/ecom-support-agent/agent/catalog"
	contactx "github.com/tanpawarit/ecom-support-agent/agent/contact"
	contractx "github.com/tanpawarit/ecom-support-agent/agent/contract"
)

// InterpretReply resolves backend command markers. CHECK_ORDER replaces the
// generated text with the ledger status; COLLECT_CONTACT discards it, flips
// the collecting flag, and prompts for a name. Plain text passes verbatim.
func InterpretReply(in *GraphState, ledger *catalogx.OrderLedger) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	cmd := ParseCommand(in.RawResponse)
	switch cmd.Kind {
	case CommandCheckOrder:
		log.Debug().
			Str("component", "orchestrator").
			Str("session_id", in.SessionID).
			Str("order_id", cmd.OrderID).
			Msg("backend requested order check")
		in.Reply = ledger.StatusReply(cmd.OrderID)

	case CommandCollectContact:
		log.Debug().
			Str("component", "orchestrator").
			Str("session_id", in.SessionID).
			Msg("backend requested contact collection")
		in.Session.CollectingContact = true
		in.Reply = contactx.PromptName

	default:
		in.Reply = in.RawResponse
	}

	return in, nil
}
