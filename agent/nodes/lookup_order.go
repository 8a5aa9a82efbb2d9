package dialognode

import (
	"fmt"

	"github.com/rs/zerolog/log"

	catalogx "github.com/tanpawarit/ecom-support-agent/agent/catalog"
	contractx "github.com/tanpawarit/ecom-support-agent/agent/contract"
)

// LookupOrder answers an intercepted order token straight from the ledger;
// the backend is never invoked for this turn.
func LookupOrder(in *GraphState, ledger *catalogx.OrderLedger) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	log.Debug().
		Str("component", "orchestrator").
		Str("session_id", in.SessionID).
		Str("order_id", in.OrderToken).
		Msg("order token intercepted")

	in.Reply = ledger.StatusReply(in.OrderToken)
	return in, nil
}
