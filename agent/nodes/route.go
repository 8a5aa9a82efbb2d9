package dialognode

import (
	"fmt"

	catalogx "github.com/tanpawarit/ecom-support-agent/agent/catalog"
	contractx "github.com/tanpawarit/ecom-support-agent/agent/contract"
)

// ChooseRoute applies the deterministic interceptors in strict precedence
// order: an in-progress contact collection owns the whole turn; otherwise
// the first order token that resolves in the ledger short-circuits to a
// status reply; everything else goes to the generative backend. An order
// token that does not resolve falls through to the backend.
func ChooseRoute(in *GraphState, ledger *catalogx.OrderLedger) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	if in.Session.CollectingContact {
		in.Route = RouteCollectContact
		return in, nil
	}

	if token := catalogx.FindToken(in.Text); token != "" {
		if _, ok := ledger.Lookup(token); ok {
			in.Route = RouteLookupOrder
			in.OrderToken = token
			return in, nil
		}
	}

	in.Route = RouteGenerate
	return in, nil
}
