package dialognode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/ecom-support-agent/agent/contract"
)

// Generate forwards the system preamble, the bounded conversation window,
// and the current message to the generative backend. A backend failure is
// fatal for the turn: it propagates instead of being replaced by fallback
// text.
func Generate(ctx context.Context, in *GraphState, gen contractx.Generator, systemPrompt string) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	messages := make([]contractx.Message, 0, 2*len(in.Session.Exchanges)+2)
	messages = append(messages, contractx.Message{Role: contractx.RoleSystem, Content: systemPrompt})
	for _, ex := range in.Session.Window() {
		messages = append(messages,
			contractx.Message{Role: contractx.RoleUser, Content: ex.User},
			contractx.Message{Role: contractx.RoleAssistant, Content: ex.Assistant},
		)
	}
	messages = append(messages, contractx.Message{Role: contractx.RoleUser, Content: in.Text})

	response, err := gen.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}

	in.RawResponse = response
	return in, nil
}
