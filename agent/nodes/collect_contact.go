package dialognode

import (
	"context"
	"fmt"

	contactx "github.com/tanpawarit/ecom-support-agent/agent/contact"
	contractx "github.com/tanpawarit/ecom-support-agent/agent/contract"
)

// CollectContact delegates the whole turn to the contact collector. No other
// interceptor runs while the collecting flag is set.
func CollectContact(ctx context.Context, in *GraphState, collector *contactx.Collector) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	reply, err := collector.Consume(ctx, in.Session, in.Text)
	if err != nil {
		return nil, err
	}
	in.Reply = reply
	return in, nil
}
