package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	catalogx "github.com/tanpawarit/ecom-support-agent/agent/catalog"
	contactx "github.com/tanpawarit/ecom-support-agent/agent/contact"
	contractx "github.com/tanpawarit/ecom-support-agent/agent/contract"
	nodex "github.com/tanpawarit/ecom-support-agent/agent/nodes"
	promptx "github.com/tanpawarit/ecom-support-agent/agent/prompt"
	statex "github.com/tanpawarit/ecom-support-agent/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

// Orchestrator processes one inbound message at a time for a session:
// deterministic interceptors first, the generative backend otherwise, and
// backend command markers resolved deterministically afterwards.
type Orchestrator struct {
	store     statex.Store
	ledger    *catalogx.OrderLedger
	policies  *catalogx.PolicyStore
	collector *contactx.Collector
	generator contractx.Generator

	graphRunner  compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
	systemPrompt string

	now func() time.Time
}

func New(
	store statex.Store,
	ledger *catalogx.OrderLedger,
	policies *catalogx.PolicyStore,
	sink contractx.ContactSink,
	generator contractx.Generator,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if ledger == nil {
		return nil, errors.New("order ledger is required")
	}
	if policies == nil {
		return nil, errors.New("policy store is required")
	}
	if sink == nil {
		return nil, errors.New("contact sink is required")
	}
	if generator == nil {
		return nil, errors.New("generator is required")
	}

	o := &Orchestrator{
		store:        store,
		ledger:       ledger,
		policies:     policies,
		collector:    contactx.NewCollector(sink),
		generator:    generator,
		systemPrompt: promptx.SystemPrompt(policies),
		now:          time.Now,
	}

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleMessage processes one turn synchronously and returns the reply.
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID string, text string) (string, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: strings.TrimSpace(sessionID),
		Text:      text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}
