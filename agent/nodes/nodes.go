package dialognode

import (
	"errors"
	"strings"
	"time"

	statex "github.com/tanpawarit/ecom-support-agent/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

// Route names the deterministic path chosen for a turn.
type Route string

const (
	RouteCollectContact Route = "collect_contact"
	RouteLookupOrder    Route = "lookup_order"
	RouteGenerate       Route = "generate"
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
}

// GraphState flows through the dialogue graph for one turn.
type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session *statex.SessionState

	Route      Route
	OrderToken string

	RawResponse string
	Reply       string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}
