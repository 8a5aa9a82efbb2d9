package contract

import "context"

// Generator is the generative-backend collaborator. It receives the full
// prompt (system preamble plus conversation window plus current message)
// and returns free text that may embed command markers.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// ContactSink is an append-only record store for collected contact details.
// Implementations must serialize concurrent appends.
type ContactSink interface {
	Append(ctx context.Context, rec ContactRecord) error
}
