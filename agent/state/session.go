package state

import (
	"strings"
	"time"
)

// MaxExchanges bounds the conversation window forwarded to the backend:
// the most recent 5 user/assistant exchange pairs.
const MaxExchanges = 5

// Exchange is one completed user/assistant turn.
type Exchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// ContactDraft accumulates contact fields across turns. Fields fill in
// strict order (name, email, phone); a draft never reaches a sink — only a
// fully validated record does.
type ContactDraft struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (d ContactDraft) Empty() bool {
	return d.Name == "" && d.Email == "" && d.Phone == ""
}

// SessionState is the per-session source of truth for dialogue control.
// The orchestrator loads it at the start of a turn and saves it at the end;
// nothing session-scoped lives anywhere else.
type SessionState struct {
	SessionID string `json:"session_id"`

	// CollectingContact routes every inbound message to the contact
	// collector until the flow completes.
	CollectingContact bool         `json:"collecting_contact,omitempty"`
	Contact           ContactDraft `json:"contact,omitempty"`

	Exchanges []Exchange `json:"exchanges,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewSessionState(sessionID string, now time.Time) *SessionState {
	return &SessionState{
		SessionID: strings.TrimSpace(sessionID),
		UpdatedAt: now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// AppendExchange records a completed turn and trims the window to the most
// recent MaxExchanges pairs.
func (s *SessionState) AppendExchange(user, assistant string) {
	s.Exchanges = append(s.Exchanges, Exchange{User: user, Assistant: assistant})
	if len(s.Exchanges) > MaxExchanges {
		s.Exchanges = s.Exchanges[len(s.Exchanges)-MaxExchanges:]
	}
}

// Window returns a copy of the bounded exchange history.
func (s *SessionState) Window() []Exchange {
	out := make([]Exchange, len(s.Exchanges))
	copy(out, s.Exchanges)
	return out
}

// ResetContact clears the draft and the collecting flag after a successful
// persist, leaving the machine ready for a new collection round.
func (s *SessionState) ResetContact() {
	s.Contact = ContactDraft{}
	s.CollectingContact = false
}
