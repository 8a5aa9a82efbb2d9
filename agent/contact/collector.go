package contact

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/ecom-support-agent/agent/contract"
	statex "github.com/tanpawarit/ecom-support-agent/agent/state"
)

// Stage identifies which field the collector is waiting for. The machine is
// cyclic: a successful persist resets it to StageAwaitingName.
type Stage string

const (
	StageAwaitingName  Stage = "awaiting_name"
	StageAwaitingEmail Stage = "awaiting_email"
	StageAwaitingPhone Stage = "awaiting_phone"
)

const (
	PromptName = "I'll connect you with a customer service representative. First, please provide your full name."

	promptEmail   = "Thank you! Please provide your email address."
	promptPhone   = "Thank you! Finally, please provide your phone number."
	promptDone    = "Thank you! Your information has been saved. A customer service representative will contact you shortly."
	repromptEmail = "That doesn't look like a valid email address. Please provide a valid email."
	repromptPhone = "That doesn't look like a valid phone number. Please provide a valid phone number."
)

var (
	// local-part "@" domain "." tld
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,}$`)
	// digits with optional separators and an optional leading +
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s().-]{5,18}[0-9]$`)
)

// Collector gathers name, email, and phone across turns and persists the
// completed record. Field values live in the session's ContactDraft; the
// collector itself holds no per-session state.
type Collector struct {
	sink contractx.ContactSink
	now  func() time.Time
}

func NewCollector(sink contractx.ContactSink) *Collector {
	return &Collector{sink: sink, now: time.Now}
}

// StageOf derives the current stage from the first empty field, keeping the
// strict name -> email -> phone fill order.
func StageOf(draft statex.ContactDraft) Stage {
	switch {
	case draft.Name == "":
		return StageAwaitingName
	case draft.Email == "":
		return StageAwaitingEmail
	default:
		return StageAwaitingPhone
	}
}

// Consume applies one inbound message to the collection flow and returns the
// conversational reply. Invalid input re-prompts without writing the field.
// A valid phone number completes the flow: the record is appended to the
// sink and the session draft is reset; a sink failure propagates and leaves
// the draft intact.
func (c *Collector) Consume(ctx context.Context, st *statex.SessionState, input string) (string, error) {
	if st == nil {
		return "", fmt.Errorf("%w: session state is nil", contractx.ErrValidation)
	}
	input = strings.TrimSpace(input)

	switch StageOf(st.Contact) {
	case StageAwaitingName:
		if input == "" {
			return PromptName, nil
		}
		st.Contact.Name = input
		return promptEmail, nil

	case StageAwaitingEmail:
		if !ValidEmail(input) {
			return repromptEmail, nil
		}
		st.Contact.Email = input
		return promptPhone, nil

	default:
		if !ValidPhone(input) {
			return repromptPhone, nil
		}

		rec := contractx.ContactRecord{
			Name:      st.Contact.Name,
			Email:     st.Contact.Email,
			Phone:     input,
			CreatedAt: c.now().UTC(),
		}
		if err := c.sink.Append(ctx, rec); err != nil {
			return "", fmt.Errorf("%w: %v", contractx.ErrPersistence, err)
		}

		log.Info().
			Str("component", "contact").
			Str("session_id", st.SessionID).
			Msg("contact record persisted")

		st.ResetContact()
		return promptDone, nil
	}
}

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func ValidPhone(s string) bool {
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}
