package contact

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	contractx "github.com/tanpawarit/ecom-support-agent/agent/contract"
	statex "github.com/tanpawarit/ecom-support-agent/agent/state"
)

type fakeSink struct {
	appendErr error
	records   []contractx.ContactRecord
}

func (f *fakeSink) Append(_ context.Context, rec contractx.ContactRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records = append(f.records, rec)
	return nil
}

func newTestState() *statex.SessionState {
	st := statex.NewSessionState("s1", timeNowFixed())
	st.CollectingContact = true
	return st
}

func TestCollectorFullFlow(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	collector := NewCollector(sink)
	st := newTestState()
	ctx := context.Background()

	reply, err := collector.Consume(ctx, st, "Jane Doe")
	if err != nil {
		t.Fatalf("Consume(name) error = %v", err)
	}
	if !strings.Contains(reply, "email") {
		t.Fatalf("expected email prompt, got %q", reply)
	}

	reply, err = collector.Consume(ctx, st, "jane@example.com")
	if err != nil {
		t.Fatalf("Consume(email) error = %v", err)
	}
	if !strings.Contains(reply, "phone") {
		t.Fatalf("expected phone prompt, got %q", reply)
	}

	reply, err = collector.Consume(ctx, st, "+1 (555) 123-4567")
	if err != nil {
		t.Fatalf("Consume(phone) error = %v", err)
	}
	if !strings.Contains(reply, "has been saved") {
		t.Fatalf("expected closing confirmation, got %q", reply)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected exactly 1 appended record, got %d", len(sink.records))
	}
	rec := sink.records[0]
	if rec.Name != "Jane Doe" || rec.Email != "jane@example.com" || rec.Phone != "+1 (555) 123-4567" {
		t.Fatalf("unexpected record: %#v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("record timestamp is zero")
	}

	// machine is cyclic: draft cleared and flag reset
	if !st.Contact.Empty() {
		t.Fatalf("draft not reset: %#v", st.Contact)
	}
	if st.CollectingContact {
		t.Fatal("collecting flag not cleared after persist")
	}
	if StageOf(st.Contact) != StageAwaitingName {
		t.Fatalf("unexpected stage after reset: %s", StageOf(st.Contact))
	}
}

func TestCollectorInvalidEmailReprompts(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	collector := NewCollector(sink)
	st := newTestState()
	ctx := context.Background()

	if _, err := collector.Consume(ctx, st, "Jane Doe"); err != nil {
		t.Fatalf("Consume(name) error = %v", err)
	}

	reply, err := collector.Consume(ctx, st, "not-an-email")
	if err != nil {
		t.Fatalf("Consume(bad email) error = %v", err)
	}
	if !strings.Contains(reply, "valid email") {
		t.Fatalf("expected email re-prompt, got %q", reply)
	}

	// idempotent per field: the email stays absent, stage unchanged
	if st.Contact.Email != "" {
		t.Fatalf("email written on invalid input: %q", st.Contact.Email)
	}
	if StageOf(st.Contact) != StageAwaitingEmail {
		t.Fatalf("unexpected stage: %s", StageOf(st.Contact))
	}
}

func TestCollectorInvalidPhoneReprompts(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	collector := NewCollector(sink)
	st := newTestState()
	ctx := context.Background()

	mustConsume(t, collector, st, "Jane Doe")
	mustConsume(t, collector, st, "jane@example.com")

	reply, err := collector.Consume(ctx, st, "call me maybe")
	if err != nil {
		t.Fatalf("Consume(bad phone) error = %v", err)
	}
	if !strings.Contains(reply, "valid phone") {
		t.Fatalf("expected phone re-prompt, got %q", reply)
	}
	if len(sink.records) != 0 {
		t.Fatalf("record appended on invalid phone: %d", len(sink.records))
	}
	if st.Contact.Phone != "" {
		t.Fatalf("phone written on invalid input: %q", st.Contact.Phone)
	}
}

func TestCollectorPersistFailurePropagates(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{appendErr: errors.New("disk full")}
	collector := NewCollector(sink)
	st := newTestState()
	ctx := context.Background()

	mustConsume(t, collector, st, "Jane Doe")
	mustConsume(t, collector, st, "jane@example.com")

	_, err := collector.Consume(ctx, st, "555-123-4567")
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if !errors.Is(err, contractx.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}

	// draft intact so the turn can be retried
	if st.Contact.Name == "" || st.Contact.Email == "" {
		t.Fatalf("draft lost on persist failure: %#v", st.Contact)
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.co", "jane.doe+tag@example.com", "x_y@sub.domain.org"}
	invalid := []string{"", "plain", "a@b", "a b@c.com", "@example.com", "a@.com"}

	for _, s := range valid {
		if !ValidEmail(s) {
			t.Fatalf("ValidEmail(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidEmail(s) {
			t.Fatalf("ValidEmail(%q) = true, want false", s)
		}
	}
}

func TestValidPhone(t *testing.T) {
	t.Parallel()

	valid := []string{"5551234567", "+1 (555) 123-4567", "555-123-4567", "020 7946 0958"}
	invalid := []string{"", "12345", "phone", "555-CALL-NOW", "+123456789012345678901"}

	for _, s := range valid {
		if !ValidPhone(s) {
			t.Fatalf("ValidPhone(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidPhone(s) {
			t.Fatalf("ValidPhone(%q) = true, want false", s)
		}
	}
}

func TestCSVSinkHeaderOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "requests.csv")
	sink, err := NewCSVSink(path)
	if err != nil {
		t.Fatalf("NewCSVSink() error = %v", err)
	}

	ctx := context.Background()
	rec := contractx.ContactRecord{Name: "Jane", Email: "jane@example.com", Phone: "5551234567", CreatedAt: timeNowFixed()}
	if err := sink.Append(ctx, rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	rec.Name = "John"
	if err := sink.Append(ctx, rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][3] != "Timestamp" {
		t.Fatalf("unexpected header: %#v", rows[0])
	}
	if rows[1][0] != "Jane" || rows[2][0] != "John" {
		t.Fatalf("unexpected row order: %#v", rows[1:])
	}
	if rows[1][3] != timeNowFixed().Format("2006-01-02 15:04:05") {
		t.Fatalf("unexpected timestamp format: %q", rows[1][3])
	}
}

func timeNowFixed() time.Time {
	return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
}

func mustConsume(t *testing.T, c *Collector, st *statex.SessionState, input string) {
	t.Helper()
	if _, err := c.Consume(context.Background(), st, input); err != nil {
		t.Fatalf("Consume(%q) error = %v", input, err)
	}
}
