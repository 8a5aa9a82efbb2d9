package catalog

import (
	"strings"
	"testing"
)

func TestOrderLedgerLookup(t *testing.T) {
	t.Parallel()

	ledger := NewOrderLedger()

	rec, ok := ledger.Lookup("ORD123")
	if !ok {
		t.Fatal("Lookup(ORD123) ok = false, want true")
	}
	if rec.Status != StatusDelivered {
		t.Fatalf("unexpected status: %s", rec.Status)
	}
	if got := FormatStatus(rec); got != "Order ORD123 is currently Delivered (as of 2024-01-15)." {
		t.Fatalf("unexpected formatted status: %q", got)
	}

	if _, ok := ledger.Lookup("ORD999"); ok {
		t.Fatal("Lookup(ORD999) ok = true, want false")
	}
}

func TestOrderLedgerStatusReplyMiss(t *testing.T) {
	t.Parallel()

	ledger := NewOrderLedger()
	reply := ledger.StatusReply("ORD999")
	if !strings.Contains(reply, "couldn't find that order") {
		t.Fatalf("unexpected miss reply: %q", reply)
	}
}

func TestOrderLedgerRecordsSorted(t *testing.T) {
	t.Parallel()

	recs := NewOrderLedger().Records()
	if len(recs) != 3 {
		t.Fatalf("expected 3 seeded orders, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i-1].OrderID >= recs[i].OrderID {
			t.Fatalf("records not sorted: %s before %s", recs[i-1].OrderID, recs[i].OrderID)
		}
	}
}

func TestFindToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "embedded", text: "Where is ORD123?", want: "ORD123"},
		{name: "first occurrence wins", text: "ORD124 then ORD123", want: "ORD124"},
		{name: "unknown id still tokenized", text: "status of ORD999 please", want: "ORD999"},
		{name: "no token", text: "where is my package", want: ""},
		{name: "truncated at end", text: "what about ORD12", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FindToken(tt.text); got != tt.want {
				t.Fatalf("FindToken(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPolicyStoreLookup(t *testing.T) {
	t.Parallel()

	policies := NewPolicyStore()

	if got := policies.Lookup("general"); !strings.Contains(got, "30 days of purchase") {
		t.Fatalf("unexpected general policy: %q", got)
	}
	if got := policies.Lookup("warranty"); got != policyFallback {
		t.Fatalf("unexpected fallback: %q", got)
	}

	for _, topic := range policies.Topics() {
		if policies.Lookup(topic) == policyFallback {
			t.Fatalf("topic %q resolved to fallback", topic)
		}
	}
}
