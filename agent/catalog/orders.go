package catalog

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// OrderTokenPrefix starts every order identifier.
	OrderTokenPrefix = "ORD"
	// OrderTokenLen is the fixed token length: 3-letter prefix + 3 characters.
	OrderTokenLen = 6

	orderNotFoundReply = "Sorry, I couldn't find that order. Please check the order ID and try again."
)

type OrderStatus string

const (
	StatusDelivered  OrderStatus = "Delivered"
	StatusInTransit  OrderStatus = "In Transit"
	StatusProcessing OrderStatus = "Processing"
)

type OrderRecord struct {
	OrderID string
	Status  OrderStatus
	Date    string // calendar date, YYYY-MM-DD
}

// OrderLedger is a read-only lookup table of known orders, seeded at startup.
type OrderLedger struct {
	orders map[string]OrderRecord
}

func NewOrderLedger() *OrderLedger {
	return &OrderLedger{
		orders: map[string]OrderRecord{
			"ORD123": {OrderID: "ORD123", Status: StatusDelivered, Date: "2024-01-15"},
			"ORD124": {OrderID: "ORD124", Status: StatusInTransit, Date: "2024-01-18"},
			"ORD125": {OrderID: "ORD125", Status: StatusProcessing, Date: "2024-01-20"},
		},
	}
}

func (l *OrderLedger) Lookup(orderID string) (OrderRecord, bool) {
	rec, ok := l.orders[strings.TrimSpace(orderID)]
	return rec, ok
}

// StatusReply renders the status line for a known order, or the canned
// apology on a miss. A miss is not an error: the chat layer must always
// have something to show the user.
func (l *OrderLedger) StatusReply(orderID string) string {
	rec, ok := l.Lookup(orderID)
	if !ok {
		return orderNotFoundReply
	}
	return FormatStatus(rec)
}

func FormatStatus(rec OrderRecord) string {
	return fmt.Sprintf("Order %s is currently %s (as of %s).", rec.OrderID, rec.Status, rec.Date)
}

// Records returns all seeded orders sorted by id. The evaluator derives its
// expected phrases from this set instead of carrying its own copy.
func (l *OrderLedger) Records() []OrderRecord {
	out := make([]OrderRecord, 0, len(l.orders))
	for _, rec := range l.orders {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out
}

// FindToken scans text for the first order token: a 6-character substring
// beginning with "ORD". Returns "" when no full-length token is present.
func FindToken(text string) string {
	idx := strings.Index(text, OrderTokenPrefix)
	if idx < 0 || idx+OrderTokenLen > len(text) {
		return ""
	}
	return text[idx : idx+OrderTokenLen]
}
