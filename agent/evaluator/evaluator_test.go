package evaluator

import (
	"math"
	"testing"

	catalogx "github.com/tanpawarit/ecom-support-agent/agent/catalog"
)

func newTestEvaluator() *Evaluator {
	return New(catalogx.NewOrderLedger())
}

func TestAccuracyOrderStatus(t *testing.T) {
	t.Parallel()

	eval := newTestEvaluator()

	rec := eval.Evaluate("Where is ORD123?", "Order ORD123 is currently Delivered (as of 2024-01-15).", 0.3)
	if rec.Metrics.Accuracy != 1.0 {
		t.Fatalf("accuracy = %v, want 1.0", rec.Metrics.Accuracy)
	}

	rec = eval.Evaluate("Where is ORD123?", "I don't know", 0.3)
	if rec.Metrics.Accuracy != 0.0 {
		t.Fatalf("accuracy = %v, want 0.0", rec.Metrics.Accuracy)
	}
}

func TestAccuracyOrderStatusCaseInsensitive(t *testing.T) {
	t.Parallel()

	eval := newTestEvaluator()
	rec := eval.Evaluate("ORD124 update?", "ORDER ORD124 IS CURRENTLY IN TRANSIT (AS OF 2024-01-18).", 0.2)
	if rec.Metrics.Accuracy != 1.0 {
		t.Fatalf("accuracy = %v, want 1.0", rec.Metrics.Accuracy)
	}
}

func TestAccuracyUnknownOrderFallsThrough(t *testing.T) {
	t.Parallel()

	eval := newTestEvaluator()
	// ORD999 has no expected phrase; with no "return" keyword the default applies
	rec := eval.Evaluate("Where is ORD999?", "Let me check on that for you.", 0.2)
	if rec.Metrics.Accuracy != 0.8 {
		t.Fatalf("accuracy = %v, want default 0.8", rec.Metrics.Accuracy)
	}
}

func TestAccuracyReturnPolicy(t *testing.T) {
	t.Parallel()

	eval := newTestEvaluator()

	response := "You can return most items within 30 days of purchase. Items must be in their original condition."
	rec := eval.Evaluate("What is your return policy?", response, 0.4)

	want := 2.0 / 3.0
	if math.Abs(rec.Metrics.Accuracy-want) > 1e-9 {
		t.Fatalf("accuracy = %v, want %v", rec.Metrics.Accuracy, want)
	}

	rec = eval.Evaluate("Can I return this?", "No idea.", 0.4)
	if rec.Metrics.Accuracy != 0.0 {
		t.Fatalf("accuracy = %v, want 0.0", rec.Metrics.Accuracy)
	}
}

func TestAccuracyDefault(t *testing.T) {
	t.Parallel()

	eval := newTestEvaluator()
	rec := eval.Evaluate("hello there", "Hi! How can I help?", 0.1)
	if rec.Metrics.Accuracy != 0.8 {
		t.Fatalf("accuracy = %v, want 0.8", rec.Metrics.Accuracy)
	}
}

func TestRelevanceKeywordOverlap(t *testing.T) {
	t.Parallel()

	eval := newTestEvaluator()

	// keywords after stop-word removal: {what, your, return, policy}
	rec := eval.Evaluate("What is your return policy", "our return policy lasts 30 days", 0.1)
	want := 2.0 / 4.0
	if math.Abs(rec.Metrics.Relevance-want) > 1e-9 {
		t.Fatalf("relevance = %v, want %v", rec.Metrics.Relevance, want)
	}
}

func TestRelevanceBoundedAtOne(t *testing.T) {
	t.Parallel()

	eval := newTestEvaluator()
	rec := eval.Evaluate("refund please", "refund please refund please refund", 0.1)
	if rec.Metrics.Relevance != 1.0 {
		t.Fatalf("relevance = %v, want 1.0", rec.Metrics.Relevance)
	}
}

func TestRelevanceStopWordsOnlyDefault(t *testing.T) {
	t.Parallel()

	eval := newTestEvaluator()
	rec := eval.Evaluate("the and or but", "anything at all", 0.1)
	if rec.Metrics.Relevance != 0.8 {
		t.Fatalf("relevance = %v, want default 0.8", rec.Metrics.Relevance)
	}
}

func TestResponseTimeBands(t *testing.T) {
	t.Parallel()

	eval := newTestEvaluator()

	tests := []struct {
		seconds float64
		want    int
	}{
		{0.5, 5},
		{1.5, 4},
		{3.0, 3},
		{30.0, 3}, // floor stays at 3
	}
	for _, tt := range tests {
		rec := eval.Evaluate("hi", "hello", tt.seconds)
		if rec.Metrics.ResponseTimeScore != tt.want {
			t.Fatalf("score(%vs) = %d, want %d", tt.seconds, rec.Metrics.ResponseTimeScore, tt.want)
		}
	}
}

func TestSummaryMetricsEmpty(t *testing.T) {
	t.Parallel()

	summary := newTestEvaluator().SummaryMetrics()
	if summary != (Summary{}) {
		t.Fatalf("empty summary = %#v, want all zeros", summary)
	}
}

func TestSummaryMetricsAverages(t *testing.T) {
	t.Parallel()

	eval := newTestEvaluator()
	eval.Evaluate("Where is ORD123?", "Order ORD123 is currently Delivered (as of 2024-01-15).", 0.5)
	eval.Evaluate("Where is ORD123?", "I don't know", 1.5)

	summary := eval.SummaryMetrics()
	if summary.TotalConversations != 2 {
		t.Fatalf("total = %d, want 2", summary.TotalConversations)
	}
	if math.Abs(summary.AverageAccuracy-0.5) > 1e-9 {
		t.Fatalf("average accuracy = %v, want 0.5", summary.AverageAccuracy)
	}
	if math.Abs(summary.AverageResponseTime-1.0) > 1e-9 {
		t.Fatalf("average response time = %v, want 1.0", summary.AverageResponseTime)
	}

	records := eval.Records()
	if len(records) != 2 {
		t.Fatalf("record log length = %d, want 2", len(records))
	}
	if records[0].BotResponse == records[1].BotResponse {
		t.Fatal("records not index-aligned by turn")
	}
}
