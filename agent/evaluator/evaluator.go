package evaluator

import (
	"strings"
	"sync"
	"time"

	catalogx "github.com/tanpawarit/ecom-support-agent/agent/catalog"
)

const defaultScore = 0.8

// stop words excluded from the relevance keyword set
var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {},
	"a": {}, "an": {}, "and": {}, "or": {}, "but": {},
}

// policyPhrases are the known fragments of the general return policy used as
// ground truth for return-policy accuracy.
var policyPhrases = []string{
	"You can return most items within 30 days of purchase",
	"Items must be in their original condition",
	"bring your receipt or proof of purchase",
}

// Metrics are the per-turn scores. Accuracy and relevance are in [0,1];
// ResponseTimeScore is banded 5 (<1s), 4 (<2s), else 3.
type Metrics struct {
	Accuracy          float64 `json:"accuracy"`
	Relevance         float64 `json:"relevance"`
	ResponseTimeScore int     `json:"response_time_score"`
}

// Record is one evaluated exchange; records are appended in turn order and
// never mutated.
type Record struct {
	Timestamp    time.Time `json:"timestamp"`
	UserInput    string    `json:"user_input"`
	BotResponse  string    `json:"bot_response"`
	ResponseTime float64   `json:"response_time"`
	Metrics      Metrics   `json:"metrics"`
}

// Summary aggregates all evaluated turns of a session.
type Summary struct {
	TotalConversations  int     `json:"total_conversations"`
	AverageAccuracy     float64 `json:"average_accuracy"`
	AverageRelevance    float64 `json:"average_relevance"`
	AverageResponseTime float64 `json:"average_response_time"`
}

// Evaluator scores each (input, response, latency) triple and keeps a
// running, index-aligned accumulator. One evaluator per session.
type Evaluator struct {
	expectedOrders map[string]string

	mu            sync.Mutex
	accuracy      []float64
	relevance     []float64
	responseTimes []float64
	records       []Record

	now func() time.Time
}

// New derives the expected order-status phrases from the ledger so the
// evaluator and the ledger can never disagree about ground truth.
func New(ledger *catalogx.OrderLedger) *Evaluator {
	expected := make(map[string]string)
	if ledger != nil {
		for _, rec := range ledger.Records() {
			expected[rec.OrderID] = catalogx.FormatStatus(rec)
		}
	}
	return &Evaluator{
		expectedOrders: expected,
		now:            time.Now,
	}
}

// Evaluate scores one exchange and appends it to the accumulator.
func (e *Evaluator) Evaluate(userInput, botResponse string, responseTime float64) Record {
	rec := Record{
		Timestamp:    e.now().UTC(),
		UserInput:    userInput,
		BotResponse:  botResponse,
		ResponseTime: responseTime,
		Metrics: Metrics{
			Accuracy:          e.scoreAccuracy(userInput, botResponse),
			Relevance:         scoreRelevance(userInput, botResponse),
			ResponseTimeScore: scoreResponseTime(responseTime),
		},
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.accuracy = append(e.accuracy, rec.Metrics.Accuracy)
	e.relevance = append(e.relevance, rec.Metrics.Relevance)
	e.responseTimes = append(e.responseTimes, responseTime)
	e.records = append(e.records, rec)

	return rec
}

// SummaryMetrics returns arithmetic means over all recorded turns, or an
// all-zero summary before the first turn.
func (e *Evaluator) SummaryMetrics() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.records)
	if n == 0 {
		return Summary{}
	}
	return Summary{
		TotalConversations:  n,
		AverageAccuracy:     mean(e.accuracy),
		AverageRelevance:    mean(e.relevance),
		AverageResponseTime: mean(e.responseTimes),
	}
}

// Records returns a copy of the append-only evaluation log.
func (e *Evaluator) Records() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Record, len(e.records))
	copy(out, e.records)
	return out
}

func (e *Evaluator) scoreAccuracy(userInput, botResponse string) float64 {
	if token := catalogx.FindToken(userInput); token != "" {
		if expected, ok := e.expectedOrders[token]; ok {
			if strings.Contains(strings.ToLower(botResponse), strings.ToLower(expected)) {
				return 1.0
			}
			return 0.0
		}
	}

	if strings.Contains(strings.ToLower(userInput), "return") {
		matches := 0
		lowerResp := strings.ToLower(botResponse)
		for _, phrase := range policyPhrases {
			if strings.Contains(lowerResp, strings.ToLower(phrase)) {
				matches++
			}
		}
		return float64(matches) / float64(len(policyPhrases))
	}

	// no ground truth available
	return defaultScore
}

func scoreRelevance(userInput, botResponse string) float64 {
	inputKeywords := tokenSet(userInput)
	for w := range stopWords {
		delete(inputKeywords, w)
	}
	if len(inputKeywords) == 0 {
		return defaultScore
	}

	responseKeywords := tokenSet(botResponse)
	overlap := 0
	for w := range inputKeywords {
		if _, ok := responseKeywords[w]; ok {
			overlap++
		}
	}

	score := float64(overlap) / float64(len(inputKeywords))
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func scoreResponseTime(seconds float64) int {
	switch {
	case seconds < 1.0:
		return 5
	case seconds < 2.0:
		return 4
	default:
		return 3
	}
}

func tokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		out[w] = struct{}{}
	}
	return out
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
