package catalog

const policyFallback = "I don't have information about that specific aspect of our return policy."

// PolicyStore maps return-policy topics to canned text. No mutation and no
// failure mode beyond the fallback sentence.
type PolicyStore struct {
	policies map[string]string
}

func NewPolicyStore() *PolicyStore {
	return &PolicyStore{
		policies: map[string]string{
			"general":        "You can return most items within 30 days of purchase for a full refund or exchange. Items must be in their original condition, with all tags and packaging intact. Please bring your receipt or proof of purchase when returning items.",
			"exceptions":     "Yes, certain items such as clearance merchandise, perishable goods, and personal care items are non-returnable. Please check the product description or ask a store associate for more details.",
			"refund_process": "Refunds will be issued to the original form of payment. If you paid by credit card, the refund will be credited to your card. If you paid by cash or check, you will receive a cash refund.",
		},
	}
}

func (p *PolicyStore) Lookup(topic string) string {
	if text, ok := p.policies[topic]; ok {
		return text
	}
	return policyFallback
}

// Topics returns the known topic keys; used to build the system preamble.
func (p *PolicyStore) Topics() []string {
	return []string{"general", "exceptions", "refund_process"}
}
