package models

import "time"

// RoutingPrediction is the response shape of the external routing
// probability service
type RoutingPrediction struct {
	BestPaymentMethod string       `json:"best_payment_method"`
	Probs             RoutingProbs `json:"probs"`
	Score             float64      `json:"score"`
	Note              string       `json:"note"`
	Timestamp         string       `json:"timestamp"`
}

// RoutingProbs is a probability distribution over the payment method types
type RoutingProbs struct {
	Bank       float64 `json:"bank"`
	CreditCard float64 `json:"credit_card"`
	DebitCard  float64 `json:"debit_card"`
	UPI        float64 `json:"upi_id"`
}

// For returns the probability assigned to the given method type
func (p RoutingProbs) For(t MethodType) float64 {
	switch t {
	case MethodTypeBank:
		return p.Bank
	case MethodTypeCreditCard:
		return p.CreditCard
	case MethodTypeDebitCard:
		return p.DebitCard
	case MethodTypeUPI:
		return p.UPI
	default:
		return 0
	}
}

// UniformRoutingProbs builds the degraded-mode distribution used when the
// external service is unreachable
func UniformRoutingProbs(p float64) RoutingProbs {
	return RoutingProbs{Bank: p, CreditCard: p, DebitCard: p, UPI: p}
}

// RankedMethod pairs a payment method with its blended routing score,
// expressed as a percentage with two decimal places
type RankedMethod struct {
	Method *PaymentMethod `json:"payment_method"`
	Score  float64        `json:"score"`
}

// RankResult is the outcome of ranking a user's active payment methods
type RankResult struct {
	BestMethod *PaymentMethod `json:"best_payment_method,omitempty"`
	Ranked     []RankedMethod `json:"ranked_payment_methods"`
	Message    string         `json:"message,omitempty"`
	Degraded   bool           `json:"degraded"`
	RankedAt   time.Time      `json:"ranked_at"`
}
