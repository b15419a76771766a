// Package model defines domain types used by the service.
package model

// UserProfile holds the questionnaire answers describing a user's
// financial situation. Field names follow the public wire format.
type UserProfile struct {
	CreditScore    string   `json:"creditScore"`
	Income         string   `json:"income"`
	Spending       []string `json:"spending"`
	Goal           string   `json:"goal"`
	CarriesBalance string   `json:"carriesBalance"`
	AnnualFee      string   `json:"annualFee"`
	CreditHistory  string   `json:"creditHistory"`
}

// ProfileRequest is one inbound recommendation request. Call-scoped,
// never persisted.
type ProfileRequest struct {
	Email           string       `json:"email"`
	PaymentIntentID string       `json:"paymentIntentId"`
	Profile         *UserProfile `json:"userProfile"`
}

// PaymentOutcome is the payment provider's answer to a settlement query.
type PaymentOutcome struct {
	Settled        bool
	ProviderStatus string
	Amount         int64
	Currency       string
}

// PaymentIntent is the result of creating a charge intent.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// WebhookEvent is a signature-verified payment provider event.
type WebhookEvent struct {
	Type     string
	ObjectID string
}

// RecommendationResult is the text-generation provider's output.
type RecommendationResult struct {
	Text       string
	TokensUsed int
	Model      string
}

// DeliveryOutcome reports the result of a notification send.
type DeliveryOutcome struct {
	Delivered bool
	MessageID string
}
