// Package payment integrates the Stripe payment provider.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/westleygroup/card-advisor/internal/model"
)

// Client wraps the Stripe API for intent creation, settlement checks,
// and webhook verification. One instance is created at process start
// and shared by all requests.
type Client struct {
	api           *client.API
	webhookSecret string
}

// NewClient builds a Stripe client from the secret key and webhook
// signing secret.
func NewClient(secretKey, webhookSecret string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api, webhookSecret: webhookSecret}
}

// CreateIntent creates a charge intent for the fixed product amount.
// The customer email travels in the intent metadata so webhook events
// can be tied back to a request.
func (c *Client) CreateIntent(ctx context.Context, amount int64, currency, email string, metadata map[string]string) (model.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("customerEmail", email)
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return model.PaymentIntent{}, fmt.Errorf("create payment intent: %w", err)
	}
	return model.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}

// VerifyPayment retrieves the intent and reports whether the charge
// settled. A non-succeeded status is a result, not an error.
func (c *Client) VerifyPayment(ctx context.Context, paymentIntentID string) (model.PaymentOutcome, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := c.api.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return model.PaymentOutcome{}, fmt.Errorf("retrieve payment intent: %w", err)
	}
	return model.PaymentOutcome{
		Settled:        pi.Status == stripe.PaymentIntentStatusSucceeded,
		ProviderStatus: string(pi.Status),
		Amount:         pi.Amount,
		Currency:       string(pi.Currency),
	}, nil
}

// ParseWebhookEvent verifies the signature of a raw webhook payload
// and returns the decoded event. Verification failure rejects the
// request outright.
func (c *Client) ParseWebhookEvent(payload []byte, signature string) (model.WebhookEvent, error) {
	ev, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return model.WebhookEvent{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}
	out := model.WebhookEvent{Type: string(ev.Type)}
	if id, ok := ev.Data.Object["id"].(string); ok {
		out.ObjectID = id
	}
	return out, nil
}
