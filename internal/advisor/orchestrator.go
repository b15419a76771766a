// Package advisor drives the paid recommendation workflow: verify the
// payment, generate the advice text, deliver it by email. The three
// steps run strictly in order; payment is a cost gate for the two
// steps behind it.
package advisor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/westleygroup/card-advisor/internal/model"
)

// PaymentVerifier reports whether a previously initiated charge
// settled.
type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, paymentIntentID string) (model.PaymentOutcome, error)
}

// TextGenerator produces the recommendation text for a profile.
type TextGenerator interface {
	GenerateRecommendation(ctx context.Context, profile model.UserProfile) (model.RecommendationResult, error)
}

// Notifier delivers a generated recommendation to an address.
type Notifier interface {
	SendRecommendation(ctx context.Context, to string, rec model.RecommendationResult, profile model.UserProfile) (model.DeliveryOutcome, error)
}

// fataler marks provider errors that are configuration or request bugs
// rather than transient conditions.
type fataler interface {
	Fatal() bool
}

func isFatal(err error) bool {
	var f fataler
	if errors.As(err, &f) {
		return f.Fatal()
	}
	return false
}

// Orchestrator holds long-lived provider handles. One instance serves
// all requests; it keeps no per-request state.
type Orchestrator struct {
	payments PaymentVerifier
	gen      TextGenerator
	notifier Notifier
	log      *slog.Logger
}

// New wires the orchestrator with its three provider capabilities.
func New(payments PaymentVerifier, gen TextGenerator, notifier Notifier, log *slog.Logger) *Orchestrator {
	return &Orchestrator{payments: payments, gen: gen, notifier: notifier, log: log}
}

// Run executes the workflow for one validated request. The returned
// error is non-nil only for uncategorized failures; every categorized
// result, including provider failures, is expressed through the
// Outcome class.
func (o *Orchestrator) Run(ctx context.Context, req model.ProfileRequest) (Outcome, error) {
	pay, err := o.payments.VerifyPayment(ctx, req.PaymentIntentID)
	if err != nil {
		o.log.Error("payment_verification_failed", "payment_intent_id", req.PaymentIntentID, "error", err)
		return Outcome{Class: PaymentVerificationFailed, Err: err}, nil
	}
	if !pay.Settled {
		o.log.Info("payment_not_completed", "payment_intent_id", req.PaymentIntentID, "provider_status", pay.ProviderStatus)
		return Outcome{Class: PaymentNotCompleted, PaymentStatus: pay.ProviderStatus}, nil
	}

	rec, err := o.gen.GenerateRecommendation(ctx, *req.Profile)
	if err != nil {
		if isFatal(err) {
			return Outcome{}, err
		}
		o.log.Error("generation_unavailable", "error", err)
		return Outcome{Class: GenerationUnavailable, Err: err}, nil
	}
	o.log.Info("recommendation_generated", "tokens_used", rec.TokensUsed, "model", rec.Model)

	del, err := o.notifier.SendRecommendation(ctx, req.Email, rec, *req.Profile)
	if err != nil {
		// Delivery is the cheapest step; its failure must not
		// discard the text already generated.
		o.log.Error("delivery_failed", "to", req.Email, "error", err)
		return Outcome{Class: PartialSuccess, Recommendation: rec, Err: err}, nil
	}
	o.log.Info("recommendation_delivered", "to", req.Email, "message_id", del.MessageID)

	return Outcome{Class: FullSuccess, Recommendation: rec, Delivery: del}, nil
}
