package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/westleygroup/card-advisor/internal/advisor"
	"github.com/westleygroup/card-advisor/internal/config"
	"github.com/westleygroup/card-advisor/internal/intake"
	"github.com/westleygroup/card-advisor/internal/model"
	"github.com/westleygroup/card-advisor/internal/obs"
)

// maxBodyBytes caps inbound request bodies, including webhook
// payloads.
const maxBodyBytes = 1 << 20

// PaymentGateway covers the payment provider operations the HTTP
// layer drives directly (intent creation and webhook verification).
// Settlement checks go through the orchestrator instead.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency, email string, metadata map[string]string) (model.PaymentIntent, error)
	ParseWebhookEvent(payload []byte, signature string) (model.WebhookEvent, error)
}

// App holds the long-lived handler dependencies.
type App struct {
	Cfg      config.Config
	Orc      *advisor.Orchestrator
	Payments PaymentGateway

	started time.Time

	intentsCreated   atomic.Uint64
	webhooksReceived atomic.Uint64
	outcomes         outcomeCounters
}

type outcomeCounters struct {
	full, partial, notCompleted, verifyFailed, genUnavailable, internal atomic.Uint64
}

// NewApp wires the HTTP layer with its orchestrator and payment
// gateway.
func NewApp(cfg config.Config, orc *advisor.Orchestrator, payments PaymentGateway) *App {
	return &App{Cfg: cfg, Orc: orc, Payments: payments, started: time.Now()}
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": a.Cfg.Environment,
	})
}

type createIntentRequest struct {
	Email    string            `json:"email"`
	Metadata map[string]string `json:"metadata"`
}

type createIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

func (a *App) createPaymentIntentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	var req createIntentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	if req.Email == "" {
		WriteJSONError(w, http.StatusBadRequest, "Email is required", "")
		return
	}
	if !intake.ValidEmail(req.Email) {
		WriteJSONError(w, http.StatusBadRequest, "Invalid email format", "")
		return
	}

	pi, err := a.Payments.CreateIntent(r.Context(), a.Cfg.Payment.Amount, a.Cfg.Payment.Currency, req.Email, req.Metadata)
	if err != nil {
		obs.Logger.Error("payment_intent_create_failed", "error", err)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to create payment intent", a.detail(err))
		return
	}
	a.intentsCreated.Add(1)
	obs.Logger.Info("payment_intent_created", "payment_intent_id", pi.ID, "amount", pi.Amount, "currency", pi.Currency)
	writeJSON(w, http.StatusOK, createIntentResponse{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
		Amount:          pi.Amount,
		Currency:        pi.Currency,
	})
}

type recommendationMetadata struct {
	TokensUsed int    `json:"tokensUsed"`
	Model      string `json:"model"`
	EmailSent  bool   `json:"emailSent"`
}

type recommendationResponse struct {
	Success        bool                   `json:"success"`
	Recommendation string                 `json:"recommendation"`
	Metadata       recommendationMetadata `json:"metadata"`
}

type partialSuccessResponse struct {
	Success        bool   `json:"success"`
	Recommendation string `json:"recommendation"`
	EmailError     string `json:"emailError"`
	Message        string `json:"message,omitempty"`
}

type paymentNotCompletedResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

type rejectionResponse struct {
	Error         string             `json:"error"`
	Violations    []intake.Violation `json:"violations,omitempty"`
	MissingFields []string           `json:"missingFields,omitempty"`
}

func (a *App) generateRecommendationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	var req model.ProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if rej := intake.Validate(req); rej != nil {
		writeJSON(w, http.StatusBadRequest, rejectionResponse{
			Error:         rejectionMessage(rej),
			Violations:    rej.Violations,
			MissingFields: rej.MissingProfileFields,
		})
		return
	}

	out, err := a.Orc.Run(r.Context(), req)
	if err != nil {
		a.outcomes.internal.Add(1)
		obs.Logger.Error("recommendation_failed", "error", err)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to generate recommendation", a.detail(err))
		return
	}

	switch out.Class {
	case advisor.FullSuccess:
		a.outcomes.full.Add(1)
		writeJSON(w, http.StatusOK, recommendationResponse{
			Success:        true,
			Recommendation: out.Recommendation.Text,
			Metadata: recommendationMetadata{
				TokensUsed: out.Recommendation.TokensUsed,
				Model:      out.Recommendation.Model,
				EmailSent:  true,
			},
		})
	case advisor.PartialSuccess:
		a.outcomes.partial.Add(1)
		writeJSON(w, http.StatusMultiStatus, partialSuccessResponse{
			Success:        true,
			Recommendation: out.Recommendation.Text,
			EmailError:     "Email delivery failed. Please contact support.",
			Message:        a.detail(out.Err),
		})
	case advisor.PaymentNotCompleted:
		a.outcomes.notCompleted.Add(1)
		writeJSON(w, http.StatusPaymentRequired, paymentNotCompletedResponse{
			Error:  "Payment not completed",
			Status: out.PaymentStatus,
		})
	case advisor.PaymentVerificationFailed:
		a.outcomes.verifyFailed.Add(1)
		WriteJSONError(w, http.StatusPaymentRequired, "Payment verification failed", a.detail(out.Err))
	case advisor.GenerationUnavailable:
		a.outcomes.genUnavailable.Add(1)
		WriteJSONError(w, http.StatusServiceUnavailable, "AI service temporarily unavailable", "Please try again in a moment")
	default:
		a.outcomes.internal.Add(1)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to generate recommendation", "")
	}
}

// rejectionMessage picks the headline for a rejection payload; the
// full violation and missing-field lists ride alongside it.
func rejectionMessage(rej *intake.Rejection) string {
	if len(rej.Violations) > 0 {
		switch v := rej.Violations[0]; v.Field {
		case "email":
			if v.Reason == "email is required" {
				return "Email is required"
			}
			return "Invalid email format"
		case "paymentIntentId":
			return "Payment intent ID is required"
		case "userProfile":
			return "User profile data is required"
		}
		return "Invalid request"
	}
	return "Incomplete user profile"
}

func (a *App) webhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read webhook payload", "")
		return
	}

	ev, err := a.Payments.ParseWebhookEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		obs.Logger.Warn("webhook_rejected", "error", err)
		WriteJSONError(w, http.StatusBadRequest, "Webhook signature verification failed", "")
		return
	}
	a.webhooksReceived.Add(1)

	switch ev.Type {
	case "payment_intent.succeeded":
		obs.Logger.Info("webhook_payment_succeeded", "payment_intent_id", ev.ObjectID)
	case "payment_intent.payment_failed":
		obs.Logger.Info("webhook_payment_failed", "payment_intent_id", ev.ObjectID)
	default:
		obs.Logger.Info("webhook_unhandled_event", "type", ev.Type)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (a *App) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "Not found",
		"path":  r.URL.Path,
	})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"payment_intents_created":     a.intentsCreated.Load(),
		"webhooks_received":           a.webhooksReceived.Load(),
		"full_success":                a.outcomes.full.Load(),
		"partial_success":             a.outcomes.partial.Load(),
		"payment_not_completed":       a.outcomes.notCompleted.Load(),
		"payment_verification_failed": a.outcomes.verifyFailed.Load(),
		"generation_unavailable":      a.outcomes.genUnavailable.Load(),
		"internal_errors":             a.outcomes.internal.Load(),
		"uptime_sec":                  time.Since(a.started).Seconds(),
	})
}

// detail exposes provider error text only in development mode.
func (a *App) detail(err error) string {
	if err == nil || !a.Cfg.IsDevelopment() {
		return ""
	}
	return err.Error()
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	// Trailing garbage after the JSON document is a malformed request.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
