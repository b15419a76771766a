package advisor

import "github.com/westleygroup/card-advisor/internal/model"

// OutcomeClass tags the result of an orchestration run. The class is
// set at the point of failure, never inferred from error text.
type OutcomeClass int

const (
	// FullSuccess: payment settled, text generated, email delivered.
	FullSuccess OutcomeClass = iota
	// PartialSuccess: text generated but delivery failed. The
	// recommendation is preserved in the outcome.
	PartialSuccess
	// PaymentNotCompleted: the provider reports the charge did not
	// settle. Generation and delivery were never attempted.
	PaymentNotCompleted
	// PaymentVerificationFailed: the settlement query itself failed.
	PaymentVerificationFailed
	// GenerationUnavailable: a transient text-generation failure the
	// caller may retry.
	GenerationUnavailable
)

// String returns a stable name for logging.
func (c OutcomeClass) String() string {
	switch c {
	case FullSuccess:
		return "full_success"
	case PartialSuccess:
		return "partial_success"
	case PaymentNotCompleted:
		return "payment_not_completed"
	case PaymentVerificationFailed:
		return "payment_verification_failed"
	case GenerationUnavailable:
		return "generation_unavailable"
	default:
		return "unknown"
	}
}

// Outcome is the single result of an orchestration run.
type Outcome struct {
	Class OutcomeClass

	// PaymentStatus carries the provider's status string when the
	// charge did not settle.
	PaymentStatus string

	Recommendation model.RecommendationResult
	Delivery       model.DeliveryOutcome

	// Err holds the provider failure behind a non-success class.
	Err error
}
