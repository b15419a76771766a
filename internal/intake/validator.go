// Package intake validates inbound recommendation requests before any
// provider is contacted.
package intake

import (
	"regexp"

	"github.com/westleygroup/card-advisor/internal/model"
)

// MaxSpendingCategories caps the number of spending selections a
// profile may carry.
const MaxSpendingCategories = 3

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has the required local@domain.tld
// shape.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// Violation describes one violated request constraint.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Rejection lists every constraint an invalid request violated.
// MissingProfileFields enumerates all absent profile attributes at
// once, in declaration order, so a caller can correct the form in one
// round trip.
type Rejection struct {
	Violations           []Violation
	MissingProfileFields []string
}

// profileFields lists the required profile attributes in the order
// they are reported.
var profileFields = []struct {
	name    string
	missing func(*model.UserProfile) bool
}{
	{"creditScore", func(p *model.UserProfile) bool { return p.CreditScore == "" }},
	{"income", func(p *model.UserProfile) bool { return p.Income == "" }},
	{"spending", func(p *model.UserProfile) bool { return len(p.Spending) == 0 }},
	{"goal", func(p *model.UserProfile) bool { return p.Goal == "" }},
	{"carriesBalance", func(p *model.UserProfile) bool { return p.CarriesBalance == "" }},
	{"annualFee", func(p *model.UserProfile) bool { return p.AnnualFee == "" }},
	{"creditHistory", func(p *model.UserProfile) bool { return p.CreditHistory == "" }},
}

// Validate checks a ProfileRequest against the intake contract. It is
// a pure function: no external calls, no side effects, deterministic.
// A nil return means the request may proceed to orchestration.
func Validate(req model.ProfileRequest) *Rejection {
	var rej Rejection

	switch {
	case req.Email == "":
		rej.Violations = append(rej.Violations, Violation{Field: "email", Reason: "email is required"})
	case !emailPattern.MatchString(req.Email):
		rej.Violations = append(rej.Violations, Violation{Field: "email", Reason: "invalid email format"})
	}

	if req.PaymentIntentID == "" {
		rej.Violations = append(rej.Violations, Violation{Field: "paymentIntentId", Reason: "payment intent ID is required"})
	}

	if req.Profile == nil {
		rej.Violations = append(rej.Violations, Violation{Field: "userProfile", Reason: "user profile data is required"})
	} else {
		for _, f := range profileFields {
			if f.missing(req.Profile) {
				rej.MissingProfileFields = append(rej.MissingProfileFields, f.name)
			}
		}
		if len(req.Profile.Spending) > MaxSpendingCategories {
			rej.Violations = append(rej.Violations, Violation{Field: "spending", Reason: "at most 3 spending categories allowed"})
		}
	}

	if len(rej.Violations) == 0 && len(rej.MissingProfileFields) == 0 {
		return nil
	}
	return &rej
}
