package intake

import (
	"reflect"
	"testing"

	"github.com/westleygroup/card-advisor/internal/model"
)

func fullProfile() *model.UserProfile {
	return &model.UserProfile{
		CreditScore:    "720-780",
		Income:         "$5,000-$7,500",
		Spending:       []string{"groceries", "travel"},
		Goal:           "maximize cashback",
		CarriesBalance: "no",
		AnnualFee:      "up to $95",
		CreditHistory:  "5-10 years",
	}
}

func validRequest() model.ProfileRequest {
	return model.ProfileRequest{
		Email:           "a@b.com",
		PaymentIntentID: "pi_1",
		Profile:         fullProfile(),
	}
}

func TestValidateAccepts(t *testing.T) {
	if rej := Validate(validRequest()); rej != nil {
		t.Fatalf("expected nil rejection, got %+v", rej)
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		name   string
		email  string
		reason string
	}{
		{"missing", "", "email is required"},
		{"no at sign", "abc.com", "invalid email format"},
		{"no domain dot", "a@bcom", "invalid email format"},
		{"whitespace", "a b@c.com", "invalid email format"},
		{"double at", "a@@b.com", "invalid email format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.Email = tc.email
			rej := Validate(req)
			if rej == nil {
				t.Fatalf("expected rejection for %q", tc.email)
			}
			if len(rej.Violations) != 1 || rej.Violations[0].Field != "email" || rej.Violations[0].Reason != tc.reason {
				t.Fatalf("unexpected violations: %+v", rej.Violations)
			}
		})
	}
}

func TestValidateMissingPaymentReference(t *testing.T) {
	req := validRequest()
	req.PaymentIntentID = ""
	rej := Validate(req)
	if rej == nil || len(rej.Violations) != 1 || rej.Violations[0].Field != "paymentIntentId" {
		t.Fatalf("expected paymentIntentId violation, got %+v", rej)
	}
}

func TestValidateMissingProfile(t *testing.T) {
	req := validRequest()
	req.Profile = nil
	rej := Validate(req)
	if rej == nil || len(rej.Violations) != 1 || rej.Violations[0].Field != "userProfile" {
		t.Fatalf("expected userProfile violation, got %+v", rej)
	}
	if len(rej.MissingProfileFields) != 0 {
		t.Fatalf("no attribute names expected when profile is absent")
	}
}

func TestValidateReportsAllMissingFields(t *testing.T) {
	req := validRequest()
	req.Profile.Goal = ""
	req.Profile.AnnualFee = ""
	rej := Validate(req)
	if rej == nil {
		t.Fatalf("expected rejection")
	}
	want := []string{"goal", "annualFee"}
	if !reflect.DeepEqual(rej.MissingProfileFields, want) {
		t.Fatalf("missing fields = %v, want %v", rej.MissingProfileFields, want)
	}
	if len(rej.Violations) != 0 {
		t.Fatalf("unexpected violations: %+v", rej.Violations)
	}
}

func TestValidateReportsEveryAttributeWhenProfileEmpty(t *testing.T) {
	req := validRequest()
	req.Profile = &model.UserProfile{}
	rej := Validate(req)
	if rej == nil {
		t.Fatalf("expected rejection")
	}
	want := []string{"creditScore", "income", "spending", "goal", "carriesBalance", "annualFee", "creditHistory"}
	if !reflect.DeepEqual(rej.MissingProfileFields, want) {
		t.Fatalf("missing fields = %v, want %v", rej.MissingProfileFields, want)
	}
}

func TestValidateSpendingCap(t *testing.T) {
	req := validRequest()
	req.Profile.Spending = []string{"a", "b", "c", "d"}
	rej := Validate(req)
	if rej == nil || len(rej.Violations) != 1 || rej.Violations[0].Field != "spending" {
		t.Fatalf("expected spending cap violation, got %+v", rej)
	}

	req.Profile.Spending = []string{"a", "b", "c"}
	if rej := Validate(req); rej != nil {
		t.Fatalf("three selections should pass, got %+v", rej)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	req := validRequest()
	req.Profile.Income = ""
	req.Email = "not-an-email"
	first := Validate(req)
	second := Validate(req)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated validation differs: %+v vs %+v", first, second)
	}
}
