package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("EMAIL_HOST", "smtp.example.com")
	t.Setenv("EMAIL_USER", "mailer")
	t.Setenv("EMAIL_PASSWORD", "hunter2")
	t.Setenv("EMAIL_FROM_ADDRESS", "hello@example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("EMAIL_PORT", "")
	t.Setenv("PAYMENT_AMOUNT", "")
	t.Setenv("PAYMENT_CURRENCY", "")
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.HTTPAddr != ":3000" {
		t.Fatalf("HTTPAddr default")
	}
	if !c.IsDevelopment() {
		t.Fatalf("environment default should be development")
	}
	if c.OpenAI.Model != "gpt-4" {
		t.Fatalf("model default")
	}
	if c.Email.Port != 587 || c.Email.Secure {
		t.Fatalf("email transport defaults")
	}
	if c.Payment.Amount != 1900 || c.Payment.Currency != "usd" {
		t.Fatalf("payment defaults")
	}
	if c.RateLimit.GeneralLimit != 100 || c.RateLimit.GeneralWindow != 15*time.Minute {
		t.Fatalf("general rate limit defaults")
	}
	if c.RateLimit.PaymentLimit != 10 || c.RateLimit.PaymentWindow != time.Hour {
		t.Fatalf("payment rate limit defaults")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("EMAIL_PORT", "465")
	t.Setenv("EMAIL_SECURE", "true")
	t.Setenv("PAYMENT_AMOUNT", "2500")
	t.Setenv("PAYMENT_CURRENCY", "eur")
	t.Setenv("RATE_LIMIT_PAYMENT_MAX", "3")
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr env")
	}
	if c.IsDevelopment() {
		t.Fatalf("environment env")
	}
	if c.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("model env")
	}
	if c.Email.Port != 465 || !c.Email.Secure {
		t.Fatalf("email transport env")
	}
	if c.Payment.Amount != 2500 || c.Payment.Currency != "eur" {
		t.Fatalf("payment env")
	}
	if c.RateLimit.PaymentLimit != 3 {
		t.Fatalf("payment rate limit env")
	}
}

func TestLoadReportsAllMissingSecrets(t *testing.T) {
	setRequired(t)
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for missing secrets")
	}
	msg := err.Error()
	if !strings.Contains(msg, "STRIPE_SECRET_KEY") || !strings.Contains(msg, "OPENAI_API_KEY") {
		t.Fatalf("error should list every missing variable, got %q", msg)
	}
	if strings.Contains(msg, "EMAIL_HOST") {
		t.Fatalf("error should not list variables that are set, got %q", msg)
	}
}
