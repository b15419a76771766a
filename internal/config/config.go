// Package config provides runtime configuration values for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds configuration knobs for the HTTP server and the three
// provider integrations.
type Config struct {
	HTTPAddr        string
	Environment     string
	FrontendURL     string
	ShutdownTimeout time.Duration

	Stripe    StripeConfig
	OpenAI    OpenAIConfig
	Email     EmailConfig
	Payment   PaymentConfig
	RateLimit RateLimitConfig
}

// StripeConfig carries payment provider credentials.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// OpenAIConfig carries text-generation provider settings.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// EmailConfig carries SMTP transport settings.
type EmailConfig struct {
	Host        string
	Port        int
	Secure      bool
	Username    string
	Password    string
	FromName    string
	FromAddress string
}

// PaymentConfig fixes the charge amount for the recommendation product.
type PaymentConfig struct {
	Amount   int64 // smallest currency unit
	Currency string
}

// RateLimitConfig sets fixed-window request ceilings per client.
type RateLimitConfig struct {
	GeneralLimit  int
	GeneralWindow time.Duration
	PaymentLimit  int
	PaymentWindow time.Duration
}

// IsDevelopment reports whether the process runs in development mode.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// requiredVars are secrets and transport settings that have no sane
// defaults. Load fails when any of them is unset.
var requiredVars = []string{
	"STRIPE_SECRET_KEY",
	"STRIPE_WEBHOOK_SECRET",
	"OPENAI_API_KEY",
	"EMAIL_HOST",
	"EMAIL_USER",
	"EMAIL_PASSWORD",
	"EMAIL_FROM_ADDRESS",
}

// Load collects configuration from environment variables. It reports
// every missing required variable at once so an operator can fix the
// environment in a single pass.
func Load() (Config, error) {
	var missing []string
	for _, key := range requiredVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":3000"),
		Environment:     getenv("APP_ENV", "development"),
		FrontendURL:     getenv("FRONTEND_URL", "http://localhost:8000"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 10),
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		},
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  getenv("OPENAI_MODEL", "gpt-4"),
		},
		Email: EmailConfig{
			Host:        os.Getenv("EMAIL_HOST"),
			Port:        atoienv("EMAIL_PORT", 587),
			Secure:      boolenv("EMAIL_SECURE", false),
			Username:    os.Getenv("EMAIL_USER"),
			Password:    os.Getenv("EMAIL_PASSWORD"),
			FromName:    getenv("EMAIL_FROM_NAME", "Westley Group"),
			FromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
		},
		Payment: PaymentConfig{
			Amount:   int64(atoienv("PAYMENT_AMOUNT", 1900)),
			Currency: getenv("PAYMENT_CURRENCY", "usd"),
		},
		RateLimit: RateLimitConfig{
			GeneralLimit:  atoienv("RATE_LIMIT_GENERAL_MAX", 100),
			GeneralWindow: durenvs("RATE_LIMIT_GENERAL_WINDOW_SEC", 15*60),
			PaymentLimit:  atoienv("RATE_LIMIT_PAYMENT_MAX", 10),
			PaymentWindow: durenvs("RATE_LIMIT_PAYMENT_WINDOW_SEC", 60*60),
		},
	}, nil
}
