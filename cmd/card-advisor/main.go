// Package main boots the Card Advisor HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/westleygroup/card-advisor/internal/advisor"
	"github.com/westleygroup/card-advisor/internal/config"
	httpapi "github.com/westleygroup/card-advisor/internal/http"
	"github.com/westleygroup/card-advisor/internal/mail"
	"github.com/westleygroup/card-advisor/internal/obs"
	"github.com/westleygroup/card-advisor/internal/payment"
	"github.com/westleygroup/card-advisor/internal/recommend"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		obs.Logger.Error("config_invalid", "error", err)
		os.Exit(1)
	}
	obs.Logger.Info("service_starting", "environment", cfg.Environment)

	// Provider clients are created once and shared by all requests.
	payments := payment.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	generator := recommend.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	notifier := mail.NewNotifier(cfg.Email)

	if err := notifier.VerifyConnection(); err != nil {
		obs.Logger.Warn("email_transport_unverified", "error", err)
	} else {
		obs.Logger.Info("email_transport_verified", "host", cfg.Email.Host)
	}

	orc := advisor.New(payments, generator, notifier, obs.Logger)
	app := httpapi.NewApp(cfg, orc, payments)
	handler := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Generation can take tens of seconds; the write timeout
		// must outlast the slowest provider call.
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
