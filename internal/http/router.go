package httpapi

import (
	"expvar"
	"net/http"

	"github.com/rs/cors"

	httpopenapi "github.com/westleygroup/card-advisor/internal/http/openapi"
	"github.com/westleygroup/card-advisor/internal/ratelimit"
)

// NewRouter registers HTTP routes and returns the handler with the
// middleware chain applied: CORS, request ID, logging, recovery, and
// the two fixed-window rate limiters (a general /api/ ceiling plus a
// stricter one on the payment-initiating endpoint).
func NewRouter(app *App) http.Handler {
	general := ratelimit.New(app.Cfg.RateLimit.GeneralLimit, app.Cfg.RateLimit.GeneralWindow)
	payments := ratelimit.New(app.Cfg.RateLimit.PaymentLimit, app.Cfg.RateLimit.PaymentWindow)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", app.healthHandler)
	mux.Handle("/api/create-payment-intent", withRateLimit(payments, http.HandlerFunc(app.createPaymentIntentHandler)))
	mux.HandleFunc("/api/generate-recommendation", app.generateRecommendationHandler)
	mux.HandleFunc("/api/webhook", app.webhookHandler)
	mux.HandleFunc("/openapi.yaml", app.openapiHandler)
	mux.HandleFunc("/docs", app.docsHandler)
	mux.HandleFunc("/debug/metrics", app.metricsHandler)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/", app.notFoundHandler)

	var h http.Handler = mux
	h = WithAPIRateLimit(general, h)
	h = WithRecovery(h, app.Cfg.IsDevelopment())
	h = WithRequestID(WithLogging(h))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{app.Cfg.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-Id", "Stripe-Signature"},
		AllowCredentials: true,
	})
	return c.Handler(h)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
