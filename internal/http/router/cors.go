package router

import (
	"net/http"

	"github.com/go-chi/cors"

	"tinkerly.io/api/internal/http/middleware"
)

// WithCORS lets the marketing site and dashboard call the API from the browser.
// Stripe webhooks are server to server and unaffected.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(h)
}
