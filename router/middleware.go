package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"

	"github.com/envelope-app/feed-backend/log"
)

// Wrap adds CORS for the browser client, an access log and panic recovery
// around h.
func Wrap(h http.Handler, allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type"},
		MaxAge:         300,
	})

	h = c.Handler(h)
	h = handlers.CombinedLoggingHandler(log.Info.Writer(), h)
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(log.Error),
		handlers.PrintRecoveryStack(true),
	)(h)
}
