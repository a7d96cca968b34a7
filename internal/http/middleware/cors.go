package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS restricts browsers to the configured origins. The refreshed token
// headers are exposed so clients can pick up a silently reissued pair.
func CORS(allowedOrigins []string, allowCredentials bool) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Refresh-Token"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Access-Token", "X-Refresh-Token"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	})
}
