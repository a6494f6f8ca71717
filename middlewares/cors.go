package middlewares

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

// Cors allows the configured origins. Credentials are only allowed when
// the origin list is explicit.
func Cors(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", API_KEY_HEADER},
		AllowCredentials: !wildcard,
		MaxAge:           3600,
	})
}
