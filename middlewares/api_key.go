package middlewares

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"transdom/utils"
)

const (
	API_KEY_HEADER = "X-API-Key"

	// Browsers cannot set headers on a WebSocket handshake, so upgrade
	// requests may carry the key as a "api-key.<key>" subprotocol instead.
	WS_KEY_PROTOCOL_PREFIX = "api-key."
)

// ApiKeyAuth guards a route with a static key. A missing key is forbidden,
// a wrong key is unauthorized.
func ApiKeyAuth(apiKey string) func(http.Handler) http.Handler {
	expected := []byte(apiKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := providedKey(r)
			if provided == "" {
				utils.SendError(w, r, utils.ErrForbidden, 0)
				return
			}

			if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
				utils.SendError(w, r, utils.ErrUnauthorized, 0)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func providedKey(r *http.Request) string {
	if key := r.Header.Get(API_KEY_HEADER); key != "" {
		return key
	}
	if !websocket.IsWebSocketUpgrade(r) {
		return ""
	}
	for _, protocol := range websocket.Subprotocols(r) {
		if key, ok := strings.CutPrefix(protocol, WS_KEY_PROTOCOL_PREFIX); ok {
			return key
		}
	}
	return ""
}
