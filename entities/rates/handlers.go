package rates

import (
	"time"
)

// Handlers serves the /api/rates family of routes.
type Handlers struct {
	Store   Store
	Hub     *Hub
	Timeout time.Duration
}

func NewHandlers(store Store, hub *Hub, timeout time.Duration) *Handlers {
	return &Handlers{Store: store, Hub: hub, Timeout: timeout}
}
