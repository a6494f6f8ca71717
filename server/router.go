package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"transdom/entities/insurance"
	"transdom/entities/notifications"
	"transdom/entities/rates"
	"transdom/middlewares"
	"transdom/schemas"
	"transdom/utils"
)

// Deps are the handlers and settings the router is built from.
type Deps struct {
	APIKey         string
	AllowedOrigins []string
	Logger         *slog.Logger

	Rates         *rates.Handlers
	Insurance     *insurance.Calculator
	Notifications *notifications.Handlers
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewares.SecurityHeaders)
	r.Use(middlewares.Cors(d.AllowedOrigins))

	r.Get("/", Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate-insurance", d.Insurance.CalculateOne)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.ApiKeyAuth(d.APIKey))

			r.Get("/rates", d.Rates.GetAll)
			r.Post("/add-rates", d.Rates.CreateOne)
			r.Get("/rates/{zone}/price", d.Rates.GetPrice)
			r.Get("/zones", d.Rates.GetZones)
			r.Post("/validate", Validate)

			r.Post("/notifications/welcome", d.Notifications.Welcome)
			r.Post("/notifications/order-confirmation", d.Notifications.OrderConfirmation)
			r.Post("/notifications/order-status", d.Notifications.OrderStatus)

			if d.Rates.Hub != nil {
				r.Get("/ws/rates", d.Rates.Hub.ServeWS)
			}
		})
	})

	return r
}

func Health(w http.ResponseWriter, r *http.Request) {
	utils.SendResponse(w, http.StatusOK, "", schemas.HealthResponse{Status: "ok", Message: "Transdom API is running"}, 0)
}

// Validate only answers once the API key middleware has let the request in.
func Validate(w http.ResponseWriter, r *http.Request) {
	utils.SendResponse(w, http.StatusOK, "", schemas.ValidateResponse{Message: "API key is valid", Validated: true}, 0)
}
