package notifications

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"transdom/schemas"
	"transdom/utils"
)

// Handlers accepts notification requests and queues them. The caller gets
// 202 as soon as the request is valid, whether or not the queue took it.
type Handlers struct {
	Queue  Queue
	Logger *slog.Logger
}

func NewHandlers(queue Queue, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{Queue: queue, Logger: logger}
}

func (h *Handlers) Welcome(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, schemas.EMAIL_WELCOME)
}

func (h *Handlers) OrderConfirmation(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, schemas.EMAIL_ORDER_CONFIRMATION)
}

func (h *Handlers) OrderStatus(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, schemas.EMAIL_ORDER_STATUS)
}

func (h *Handlers) accept(w http.ResponseWriter, r *http.Request, kind string) {
	// Order payloads carry more fields than the e-mails render.
	req := schemas.NotificationRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil, 0)
		return
	}

	ev, err := NewEventFromRequest(kind, req)
	if err != nil {
		utils.SendError(w, r, err, 0)
		return
	}

	if err := h.Queue.Enqueue(r.Context(), ev); err != nil {
		h.Logger.ErrorContext(r.Context(), "notification not queued",
			"event_id", ev.ID,
			"kind", ev.Kind,
			"to", ev.To.Email,
			"error", err,
		)
	}

	utils.SendResponse(w, http.StatusAccepted, "", schemas.NotificationAccepted{ID: ev.ID, Status: "accepted"}, 0)
}

// NewEventFromRequest validates req for kind and builds the queued event.
func NewEventFromRequest(kind string, req schemas.NotificationRequest) (schemas.EmailEvent, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return schemas.EmailEvent{}, utils.InvalidInput("Field 'email' is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return schemas.EmailEvent{}, utils.InvalidInput("Field 'email' is not a valid address")
	}

	to := schemas.Recipient{Email: addr.Address, FirstName: strings.TrimSpace(req.FirstName)}

	switch kind {
	case schemas.EMAIL_WELCOME:
		return NewEvent(kind, to, nil, ""), nil
	case schemas.EMAIL_ORDER_CONFIRMATION, schemas.EMAIL_ORDER_STATUS:
		if req.Order == nil || strings.TrimSpace(req.Order.OrderNo) == "" {
			return schemas.EmailEvent{}, utils.InvalidInput("Field 'order.order_no' is required")
		}
		if err := validatePricing(req.Order.Pricing); err != nil {
			return schemas.EmailEvent{}, err
		}
		if kind == schemas.EMAIL_ORDER_CONFIRMATION {
			return NewEvent(kind, to, req.Order, ""), nil
		}
		status := strings.ToLower(strings.TrimSpace(req.Status))
		if _, ok := statusStyles[status]; !ok {
			return schemas.EmailEvent{}, utils.InvalidInput("Field 'status' must be %q or %q",
				schemas.ORDER_STATUS_APPROVED, schemas.ORDER_STATUS_REJECTED)
		}
		return NewEvent(kind, to, req.Order, status), nil
	default:
		return schemas.EmailEvent{}, utils.InvalidInput("unknown email kind %q", kind)
	}
}

func validatePricing(p schemas.OrderPricing) error {
	for field, amount := range map[string]float64{
		"shipping_fee":   p.ShippingFee,
		"insurance_fee":  p.InsuranceFee,
		"shipment_value": p.ShipmentValue,
		"total_amount":   p.TotalAmount,
	} {
		if !utils.ValidPrice(amount) {
			return utils.InvalidInput("Field 'order.pricing.%s' must be between 0 and %s", field, utils.FormatPrice(utils.MAX_PRICE))
		}
	}
	return nil
}
