package schemas

import "time"

const (
	EMAIL_WELCOME            = "welcome"
	EMAIL_ORDER_CONFIRMATION = "order_confirmation"
	EMAIL_ORDER_STATUS       = "order_status"

	ORDER_STATUS_APPROVED = "approved"
	ORDER_STATUS_REJECTED = "rejected"
)

// EmailEvent is one queued notification.
type EmailEvent struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	To        Recipient `json:"to"`
	Order     *Order    `json:"order,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationRequest is the body accepted by the notification endpoints.
type NotificationRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Order     *Order `json:"order,omitempty"`
	Status    string `json:"status,omitempty"`
}

type NotificationAccepted struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
