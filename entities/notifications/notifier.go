package notifications

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"transdom/config"
	"transdom/schemas"
)

// Notifier renders and sends transactional e-mails. Failures are logged
// and reported through the bool result, never returned to the caller.
type Notifier struct {
	renderer  *Renderer
	transport Transport
	logger    *slog.Logger
}

// NewNotifier returns a Notifier over SMTP. Without sender credentials the
// notifier stays disabled and every send is a logged no-op.
func NewNotifier(cfg config.SMTPConfig, renderer *Renderer, logger *slog.Logger) *Notifier {
	if !cfg.Enabled() {
		logger.Warn("smtp credentials not configured, e-mail notifications disabled")
		return NewNotifierWithTransport(nil, renderer, logger)
	}
	return NewNotifierWithTransport(NewSMTPTransport(cfg), renderer, logger)
}

func NewNotifierWithTransport(transport Transport, renderer *Renderer, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{renderer: renderer, transport: transport, logger: logger}
}

func (n *Notifier) Enabled() bool { return n.transport != nil }

func (n *Notifier) SendWelcome(ctx context.Context, to schemas.Recipient) bool {
	return n.Deliver(ctx, NewEvent(schemas.EMAIL_WELCOME, to, nil, ""))
}

func (n *Notifier) SendOrderConfirmation(ctx context.Context, to schemas.Recipient, order *schemas.Order) bool {
	return n.Deliver(ctx, NewEvent(schemas.EMAIL_ORDER_CONFIRMATION, to, order, ""))
}

func (n *Notifier) SendOrderStatus(ctx context.Context, to schemas.Recipient, order *schemas.Order, status string) bool {
	return n.Deliver(ctx, NewEvent(schemas.EMAIL_ORDER_STATUS, to, order, status))
}

// Deliver renders ev and hands it to the transport. It reports whether the
// message was accepted by the mail server.
func (n *Notifier) Deliver(ctx context.Context, ev schemas.EmailEvent) (sent bool) {
	log := n.logger.With("event_id", ev.ID, "kind", ev.Kind, "to", ev.To.Email)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("e-mail delivery panicked", "panic", rec)
			sent = false
		}
	}()

	if n.transport == nil {
		log.Warn("e-mail not sent, smtp disabled")
		return false
	}

	subject, body, err := n.renderer.Render(ev)
	if err != nil {
		log.Error("e-mail render failed", "error", err)
		return false
	}

	if err := n.transport.Send(ctx, Message{To: ev.To.Email, Subject: subject, HTMLBody: body}); err != nil {
		log.Error("e-mail send failed", "error", err)
		return false
	}

	log.Info("e-mail sent", "subject", subject)
	return true
}

// NewEvent stamps a fresh id and creation time on a notification.
func NewEvent(kind string, to schemas.Recipient, order *schemas.Order, status string) schemas.EmailEvent {
	return schemas.EmailEvent{
		ID:        uuid.NewString(),
		Kind:      kind,
		To:        to,
		Order:     order,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}
