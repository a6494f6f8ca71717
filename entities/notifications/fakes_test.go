package notifications

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"transdom/schemas"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type captureTransport struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (c *captureTransport) Send(_ context.Context, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

type panicTransport struct{}

func (panicTransport) Send(context.Context, Message) error { panic("boom") }

type recorder struct {
	mu     sync.Mutex
	events []schemas.EmailEvent
}

func (r *recorder) Deliver(_ context.Context, ev schemas.EmailEvent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return true
}

func (r *recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type failingQueue struct{}

func (failingQueue) Enqueue(context.Context, schemas.EmailEvent) error {
	return errors.New("redis: connection refused")
}

func (failingQueue) Run(context.Context) {}

func sampleOrder() *schemas.Order {
	return &schemas.Order{
		OrderNo:   "TD-1001",
		CreatedAt: "2024-05-01",
		Sender:    schemas.Party{Name: "Ada Obi", Phone: "+2348000000000", City: "Lagos", Country: "Nigeria"},
		Receiver:  schemas.Party{Name: "John Smith", City: "London", Country: "United Kingdom"},
		Shipment: schemas.Shipment{
			DestinationZone: "UK_IRELAND",
			Weight:          2,
			PackageType:     "parcel",
		},
		Pricing: schemas.OrderPricing{
			ShippingFee:   85378.48,
			InsuranceFee:  5000,
			ShipmentValue: 150000,
			TotalAmount:   90378.48,
		},
		Payment: schemas.OrderPayment{PaymentMethod: "bank_transfer", Reference: "PAY-778"},
	}
}
