package notifications

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/osteele/liquid"

	"transdom/schemas"
	"transdom/utils"
)

//go:embed templates/*.liquid
var templateFS embed.FS

const orderDetailsMarker = "<!-- order_details -->"

type statusStyle struct {
	subject string
	text    string
	message string
	color   string
	bg      string
}

var statusStyles = map[string]statusStyle{
	schemas.ORDER_STATUS_APPROVED: {
		subject: "Order Approved - %s ✅",
		text:    "Approved ✅",
		message: "Great news! Your shipment order has been approved and is being processed.",
		color:   "#28a745",
		bg:      "#d4edda",
	},
	schemas.ORDER_STATUS_REJECTED: {
		subject: "Order Update - %s",
		text:    "Rejected ❌",
		message: "Unfortunately, your shipment order has been rejected. Please contact support for more information.",
		color:   "#dc3545",
		bg:      "#f8d7da",
	},
}

// Renderer turns an EmailEvent into a subject and HTML body.
type Renderer struct {
	frontendURL string
	templates   map[string]*liquid.Template
	now         func() time.Time
}

func NewRenderer(frontendURL string) (*Renderer, error) {
	header, err := templateFS.ReadFile("templates/layout_header.liquid")
	if err != nil {
		return nil, err
	}
	footer, err := templateFS.ReadFile("templates/layout_footer.liquid")
	if err != nil {
		return nil, err
	}
	details, err := templateFS.ReadFile("templates/order_details.liquid")
	if err != nil {
		return nil, err
	}

	engine := liquid.NewEngine()
	r := &Renderer{
		frontendURL: strings.TrimRight(frontendURL, "/"),
		templates:   make(map[string]*liquid.Template, 3),
		now:         time.Now,
	}

	for kind, file := range map[string]string{
		schemas.EMAIL_WELCOME:            "templates/welcome.liquid",
		schemas.EMAIL_ORDER_CONFIRMATION: "templates/order_confirmation.liquid",
		schemas.EMAIL_ORDER_STATUS:       "templates/order_status.liquid",
	} {
		body, err := templateFS.ReadFile(file)
		if err != nil {
			return nil, err
		}
		src := string(header) + strings.Replace(string(body), orderDetailsMarker, string(details), 1) + string(footer)
		tpl, err := engine.ParseString(src)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.templates[kind] = tpl
	}

	return r, nil
}

// Render returns the subject and HTML body for ev. Order kinds need an
// order and order_status needs a known status.
func (r *Renderer) Render(ev schemas.EmailEvent) (string, string, error) {
	tpl, ok := r.templates[ev.Kind]
	if !ok {
		return "", "", utils.InvalidInput("unknown email kind %q", ev.Kind)
	}

	bindings := liquid.Bindings{
		"first_name":   firstName(ev.To),
		"frontend_url": r.frontendURL,
		"year":         r.now().Year(),
	}

	var subject string
	switch ev.Kind {
	case schemas.EMAIL_WELCOME:
		subject = "Welcome to Transdom Express! 🚀"
	case schemas.EMAIL_ORDER_CONFIRMATION, schemas.EMAIL_ORDER_STATUS:
		if ev.Order == nil {
			return "", "", utils.InvalidInput("%s email requires an order", ev.Kind)
		}
		order, err := orderBindings(ev.Order)
		if err != nil {
			return "", "", err
		}
		bindings["order"] = order
		bindings["pricing"] = map[string]string{
			"shipping_fee":   utils.FormatPrice(ev.Order.Pricing.ShippingFee),
			"insurance_fee":  utils.FormatPrice(ev.Order.Pricing.InsuranceFee),
			"shipment_value": utils.FormatPrice(ev.Order.Pricing.ShipmentValue),
			"total_amount":   utils.FormatPrice(ev.Order.Pricing.TotalAmount),
		}
		subject = "Order Confirmation - " + ev.Order.OrderNo

		if ev.Kind == schemas.EMAIL_ORDER_STATUS {
			style, ok := statusStyles[ev.Status]
			if !ok {
				return "", "", utils.InvalidInput("status must be %q or %q", schemas.ORDER_STATUS_APPROVED, schemas.ORDER_STATUS_REJECTED)
			}
			subject = fmt.Sprintf(style.subject, ev.Order.OrderNo)
			bindings["approved"] = ev.Status == schemas.ORDER_STATUS_APPROVED
			bindings["status_text"] = style.text
			bindings["status_message"] = style.message
			bindings["status_color"] = style.color
			bindings["status_bg"] = style.bg
		}
	}

	body, err := tpl.RenderString(bindings)
	if err != nil {
		return "", "", fmt.Errorf("render %s: %w", ev.Kind, err)
	}
	return subject, body, nil
}

func firstName(to schemas.Recipient) string {
	if name := strings.TrimSpace(to.FirstName); name != "" {
		return name
	}
	return "there"
}

// orderBindings goes through JSON so templates see the snake_case keys.
func orderBindings(order *schemas.Order) (map[string]any, error) {
	raw, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
