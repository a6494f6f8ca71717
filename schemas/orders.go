package schemas

// Order carries the order fields rendered into confirmation and status e-mails.
type Order struct {
	OrderNo   string       `json:"order_no"`
	CreatedAt string       `json:"created_at"`
	Sender    Party        `json:"sender"`
	Receiver  Party        `json:"receiver"`
	Shipment  Shipment     `json:"shipment"`
	Pricing   OrderPricing `json:"pricing"`
	Payment   OrderPayment `json:"payment"`
}

type Party struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type Shipment struct {
	DestinationZone     string  `json:"destination_zone"`
	Weight              float64 `json:"weight"`
	PackageType         string  `json:"package_type"`
	ContentsDescription string  `json:"contents_description"`
}

type OrderPricing struct {
	ShippingFee   float64 `json:"shipping_fee"`
	InsuranceFee  float64 `json:"insurance_fee"`
	ShipmentValue float64 `json:"shipment_value"`
	TotalAmount   float64 `json:"total_amount"`
}

type OrderPayment struct {
	PaymentMethod string `json:"payment_method"`
	Reference     string `json:"reference"`
}
