package schemas

import "github.com/shopspring/decimal"

type InsuranceRequest struct {
	ShipmentValue *decimal.Decimal `json:"shipment_value"`
}

type InsuranceQuote struct {
	ShipmentValue float64 `json:"shipment_value"`
	InsuranceFee  float64 `json:"insurance_fee"`
	InsuranceRate float64 `json:"insurance_rate"`
	MinimumFee    float64 `json:"minimum_fee"`
	Currency      string  `json:"currency"`
}
