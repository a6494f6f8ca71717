package insurance

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"transdom/schemas"
	"transdom/utils"
)

// Calculate returns the full quote for value. The minimum fee is a floor
// on the tier fee.
func (c *Calculator) Calculate(value decimal.Decimal) (*schemas.InsuranceQuote, error) {
	fee, err := c.Fee(value)
	if err != nil {
		return nil, err
	}

	fee = decimal.Max(fee, c.minimumFee)

	return &schemas.InsuranceQuote{
		ShipmentValue: value.InexactFloat64(),
		InsuranceFee:  fee.InexactFloat64(),
		InsuranceRate: c.rate.InexactFloat64(),
		MinimumFee:    c.minimumFee.InexactFloat64(),
		Currency:      c.currency,
	}, nil
}

// CalculateOne answers POST /api/calculate-insurance.
func (c *Calculator) CalculateOne(w http.ResponseWriter, r *http.Request) {
	req := schemas.InsuranceRequest{}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil, 0)
		return
	}

	if req.ShipmentValue == nil {
		utils.SendResponse(w, http.StatusBadRequest, "Field 'shipment_value' is required", nil, 0)
		return
	}

	quote, err := c.Calculate(*req.ShipmentValue)
	if err != nil {
		utils.SendError(w, r, err, utils.CANNOT_CALCULATE_INSURANCE)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", quote, 0)
}
