package insurance

import (
	"github.com/shopspring/decimal"

	"transdom/config"
	"transdom/utils"
)

// Tier covers shipment values in (previous tier's UpperBound, UpperBound].
type Tier struct {
	UpperBound decimal.Decimal
	Fee        decimal.Decimal
}

// Tiers is the fixed NGN fee table, ascending by UpperBound.
var Tiers = []Tier{
	{UpperBound: decimal.NewFromInt(100_000), Fee: decimal.NewFromInt(5_000)},
	{UpperBound: decimal.NewFromInt(200_000), Fee: decimal.NewFromInt(7_500)},
	{UpperBound: decimal.NewFromInt(500_000), Fee: decimal.NewFromInt(10_000)},
	{UpperBound: decimal.NewFromInt(1_000_000), Fee: decimal.NewFromInt(20_000)},
	{UpperBound: decimal.NewFromInt(2_000_000), Fee: decimal.NewFromInt(30_000)},
	{UpperBound: decimal.NewFromInt(5_000_000), Fee: decimal.NewFromInt(120_000)},
	{UpperBound: decimal.NewFromInt(10_000_000), Fee: decimal.NewFromInt(240_000)},
}

// Calculator prices insurance from a tier table.
type Calculator struct {
	tiers      []Tier
	rate       decimal.Decimal
	minimumFee decimal.Decimal
	currency   string
	policy     string
}

func NewCalculator(cfg config.InsuranceConfig) *Calculator {
	return &Calculator{
		tiers:      Tiers,
		rate:       decimal.NewFromFloat(cfg.Rate),
		minimumFee: decimal.NewFromFloat(cfg.MinimumFee),
		currency:   cfg.Currency,
		policy:     cfg.OverflowPolicy,
	}
}

// Fee returns the flat fee for value. Non-positive values are always
// rejected; values above the top tier follow the overflow policy.
func (c *Calculator) Fee(value decimal.Decimal) (decimal.Decimal, error) {
	if !value.IsPositive() {
		return decimal.Zero, utils.InvalidInput("shipment_value must be greater than 0")
	}

	for _, tier := range c.tiers {
		if value.LessThanOrEqual(tier.UpperBound) {
			return tier.Fee, nil
		}
	}

	top := c.tiers[len(c.tiers)-1]
	switch c.policy {
	case config.POLICY_CLAMP:
		return top.Fee, nil
	case config.POLICY_EXTRAPOLATE:
		return value.Mul(top.Fee).Div(top.UpperBound).Round(2), nil
	default:
		return decimal.Zero, utils.InvalidInput("shipment_value exceeds the maximum insurable value of %s", utils.FormatPrice(top.UpperBound.InexactFloat64()))
	}
}
