package rates

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transdom/schemas"
	"transdom/utils"
)

func TestLookupPrice(t *testing.T) {
	store := newMemoryStore(ukIreland())

	tests := []struct {
		name   string
		zone   string
		weight float64
		price  string
	}{
		{name: "exact upper-case zone", zone: "UK_IRELAND", weight: 2, price: "85,378.48"},
		{name: "lower-case zone", zone: "uk_ireland", weight: 3, price: "102,410.07"},
		{name: "unsorted entries", zone: "Uk_Ireland", weight: 4, price: "126,375.73"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := LookupPrice(context.Background(), store, tt.zone, tt.weight)
			require.NoError(t, err)
			assert.Equal(t, "UK_IRELAND", quote.Zone)
			assert.Equal(t, tt.weight, quote.Weight)
			assert.Equal(t, tt.price, quote.Price)
			assert.Equal(t, "NGN", quote.Currency)
		})
	}
}

func TestLookupPriceNotFound(t *testing.T) {
	store := newMemoryStore(ukIreland())

	for _, zone := range []string{"uk_ireland", "UK_IRELAND"} {
		_, err := LookupPrice(context.Background(), store, zone, 2.5)
		assert.ErrorIs(t, err, utils.ErrNotFound, "weight between brackets must not interpolate")

		_, err = LookupPrice(context.Background(), store, zone, 70)
		assert.ErrorIs(t, err, utils.ErrNotFound)
	}

	_, err := LookupPrice(context.Background(), store, "MARS", 2)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.Equal(t, "Zone 'MARS' not found", utils.PublicMessage(err))
}

func TestLookupPriceInvalidInput(t *testing.T) {
	store := newMemoryStore(ukIreland())

	for _, w := range []float64{0, -1} {
		_, err := LookupPrice(context.Background(), store, "UK_IRELAND", w)
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
	}

	_, err := LookupPrice(context.Background(), store, "  ", 2)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestLookupPriceStoreError(t *testing.T) {
	store := newMemoryStore()
	store.err = errStoreDown

	_, err := LookupPrice(context.Background(), store, "UK_IRELAND", 2)
	assert.True(t, errors.Is(err, errStoreDown))
	assert.Equal(t, 500, utils.StatusFor(err))
}

func TestNewRateCard(t *testing.T) {
	card, err := NewRateCard(schemas.RateCardRequest{
		Zone: " uk_ireland ",
		Rates: []schemas.RateEntryRequest{
			{Weight: f64(2), Price: f64(85378.48)},
			{Weight: f64(0.5), Price: f64(0)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "UK_IRELAND", card.Zone)
	assert.Equal(t, DEFAULT_CURRENCY, card.Currency)
	assert.Equal(t, DEFAULT_UNIT, card.Unit)
	assert.Equal(t, []schemas.RateEntry{{Weight: 2, Price: 85378.48}, {Weight: 0.5, Price: 0}}, card.Rates)
}

func TestNewRateCardValidation(t *testing.T) {
	tests := []struct {
		name   string
		req    schemas.RateCardRequest
		errMsg string
	}{
		{
			name:   "missing zone",
			req:    schemas.RateCardRequest{Rates: []schemas.RateEntryRequest{{Weight: f64(1), Price: f64(1)}}},
			errMsg: "Field 'zone' is required",
		},
		{
			name:   "no rates",
			req:    schemas.RateCardRequest{Zone: "ASIA"},
			errMsg: "Field 'rates' must contain at least one entry",
		},
		{
			name:   "missing weight",
			req:    schemas.RateCardRequest{Zone: "ASIA", Rates: []schemas.RateEntryRequest{{Price: f64(1)}}},
			errMsg: "rates[0].weight is required",
		},
		{
			name:   "missing price",
			req:    schemas.RateCardRequest{Zone: "ASIA", Rates: []schemas.RateEntryRequest{{Weight: f64(1)}}},
			errMsg: "rates[0].price is required",
		},
		{
			name:   "zero weight",
			req:    schemas.RateCardRequest{Zone: "ASIA", Rates: []schemas.RateEntryRequest{{Weight: f64(0), Price: f64(1)}}},
			errMsg: "rates[0].weight must be greater than 0",
		},
		{
			name:   "negative price",
			req:    schemas.RateCardRequest{Zone: "ASIA", Rates: []schemas.RateEntryRequest{{Weight: f64(1), Price: f64(-1)}}},
			errMsg: "rates[0].price must not be negative",
		},
		{
			name:   "price above maximum",
			req:    schemas.RateCardRequest{Zone: "ASIA", Rates: []schemas.RateEntryRequest{{Weight: f64(1), Price: f64(1e19)}}},
			errMsg: "rates[0].price must not exceed 1,000,000,000,000,000.00",
		},
		{
			name:   "infinite price",
			req:    schemas.RateCardRequest{Zone: "ASIA", Rates: []schemas.RateEntryRequest{{Weight: f64(1), Price: f64(math.Inf(1))}}},
			errMsg: "rates[0].price must not exceed 1,000,000,000,000,000.00",
		},
		{
			name: "duplicate weight",
			req: schemas.RateCardRequest{Zone: "ASIA", Rates: []schemas.RateEntryRequest{
				{Weight: f64(2), Price: f64(1)},
				{Weight: f64(2), Price: f64(3)},
			}},
			errMsg: "Duplicate weight 2 in rates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRateCard(tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, utils.ErrInvalidInput)
			assert.Equal(t, tt.errMsg, utils.PublicMessage(err))
		})
	}
}

func TestToView(t *testing.T) {
	view := ToView(ukIreland())

	assert.Equal(t, "UK_IRELAND", view.Zone)
	assert.Empty(t, view.ID)
	require.Len(t, view.Rates, 3)
	assert.Equal(t, schemas.RateEntryView{Weight: 2, Price: "85,378.48", PriceRaw: 85378.48}, view.Rates[1])

	assert.NotNil(t, ToViews(nil))
}
