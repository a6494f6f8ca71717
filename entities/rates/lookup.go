package rates

import (
	"context"
	"math"
	"strconv"
	"strings"

	"transdom/schemas"
	"transdom/utils"
)

const (
	DEFAULT_CURRENCY = "NGN"
	DEFAULT_UNIT     = "kg"
)

// LookupPrice returns the stored price for an exact weight in zone.
// There is no interpolation between weight brackets.
func LookupPrice(ctx context.Context, store Store, zone string, weight float64) (*schemas.PriceQuote, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return nil, utils.InvalidInput("Zone is required")
	}
	if !isPositive(weight) {
		return nil, utils.InvalidInput("Weight must be greater than 0")
	}

	card, err := store.GetRate(ctx, zone)
	if err != nil {
		return nil, err
	}

	prices := make(map[float64]float64, len(card.Rates))
	for _, entry := range card.Rates {
		prices[entry.Weight] = entry.Price
	}

	price, ok := prices[weight]
	if !ok {
		return nil, utils.NotFound("No rate for weight %s %s in zone '%s'", formatWeight(weight), card.Unit, card.Zone)
	}

	return &schemas.PriceQuote{
		Zone:     card.Zone,
		Weight:   weight,
		Price:    utils.FormatPrice(price),
		Currency: card.Currency,
	}, nil
}

// NewRateCard validates an add-rates request and normalises it into the
// stored shape: zone upper-cased, currency and unit defaulted.
func NewRateCard(req schemas.RateCardRequest) (schemas.RateCard, error) {
	card := schemas.RateCard{
		Zone:     strings.ToUpper(strings.TrimSpace(req.Zone)),
		Currency: strings.ToUpper(strings.TrimSpace(req.Currency)),
		Unit:     strings.TrimSpace(req.Unit),
	}

	if card.Zone == "" {
		return card, utils.InvalidInput("Field 'zone' is required")
	}
	if card.Currency == "" {
		card.Currency = DEFAULT_CURRENCY
	}
	if card.Unit == "" {
		card.Unit = DEFAULT_UNIT
	}
	if len(req.Rates) == 0 {
		return card, utils.InvalidInput("Field 'rates' must contain at least one entry")
	}

	seen := make(map[float64]bool, len(req.Rates))
	card.Rates = make([]schemas.RateEntry, 0, len(req.Rates))
	for i, entry := range req.Rates {
		if entry.Weight == nil {
			return card, utils.InvalidInput("rates[%d].weight is required", i)
		}
		if entry.Price == nil {
			return card, utils.InvalidInput("rates[%d].price is required", i)
		}
		if !isPositive(*entry.Weight) {
			return card, utils.InvalidInput("rates[%d].weight must be greater than 0", i)
		}
		if *entry.Price < 0 || math.IsNaN(*entry.Price) {
			return card, utils.InvalidInput("rates[%d].price must not be negative", i)
		}
		if !utils.ValidPrice(*entry.Price) {
			return card, utils.InvalidInput("rates[%d].price must not exceed %s", i, utils.FormatPrice(utils.MAX_PRICE))
		}
		if seen[*entry.Weight] {
			return card, utils.InvalidInput("Duplicate weight %s in rates", formatWeight(*entry.Weight))
		}
		seen[*entry.Weight] = true

		card.Rates = append(card.Rates, schemas.RateEntry{Weight: *entry.Weight, Price: *entry.Price})
	}

	return card, nil
}

// ToView formats a stored card for clients.
func ToView(card schemas.RateCard) schemas.RateCardView {
	view := schemas.RateCardView{
		Zone:      card.Zone,
		Currency:  card.Currency,
		Unit:      card.Unit,
		Rates:     make([]schemas.RateEntryView, 0, len(card.Rates)),
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
	if !card.ID.IsZero() {
		view.ID = card.ID.Hex()
	}

	for _, entry := range card.Rates {
		view.Rates = append(view.Rates, schemas.RateEntryView{
			Weight:   entry.Weight,
			Price:    utils.FormatPrice(entry.Price),
			PriceRaw: entry.Price,
		})
	}

	return view
}

func ToViews(cards []schemas.RateCard) []schemas.RateCardView {
	views := make([]schemas.RateCardView, 0, len(cards))
	for _, card := range cards {
		views = append(views, ToView(card))
	}
	return views
}

func isPositive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
