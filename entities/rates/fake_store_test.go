package rates

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"transdom/schemas"
	"transdom/utils"
)

var errStoreDown = errors.New("server selection error: connection refused")

// memoryStore mirrors MongoStore semantics: case-insensitive zone match and
// whole-card replacement on upsert.
type memoryStore struct {
	mu    sync.Mutex
	cards []schemas.RateCard
	err   error
}

func newMemoryStore(cards ...schemas.RateCard) *memoryStore {
	s := &memoryStore{}
	for _, c := range cards {
		c.ID = bson.NewObjectID()
		s.cards = append(s.cards, c)
	}
	return s
}

func (s *memoryStore) GetRates(_ context.Context, zone string) ([]schemas.RateCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []schemas.RateCard{}
	for _, c := range s.cards {
		if zone == "" || strings.EqualFold(c.Zone, zone) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memoryStore) GetRate(_ context.Context, zone string) (*schemas.RateCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.cards {
		if strings.EqualFold(c.Zone, zone) {
			return &c, nil
		}
	}
	return nil, utils.NotFound("Zone '%s' not found", zone)
}

func (s *memoryStore) UpsertRate(_ context.Context, card schemas.RateCard) (*schemas.RateCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for i, c := range s.cards {
		if strings.EqualFold(c.Zone, card.Zone) {
			card.ID = c.ID
			s.cards[i] = card
			return &card, nil
		}
	}
	card.ID = bson.NewObjectID()
	s.cards = append(s.cards, card)
	return &card, nil
}

func (s *memoryStore) ListZones(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	zones := []string{}
	for _, c := range s.cards {
		zones = append(zones, c.Zone)
	}
	slices.Sort(zones)
	return zones, nil
}

func ukIreland() schemas.RateCard {
	return schemas.RateCard{
		Zone:     "UK_IRELAND",
		Currency: "NGN",
		Unit:     "kg",
		Rates: []schemas.RateEntry{
			{Weight: 4, Price: 126375.73},
			{Weight: 2, Price: 85378.48},
			{Weight: 3, Price: 102410.07},
		},
	}
}

func f64(v float64) *float64 { return &v }
