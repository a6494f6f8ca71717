package rates

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"transdom/database"
	"transdom/schemas"
	"transdom/utils"
)

// Store reads and writes zone-keyed rate cards.
type Store interface {
	// GetRates returns every card, or only those matching zone
	// case-insensitively when zone is not empty.
	GetRates(ctx context.Context, zone string) ([]schemas.RateCard, error)
	// GetRate returns the card for zone or a not-found error.
	GetRate(ctx context.Context, zone string) (*schemas.RateCard, error)
	// UpsertRate inserts card or replaces the stored card for its zone.
	UpsertRate(ctx context.Context, card schemas.RateCard) (*schemas.RateCard, error)
	// ListZones returns the distinct zones, sorted.
	ListZones(ctx context.Context) ([]string, error)
}

type MongoStore struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection(database.COLLECTION_SHIPPING_RATE),
		now:        time.Now,
	}
}

// EnsureIndexes creates the unique zone index. Safe to call on every start.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "zone", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("zone_unique"),
	})
	if err != nil {
		return fmt.Errorf("create zone index: %w", err)
	}
	return nil
}

func (s *MongoStore) GetRates(ctx context.Context, zone string) ([]schemas.RateCard, error) {
	filter := bson.D{}
	if zone != "" {
		filter = zoneFilter(zone)
	}

	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "zone", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find rates: %w", err)
	}
	defer cursor.Close(ctx)

	cards := []schemas.RateCard{}
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}

	return cards, nil
}

func (s *MongoStore) GetRate(ctx context.Context, zone string) (*schemas.RateCard, error) {
	card := schemas.RateCard{}
	err := s.collection.FindOne(ctx, zoneFilter(zone)).Decode(&card)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("Zone '%s' not found", zone)
	}
	if err != nil {
		return nil, fmt.Errorf("find zone %s: %w", zone, err)
	}

	return &card, nil
}

func (s *MongoStore) UpsertRate(ctx context.Context, card schemas.RateCard) (*schemas.RateCard, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	stored := schemas.RateCard{}
	err := s.collection.FindOneAndUpdate(ctx, zoneFilter(card.Zone), upsertDocument(card, s.now()), opts).Decode(&stored)
	if err != nil {
		return nil, fmt.Errorf("upsert zone %s: %w", card.Zone, err)
	}

	return &stored, nil
}

func (s *MongoStore) ListZones(ctx context.Context) ([]string, error) {
	zones := []string{}
	if err := s.collection.Distinct(ctx, "zone", bson.D{}).Decode(&zones); err != nil {
		return nil, fmt.Errorf("distinct zones: %w", err)
	}

	slices.Sort(zones)
	return zones, nil
}

// zoneFilter matches zone exactly, ignoring case.
func zoneFilter(zone string) bson.D {
	pattern := "^" + regexp.QuoteMeta(strings.TrimSpace(zone)) + "$"
	return bson.D{{Key: "zone", Value: bson.D{
		{Key: "$regex", Value: pattern},
		{Key: "$options", Value: "i"},
	}}}
}

// upsertDocument replaces every card field, including the whole rates
// array, and stamps created_at only on insert.
func upsertDocument(card schemas.RateCard, now time.Time) bson.D {
	return bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "zone", Value: card.Zone},
			{Key: "currency", Value: card.Currency},
			{Key: "unit", Value: card.Unit},
			{Key: "rates", Value: card.Rates},
			{Key: "updated_at", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "created_at", Value: now},
		}},
	}
}
