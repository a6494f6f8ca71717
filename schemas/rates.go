package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// RateCard is the per-zone document in the shipping_rates collection.
type RateCard struct {
	ID        bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Zone      string        `json:"zone" bson:"zone"`
	Currency  string        `json:"currency" bson:"currency"`
	Unit      string        `json:"unit" bson:"unit"`
	Rates     []RateEntry   `json:"rates" bson:"rates"`
	CreatedAt time.Time     `json:"created_at,omitzero" bson:"created_at,omitempty"`
	UpdatedAt time.Time     `json:"updated_at,omitzero" bson:"updated_at,omitempty"`
}

type RateEntry struct {
	Weight float64 `json:"weight" bson:"weight"`
	Price  float64 `json:"price" bson:"price"`
}

// RateCardView is a RateCard as returned to clients, with formatted prices.
type RateCardView struct {
	ID        string          `json:"id,omitempty"`
	Zone      string          `json:"zone"`
	Currency  string          `json:"currency"`
	Unit      string          `json:"unit"`
	Rates     []RateEntryView `json:"rates"`
	CreatedAt time.Time       `json:"created_at,omitzero"`
	UpdatedAt time.Time       `json:"updated_at,omitzero"`
}

type RateEntryView struct {
	Weight   float64 `json:"weight"`
	Price    string  `json:"price"`
	PriceRaw float64 `json:"price_raw"`
}

type PriceQuote struct {
	Zone     string  `json:"zone"`
	Weight   float64 `json:"weight"`
	Price    string  `json:"price"`
	Currency string  `json:"currency"`
}

// RateChange is broadcast to rate feed subscribers after every upsert.
type RateChange struct {
	Action string       `json:"action"`
	Zone   string       `json:"zone"`
	Card   RateCardView `json:"card"`
}

// RateCardRequest is the add-rates body. Pointers distinguish a missing
// weight or price from an explicit zero.
type RateCardRequest struct {
	Zone     string             `json:"zone" yaml:"zone"`
	Currency string             `json:"currency" yaml:"currency"`
	Unit     string             `json:"unit" yaml:"unit"`
	Rates    []RateEntryRequest `json:"rates" yaml:"rates"`
}

type RateEntryRequest struct {
	Weight *float64 `json:"weight" yaml:"weight"`
	Price  *float64 `json:"price" yaml:"price"`
}
