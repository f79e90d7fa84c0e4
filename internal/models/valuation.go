package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Holding is the per-asset valuation line derived from a user's balance
// map joined against the latest known price of the matching feed.
type Holding struct {
	Symbol      string          `bson:"symbol" json:"symbol"`
	Name        string          `bson:"name" json:"name"`
	Logo        string          `bson:"logo" json:"logo"`
	Quantity    decimal.Decimal `bson:"quantity" json:"quantity"`
	LatestPrice decimal.Decimal `bson:"latest_price" json:"latest_price"`
	Value       decimal.Decimal `bson:"value" json:"value"`
}

// Valuation is the display-ready portfolio breakdown. Total is the sum of
// the holdings' values; symbols without a usable price feed are excluded
// from both.
type Valuation struct {
	Total      decimal.Decimal `bson:"total" json:"total"`
	Holdings   []Holding       `bson:"holdings" json:"holdings"`
	ComputedAt time.Time       `bson:"computed_at" json:"computed_at"`
}

// ValuationSnapshot is a point-in-time record of a user's valuation,
// written by the daily snapshot job.
type ValuationSnapshot struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID   string             `bson:"user_id" json:"user_id"`
	Email    string             `bson:"email" json:"email"`
	Total    decimal.Decimal    `bson:"total" json:"total"`
	Holdings []Holding          `bson:"holdings" json:"holdings"`
	TakenAt  time.Time          `bson:"taken_at" json:"taken_at"`
}
