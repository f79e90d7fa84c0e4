package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriceFeed represents a document in the "cours" collection. PriceHistory
// maps a date string to the quoted price at that date. The map carries no
// ordering; consumers must sort the keys chronologically.
type PriceFeed struct {
	ID           primitive.ObjectID         `bson:"_id,omitempty" json:"id,omitempty"`
	Symbol       string                     `bson:"symbol" json:"symbol"`
	Name         string                     `bson:"name" json:"name"`
	Logo         string                     `bson:"logo" json:"logo"`
	PriceHistory map[string]decimal.Decimal `bson:"priceHistory" json:"price_history"`
}

// historyDateLayouts are the accepted priceHistory key formats, tried in
// order. Keys are expected to be canonical ISO-8601 strings.
var historyDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseHistoryDate parses a priceHistory key into a timestamp.
func ParseHistoryDate(key string) (time.Time, bool) {
	for _, layout := range historyDateLayouts {
		if t, err := time.Parse(layout, key); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LatestPrice returns the price at the chronologically latest key of the
// feed's price history. The boolean is false when the history is empty or
// no key parses as a date; the asset then has no defined current price.
func (p *PriceFeed) LatestPrice() (decimal.Decimal, bool) {
	type entry struct {
		at    time.Time
		price decimal.Decimal
	}

	entries := make([]entry, 0, len(p.PriceHistory))
	for key, price := range p.PriceHistory {
		at, ok := ParseHistoryDate(key)
		if !ok {
			continue
		}
		entries = append(entries, entry{at: at, price: price})
	}

	if len(entries) == 0 {
		return decimal.Zero, false
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].at.Before(entries[j].at)
	})

	return entries[len(entries)-1].price, true
}
