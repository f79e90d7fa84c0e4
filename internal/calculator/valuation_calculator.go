package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AinaRoxane/Wallet/internal/models"
)

// ComputeValuation joins a user's balance map against the available price
// feeds and produces the per-asset breakdown plus the total balance.
//
// A balance symbol with no matching feed, or whose feed has an empty
// (or unparseable) price history, is excluded from both the holdings list
// and the total. Holdings are ordered by symbol so repeated computations
// over the same inputs render identically.
func ComputeValuation(balance map[string]decimal.Decimal, feeds []models.PriceFeed) models.Valuation {
	feedsBySymbol := make(map[string]*models.PriceFeed, len(feeds))
	for i := range feeds {
		feedsBySymbol[feeds[i].Symbol] = &feeds[i]
	}

	symbols := make([]string, 0, len(balance))
	for symbol := range balance {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	valuation := models.Valuation{
		Total:      decimal.Zero,
		Holdings:   []models.Holding{},
		ComputedAt: time.Now().UTC(),
	}

	for _, symbol := range symbols {
		feed, ok := feedsBySymbol[symbol]
		if !ok {
			continue
		}

		latestPrice, ok := feed.LatestPrice()
		if !ok {
			continue
		}

		quantity := balance[symbol]
		value := quantity.Mul(latestPrice)

		valuation.Holdings = append(valuation.Holdings, models.Holding{
			Symbol:      symbol,
			Name:        feed.Name,
			Logo:        feed.Logo,
			Quantity:    quantity,
			LatestPrice: latestPrice,
			Value:       value,
		})
		valuation.Total = valuation.Total.Add(value)
	}

	return valuation
}
