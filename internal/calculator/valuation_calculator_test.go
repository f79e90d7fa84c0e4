package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AinaRoxane/Wallet/internal/models"
)

func btcFeed(history map[string]decimal.Decimal) models.PriceFeed {
	return models.PriceFeed{
		Symbol:       "BTC",
		Name:         "Bitcoin",
		Logo:         "https://cdn.example.com/btc.png",
		PriceHistory: history,
	}
}

func TestComputeValuation(t *testing.T) {
	t.Run("latest price is taken from the most recent history key", func(t *testing.T) {
		balance := map[string]decimal.Decimal{
			"BTC": decimal.NewFromInt(2),
		}
		feeds := []models.PriceFeed{
			btcFeed(map[string]decimal.Decimal{
				"2024-01-01": decimal.NewFromInt(40000),
				"2024-02-01": decimal.NewFromInt(45000),
			}),
		}

		valuation := ComputeValuation(balance, feeds)

		require.Len(t, valuation.Holdings, 1)
		holding := valuation.Holdings[0]
		assert.Equal(t, "BTC", holding.Symbol)
		assert.Equal(t, "Bitcoin", holding.Name)
		assert.True(t, holding.Quantity.Equal(decimal.NewFromInt(2)))
		assert.True(t, holding.LatestPrice.Equal(decimal.NewFromInt(45000)))
		assert.True(t, holding.Value.Equal(decimal.NewFromInt(90000)))
		assert.True(t, valuation.Total.Equal(decimal.NewFromInt(90000)))
	})

	t.Run("insertion order of history keys is irrelevant", func(t *testing.T) {
		feeds := []models.PriceFeed{
			btcFeed(map[string]decimal.Decimal{
				"2024-03-01T10:00:00Z": decimal.NewFromInt(50000),
				"2024-01-15T08:00:00Z": decimal.NewFromInt(38000),
				"2024-02-20T23:59:00Z": decimal.NewFromInt(47000),
			}),
		}
		balance := map[string]decimal.Decimal{"BTC": decimal.NewFromInt(1)}

		valuation := ComputeValuation(balance, feeds)

		require.Len(t, valuation.Holdings, 1)
		assert.True(t, valuation.Holdings[0].LatestPrice.Equal(decimal.NewFromInt(50000)))
	})

	t.Run("adding a later entry never selects an older price", func(t *testing.T) {
		history := map[string]decimal.Decimal{
			"2024-01-01": decimal.NewFromInt(40000),
		}
		balance := map[string]decimal.Decimal{"BTC": decimal.NewFromInt(1)}

		before := ComputeValuation(balance, []models.PriceFeed{btcFeed(history)})
		require.Len(t, before.Holdings, 1)
		assert.True(t, before.Holdings[0].LatestPrice.Equal(decimal.NewFromInt(40000)))

		history["2024-06-01"] = decimal.NewFromInt(30000)
		after := ComputeValuation(balance, []models.PriceFeed{btcFeed(history)})
		require.Len(t, after.Holdings, 1)
		assert.True(t, after.Holdings[0].LatestPrice.Equal(decimal.NewFromInt(30000)))
	})

	t.Run("symbol without a matching feed is excluded", func(t *testing.T) {
		balance := map[string]decimal.Decimal{
			"BTC":  decimal.NewFromInt(2),
			"DOGE": decimal.NewFromInt(1000),
		}
		feeds := []models.PriceFeed{
			btcFeed(map[string]decimal.Decimal{"2024-02-01": decimal.NewFromInt(45000)}),
		}

		valuation := ComputeValuation(balance, feeds)

		require.Len(t, valuation.Holdings, 1)
		assert.Equal(t, "BTC", valuation.Holdings[0].Symbol)
		assert.True(t, valuation.Total.Equal(decimal.NewFromInt(90000)))
	})

	t.Run("feed with empty price history is excluded", func(t *testing.T) {
		balance := map[string]decimal.Decimal{"BTC": decimal.NewFromInt(2)}
		feeds := []models.PriceFeed{btcFeed(map[string]decimal.Decimal{})}

		valuation := ComputeValuation(balance, feeds)

		assert.Empty(t, valuation.Holdings)
		assert.True(t, valuation.Total.IsZero())
	})

	t.Run("total equals the sum of holding values", func(t *testing.T) {
		balance := map[string]decimal.Decimal{
			"BTC": decimal.NewFromFloat(0.5),
			"ETH": decimal.NewFromInt(10),
		}
		feeds := []models.PriceFeed{
			btcFeed(map[string]decimal.Decimal{"2024-02-01": decimal.NewFromInt(45000)}),
			{
				Symbol: "ETH",
				Name:   "Ethereum",
				PriceHistory: map[string]decimal.Decimal{
					"2024-02-01": decimal.NewFromInt(3000),
				},
			},
		}

		valuation := ComputeValuation(balance, feeds)

		require.Len(t, valuation.Holdings, 2)
		sum := decimal.Zero
		for _, h := range valuation.Holdings {
			sum = sum.Add(h.Value)
		}
		assert.True(t, valuation.Total.Equal(sum))
		assert.True(t, valuation.Total.Equal(decimal.NewFromInt(52500)))
	})

	t.Run("holdings are ordered by symbol", func(t *testing.T) {
		balance := map[string]decimal.Decimal{
			"ETH": decimal.NewFromInt(1),
			"ADA": decimal.NewFromInt(1),
			"BTC": decimal.NewFromInt(1),
		}
		feeds := []models.PriceFeed{
			{Symbol: "ETH", PriceHistory: map[string]decimal.Decimal{"2024-01-01": decimal.NewFromInt(1)}},
			{Symbol: "ADA", PriceHistory: map[string]decimal.Decimal{"2024-01-01": decimal.NewFromInt(1)}},
			{Symbol: "BTC", PriceHistory: map[string]decimal.Decimal{"2024-01-01": decimal.NewFromInt(1)}},
		}

		valuation := ComputeValuation(balance, feeds)

		require.Len(t, valuation.Holdings, 3)
		assert.Equal(t, "ADA", valuation.Holdings[0].Symbol)
		assert.Equal(t, "BTC", valuation.Holdings[1].Symbol)
		assert.Equal(t, "ETH", valuation.Holdings[2].Symbol)
	})

	t.Run("zero quantity yields a zero-value holding", func(t *testing.T) {
		balance := map[string]decimal.Decimal{"BTC": decimal.Zero}
		feeds := []models.PriceFeed{
			btcFeed(map[string]decimal.Decimal{"2024-02-01": decimal.NewFromInt(45000)}),
		}

		valuation := ComputeValuation(balance, feeds)

		require.Len(t, valuation.Holdings, 1)
		assert.True(t, valuation.Holdings[0].Value.IsZero())
		assert.True(t, valuation.Total.IsZero())
	})

	t.Run("empty balance yields an empty valuation", func(t *testing.T) {
		valuation := ComputeValuation(nil, []models.PriceFeed{
			btcFeed(map[string]decimal.Decimal{"2024-02-01": decimal.NewFromInt(45000)}),
		})

		assert.Empty(t, valuation.Holdings)
		assert.True(t, valuation.Total.IsZero())
	})
}
