package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AinaRoxane/Wallet/internal/models"
)

func transactionFixtures() (models.Identity, *models.User, []models.PriceFeed) {
	id := primitive.NewObjectID()
	identity := models.Identity{UserID: id.Hex(), Email: "a@example.com"}
	user := &models.User{
		ID:       id,
		Email:    identity.Email,
		WalletID: "wallet_" + id.Hex(),
		Balance: map[string]decimal.Decimal{
			"BTC": decimal.NewFromInt(2),
		},
	}
	feeds := []models.PriceFeed{
		{
			Symbol: "BTC",
			Name:   "Bitcoin",
			PriceHistory: map[string]decimal.Decimal{
				"2024-02-01": decimal.NewFromInt(250),
			},
		},
	}
	return identity, user, feeds
}

func TestTransactionService_Deposit(t *testing.T) {
	identity, user, _ := transactionFixtures()

	t.Run("records a pending deposit intent", func(t *testing.T) {
		users := new(MockUserRepository)
		transactions := new(MockTransactionRepository)
		users.On("GetByID", mock.Anything, identity.UserID).Return(user, nil)
		transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.WalletID == user.WalletID &&
				tx.Type == models.TypeDeposit &&
				tx.Status == models.StatusPending &&
				tx.Amount.Equal(decimal.NewFromInt(100))
		})).Return(nil)

		service := NewTransactionService(users, new(MockPriceFeedRepository), transactions, new(MockHistoryRepository))
		tx, err := service.Deposit(context.Background(), identity, decimal.NewFromInt(100))

		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, tx.Status)
		transactions.AssertExpectations(t)
	})

	t.Run("rejects a zero amount", func(t *testing.T) {
		transactions := new(MockTransactionRepository)
		service := NewTransactionService(new(MockUserRepository), new(MockPriceFeedRepository), transactions, new(MockHistoryRepository))

		_, err := service.Deposit(context.Background(), identity, decimal.Zero)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		service := NewTransactionService(new(MockUserRepository), new(MockPriceFeedRepository), new(MockTransactionRepository), new(MockHistoryRepository))

		_, err := service.Deposit(context.Background(), identity, decimal.NewFromInt(-50))

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("deposits are not capped by the portfolio value", func(t *testing.T) {
		users := new(MockUserRepository)
		transactions := new(MockTransactionRepository)
		users.On("GetByID", mock.Anything, identity.UserID).Return(user, nil)
		transactions.On("Create", mock.Anything, mock.Anything).Return(nil)

		service := NewTransactionService(users, new(MockPriceFeedRepository), transactions, new(MockHistoryRepository))
		_, err := service.Deposit(context.Background(), identity, decimal.NewFromInt(1000000))

		assert.NoError(t, err)
	})
}

func TestTransactionService_Withdraw(t *testing.T) {
	identity, user, feeds := transactionFixtures()
	// 2 BTC at 250 each
	portfolioTotal := decimal.NewFromInt(500)

	t.Run("accepts a withdrawal within the portfolio value", func(t *testing.T) {
		users := new(MockUserRepository)
		feedsRepo := new(MockPriceFeedRepository)
		transactions := new(MockTransactionRepository)
		users.On("GetByID", mock.Anything, identity.UserID).Return(user, nil)
		feedsRepo.On("GetAll", mock.Anything).Return(feeds, nil)
		transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.TypeWithdrawal && tx.Amount.Equal(decimal.NewFromInt(300))
		})).Return(nil)

		service := NewTransactionService(users, feedsRepo, transactions, new(MockHistoryRepository))
		tx, err := service.Withdraw(context.Background(), identity, decimal.NewFromInt(300))

		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, tx.Status)
		transactions.AssertExpectations(t)
	})

	t.Run("accepts a withdrawal of exactly the portfolio value", func(t *testing.T) {
		users := new(MockUserRepository)
		feedsRepo := new(MockPriceFeedRepository)
		transactions := new(MockTransactionRepository)
		users.On("GetByID", mock.Anything, identity.UserID).Return(user, nil)
		feedsRepo.On("GetAll", mock.Anything).Return(feeds, nil)
		transactions.On("Create", mock.Anything, mock.Anything).Return(nil)

		service := NewTransactionService(users, feedsRepo, transactions, new(MockHistoryRepository))
		_, err := service.Withdraw(context.Background(), identity, portfolioTotal)

		assert.NoError(t, err)
	})

	t.Run("rejects a withdrawal above the portfolio value without writing", func(t *testing.T) {
		users := new(MockUserRepository)
		feedsRepo := new(MockPriceFeedRepository)
		transactions := new(MockTransactionRepository)
		users.On("GetByID", mock.Anything, identity.UserID).Return(user, nil)
		feedsRepo.On("GetAll", mock.Anything).Return(feeds, nil)

		service := NewTransactionService(users, feedsRepo, transactions, new(MockHistoryRepository))
		_, err := service.Withdraw(context.Background(), identity, portfolioTotal.Add(decimal.NewFromInt(1)))

		assert.ErrorIs(t, err, ErrInsufficientFunds)
		transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("assets without a feed do not back withdrawals", func(t *testing.T) {
		users := new(MockUserRepository)
		feedsRepo := new(MockPriceFeedRepository)
		transactions := new(MockTransactionRepository)
		orphan := &models.User{
			ID:       user.ID,
			Email:    user.Email,
			WalletID: user.WalletID,
			Balance: map[string]decimal.Decimal{
				"DOGE": decimal.NewFromInt(1000),
			},
		}
		users.On("GetByID", mock.Anything, identity.UserID).Return(orphan, nil)
		feedsRepo.On("GetAll", mock.Anything).Return(feeds, nil)

		service := NewTransactionService(users, feedsRepo, transactions, new(MockHistoryRepository))
		_, err := service.Withdraw(context.Background(), identity, decimal.NewFromInt(1))

		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})

	t.Run("rejects a non-positive amount before touching the store", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewTransactionService(users, new(MockPriceFeedRepository), new(MockTransactionRepository), new(MockHistoryRepository))

		_, err := service.Withdraw(context.Background(), identity, decimal.Zero)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestTransactionService_GetHistory(t *testing.T) {
	identity, _, _ := transactionFixtures()

	t.Run("returns the user's history entries", func(t *testing.T) {
		history := new(MockHistoryRepository)
		entries := []models.HistoryEntry{
			{Email: identity.Email, CryptoName: "Bitcoin", State: models.StatusValidated},
		}
		history.On("GetByEmail", mock.Anything, identity.Email).Return(entries, nil)

		service := NewTransactionService(new(MockUserRepository), new(MockPriceFeedRepository), new(MockTransactionRepository), history)
		result, err := service.GetHistory(context.Background(), identity)

		require.NoError(t, err)
		assert.Equal(t, entries, result)
	})
}
