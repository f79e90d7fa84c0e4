package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/AinaRoxane/Wallet/internal/calculator"
	"github.com/AinaRoxane/Wallet/internal/models"
	"github.com/AinaRoxane/Wallet/internal/repositories"
)

var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("amount exceeds portfolio value")
)

type TransactionService interface {
	Deposit(ctx context.Context, identity models.Identity, amount decimal.Decimal) (*models.Transaction, error)
	Withdraw(ctx context.Context, identity models.Identity, amount decimal.Decimal) (*models.Transaction, error)
	GetHistory(ctx context.Context, identity models.Identity) ([]models.HistoryEntry, error)
}

type transactionService struct {
	users        repositories.UserRepository
	feeds        repositories.PriceFeedRepository
	transactions repositories.TransactionRepository
	history      repositories.HistoryRepository
}

func NewTransactionService(
	users repositories.UserRepository,
	feeds repositories.PriceFeedRepository,
	transactions repositories.TransactionRepository,
	history repositories.HistoryRepository,
) TransactionService {
	return &transactionService{
		users:        users,
		feeds:        feeds,
		transactions: transactions,
		history:      history,
	}
}

// Deposit records a pending deposit intent. The balance itself is only
// moved by the settlement process once the intent is validated.
func (s *transactionService) Deposit(ctx context.Context, identity models.Identity, amount decimal.Decimal) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	user, err := s.getUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	tx := models.NewPendingTransaction(user.WalletID, models.TypeDeposit, amount)
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"wallet_id": user.WalletID,
		"type":      tx.Type,
		"amount":    amount.String(),
	}).Info("Transaction intent recorded")

	return tx, nil
}

// Withdraw records a pending withdrawal intent after checking it against
// the current portfolio value. The check uses the same valuation the
// portfolio screen shows, so an amount the user can see is an amount the
// user can request.
func (s *transactionService) Withdraw(ctx context.Context, identity models.Identity, amount decimal.Decimal) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	user, err := s.getUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	feeds, err := s.feeds.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load price feeds: %w", err)
	}

	valuation := calculator.ComputeValuation(user.Balance, feeds)
	if amount.GreaterThan(valuation.Total) {
		logrus.WithFields(logrus.Fields{
			"wallet_id": user.WalletID,
			"amount":    amount.String(),
			"total":     valuation.Total.String(),
		}).Warn("Withdrawal rejected, amount exceeds portfolio value")
		return nil, ErrInsufficientFunds
	}

	tx := models.NewPendingTransaction(user.WalletID, models.TypeWithdrawal, amount)
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"wallet_id": user.WalletID,
		"type":      tx.Type,
		"amount":    amount.String(),
	}).Info("Transaction intent recorded")

	return tx, nil
}

func (s *transactionService) GetHistory(ctx context.Context, identity models.Identity) ([]models.HistoryEntry, error) {
	return s.history.GetByEmail(ctx, identity.Email)
}

func (s *transactionService) getUser(ctx context.Context, identity models.Identity) (*models.User, error) {
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
