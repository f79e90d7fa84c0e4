package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AinaRoxane/Wallet/internal/calculator"
	"github.com/AinaRoxane/Wallet/internal/models"
	"github.com/AinaRoxane/Wallet/internal/repositories"
	"github.com/AinaRoxane/Wallet/pkg/cache"
)

// PortfolioCache is the slice of the Redis client the portfolio service
// uses. A nil cache disables caching entirely. Cached valuations age out
// on their TTL; there is no explicit invalidation because the only
// balance-affecting writer is the external settlement process.
type PortfolioCache interface {
	GetValuation(ctx context.Context, userID string, dest interface{}) error
	SetValuation(ctx context.Context, userID string, valuation interface{}) error
	GetFeeds(ctx context.Context, dest interface{}) error
	SetFeeds(ctx context.Context, feeds interface{}) error
}

type PortfolioService interface {
	GetValuation(ctx context.Context, identity models.Identity) (*models.Valuation, error)
	GetFeeds(ctx context.Context) ([]models.PriceFeed, error)
	GetSnapshots(ctx context.Context, identity models.Identity, limit int64) ([]models.ValuationSnapshot, error)
}

type portfolioService struct {
	users     repositories.UserRepository
	feeds     repositories.PriceFeedRepository
	snapshots repositories.SnapshotRepository
	cache     PortfolioCache
}

func NewPortfolioService(
	users repositories.UserRepository,
	feeds repositories.PriceFeedRepository,
	snapshots repositories.SnapshotRepository,
	portfolioCache PortfolioCache,
) PortfolioService {
	return &portfolioService{
		users:     users,
		feeds:     feeds,
		snapshots: snapshots,
		cache:     portfolioCache,
	}
}

// GetValuation joins the user's balance against the latest feed prices.
// The cached copy is served when fresh; a cache failure falls through to
// a full recompute.
func (s *portfolioService) GetValuation(ctx context.Context, identity models.Identity) (*models.Valuation, error) {
	if s.cache != nil {
		var cached models.Valuation
		err := s.cache.GetValuation(ctx, identity.UserID, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			logrus.WithError(err).Debug("Valuation cache read failed")
		}
	}

	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	feeds, err := s.feeds.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load price feeds: %w", err)
	}

	valuation := calculator.ComputeValuation(user.Balance, feeds)
	valuation.ComputedAt = time.Now().UTC()

	if s.cache != nil {
		if err := s.cache.SetValuation(ctx, identity.UserID, valuation); err != nil {
			logrus.WithError(err).Debug("Valuation cache write failed")
		}
	}

	return &valuation, nil
}

// GetFeeds returns the full feed list, served from the cache when fresh.
// The price stream drops the cached copy whenever prices move, so a hit
// is never staler than the last broadcast snapshot.
func (s *portfolioService) GetFeeds(ctx context.Context) ([]models.PriceFeed, error) {
	if s.cache != nil {
		var cached []models.PriceFeed
		err := s.cache.GetFeeds(ctx, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			logrus.WithError(err).Debug("Feeds cache read failed")
		}
	}

	feeds, err := s.feeds.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetFeeds(ctx, feeds); err != nil {
			logrus.WithError(err).Debug("Feeds cache write failed")
		}
	}

	return feeds, nil
}

func (s *portfolioService) GetSnapshots(ctx context.Context, identity models.Identity, limit int64) ([]models.ValuationSnapshot, error) {
	return s.snapshots.GetByUserID(ctx, identity.UserID, limit)
}
