package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/AinaRoxane/Wallet/internal/models"
	"github.com/AinaRoxane/Wallet/internal/repositories"
)

var ErrUnknownSymbol = errors.New("unknown asset symbol")

// ToggleFavorite flips the symbol's membership in the list without
// touching the other entries. Applying it twice returns the original
// list.
func ToggleFavorite(favorites []string, symbol string) []string {
	result := make([]string, 0, len(favorites)+1)
	found := false
	for _, s := range favorites {
		if s == symbol {
			found = true
			continue
		}
		result = append(result, s)
	}
	if !found {
		result = append(result, symbol)
	}
	return result
}

// FavoriteToggleResult reports the outcome of a toggle: the new list and
// whether the symbol ended up a favorite.
type FavoriteToggleResult struct {
	Favorites  []string `json:"favorites"`
	IsFavorite bool     `json:"is_favorite"`
}

type FavoritesService interface {
	Toggle(ctx context.Context, identity models.Identity, symbol string) (*FavoriteToggleResult, error)
}

type favoritesService struct {
	users repositories.UserRepository
	feeds repositories.PriceFeedRepository
}

func NewFavoritesService(users repositories.UserRepository, feeds repositories.PriceFeedRepository) FavoritesService {
	return &favoritesService{
		users: users,
		feeds: feeds,
	}
}

// Toggle reads the current list, flips the symbol and persists the whole
// list. Only listed assets can be favorited, so a typo never pollutes
// the stored list. On a persist failure the stored state is untouched,
// so the caller can roll its display back to the pre-toggle list.
func (s *favoritesService) Toggle(ctx context.Context, identity models.Identity, symbol string) (*FavoriteToggleResult, error) {
	if _, err := s.feeds.GetBySymbol(ctx, symbol); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownSymbol
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	updated := ToggleFavorite(user.FavoriteCryptos, symbol)

	if err := s.users.UpdateFavorites(ctx, identity.UserID, updated); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": identity.UserID,
			"symbol":  symbol,
		}).WithError(err).Error("Failed to persist favorites toggle")
		return nil, err
	}

	isFavorite := false
	for _, fav := range updated {
		if fav == symbol {
			isFavorite = true
			break
		}
	}

	return &FavoriteToggleResult{
		Favorites:  updated,
		IsFavorite: isFavorite,
	}, nil
}
