package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AinaRoxane/Wallet/internal/models"
	"github.com/AinaRoxane/Wallet/internal/repositories"
	"github.com/AinaRoxane/Wallet/pkg/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthResult is what a successful register or login returns.
type AuthResult struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

type authService struct {
	users  repositories.UserRepository
	feeds  repositories.PriceFeedRepository
	tokens TokenService
}

func NewAuthService(users repositories.UserRepository, feeds repositories.PriceFeedRepository, tokens TokenService) AuthService {
	return &authService{
		users:  users,
		feeds:  feeds,
		tokens: tokens,
	}
}

// Register creates a new account. Every listed asset starts with a zero
// balance entry so the portfolio screen has a line per asset from day one,
// and the wallet id is derived from the new document id.
func (s *authService) Register(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	email = utils.NormalizeEmail(email)

	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	feeds, err := s.feeds.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load price feeds: %w", err)
	}

	balance := make(map[string]decimal.Decimal, len(feeds))
	for _, feed := range feeds {
		balance[feed.Symbol] = decimal.Zero
	}

	// The wallet id embeds the document id, so the id is allocated
	// client-side before the insert.
	id := primitive.NewObjectID()
	user := &models.User{
		ID:                   id,
		Email:                email,
		PasswordHash:         hash,
		FullName:             fullName,
		WalletID:             "wallet_" + id.Hex(),
		FavoriteCryptos:      []string{},
		Balance:              balance,
		NotificationsEnabled: true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID.Hex(),
		"email":   email,
	}).Info("User registered")

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = utils.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		logrus.WithField("email", email).Warn("Failed login attempt")
		return nil, ErrInvalidCredentials
	}

	if user.WalletID == "" {
		user.WalletID = "wallet_" + user.ID.Hex()
	}

	return s.issueToken(user)
}

func (s *authService) issueToken(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Generate(models.Identity{
		UserID: user.ID.Hex(),
		Email:  user.Email,
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
