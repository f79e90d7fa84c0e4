package services

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AinaRoxane/Wallet/internal/config"
	"github.com/AinaRoxane/Wallet/internal/models"
)

func tokenConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:     "test-secret-test-secret-test-secret!",
		Expiration: time.Hour,
		Issuer:     "wallet-api-test",
	}
}

func otherTokenConfig() config.JWTConfig {
	cfg := tokenConfig()
	cfg.Secret = "other-secret-other-secret-other-sec!"
	return cfg
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateFavorites(ctx context.Context, id string, favorites []string) error {
	args := m.Called(ctx, id, favorites)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateFullName(ctx context.Context, id string, fullName string) error {
	args := m.Called(ctx, id, fullName)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfilePicByEmail(ctx context.Context, email, url string) error {
	args := m.Called(ctx, email, url)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type MockPriceFeedRepository struct {
	mock.Mock
}

func (m *MockPriceFeedRepository) GetAll(ctx context.Context) ([]models.PriceFeed, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PriceFeed), args.Error(1)
}

func (m *MockPriceFeedRepository) GetBySymbol(ctx context.Context, symbol string) (*models.PriceFeed, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PriceFeed), args.Error(1)
}

func (m *MockPriceFeedRepository) Watch(ctx context.Context) (*mongo.ChangeStream, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongo.ChangeStream), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) GetByEmail(ctx context.Context, email string) ([]models.HistoryEntry, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HistoryEntry), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByEmail(ctx context.Context, email string) ([]models.Notification, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkOpened(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Create(ctx context.Context, snapshot *models.ValuationSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) GetByUserID(ctx context.Context, userID string, limit int64) ([]models.ValuationSnapshot, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ValuationSnapshot), args.Error(1)
}

type MockPortfolioCache struct {
	mock.Mock
}

func (m *MockPortfolioCache) GetValuation(ctx context.Context, userID string, dest interface{}) error {
	args := m.Called(ctx, userID, dest)
	return args.Error(0)
}

func (m *MockPortfolioCache) SetValuation(ctx context.Context, userID string, valuation interface{}) error {
	args := m.Called(ctx, userID, valuation)
	return args.Error(0)
}

func (m *MockPortfolioCache) GetFeeds(ctx context.Context, dest interface{}) error {
	args := m.Called(ctx, dest)
	return args.Error(0)
}

func (m *MockPortfolioCache) SetFeeds(ctx context.Context, feeds interface{}) error {
	args := m.Called(ctx, feeds)
	return args.Error(0)
}

type MockImageUploader struct {
	mock.Mock
}

func (m *MockImageUploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	args := m.Called(ctx, filename, content)
	return args.String(0), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Generate(identity models.Identity) (string, time.Time, error) {
	args := m.Called(identity)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) Verify(tokenString string) (models.Identity, error) {
	args := m.Called(tokenString)
	return args.Get(0).(models.Identity), args.Error(1)
}
