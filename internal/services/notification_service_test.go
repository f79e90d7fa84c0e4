package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AinaRoxane/Wallet/internal/models"
)

func TestNotificationService_GetFeed(t *testing.T) {
	identity := models.Identity{UserID: primitive.NewObjectID().Hex(), Email: "a@example.com"}

	day1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC)

	t.Run("groups the feed by date and carries the unread count", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		repo.On("GetByEmail", mock.Anything, identity.Email).Return([]models.Notification{
			{ID: primitive.NewObjectID(), Email: identity.Email, Date: day2},
			{ID: primitive.NewObjectID(), Email: identity.Email, Date: day1},
			{ID: primitive.NewObjectID(), Email: identity.Email, Date: day1.Add(2 * time.Hour)},
		}, nil)
		repo.On("CountUnread", mock.Anything, identity.Email).Return(int64(2), nil)

		service := NewNotificationService(repo)
		feed, err := service.GetFeed(context.Background(), identity)

		require.NoError(t, err)
		assert.Equal(t, int64(2), feed.Unread)
		require.Len(t, feed.Groups, 2)
		assert.Equal(t, "2024-03-02", feed.Groups[0].Date)
		assert.Equal(t, "2024-03-01", feed.Groups[1].Date)
		assert.Len(t, feed.Groups[1].Items, 2)
	})

	t.Run("an empty inbox yields an empty feed", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		repo.On("GetByEmail", mock.Anything, identity.Email).Return([]models.Notification{}, nil)
		repo.On("CountUnread", mock.Anything, identity.Email).Return(int64(0), nil)

		service := NewNotificationService(repo)
		feed, err := service.GetFeed(context.Background(), identity)

		require.NoError(t, err)
		assert.Empty(t, feed.Groups)
		assert.Zero(t, feed.Unread)
	})
}

func TestNotificationService_MarkOpened(t *testing.T) {
	identity := models.Identity{UserID: primitive.NewObjectID().Hex(), Email: "a@example.com"}

	t.Run("delegates to the repository", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		id := primitive.NewObjectID().Hex()
		repo.On("MarkOpened", mock.Anything, id).Return(nil)

		service := NewNotificationService(repo)
		err := service.MarkOpened(context.Background(), identity, id)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
