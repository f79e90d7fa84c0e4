package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AinaRoxane/Wallet/internal/models"
)

func TestProfileService_UpdateFullName(t *testing.T) {
	id := primitive.NewObjectID()
	identity := models.Identity{UserID: id.Hex(), Email: "a@example.com"}

	t.Run("persists the trimmed name", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("UpdateFullName", mock.Anything, identity.UserID, "Jane Doe").Return(nil)
		users.On("GetByID", mock.Anything, identity.UserID).
			Return(&models.User{ID: id, Email: identity.Email, FullName: "Jane Doe"}, nil)

		service := NewProfileService(users, new(MockImageUploader))
		user, err := service.UpdateFullName(context.Background(), identity, "  Jane Doe  ")

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.FullName)
		users.AssertExpectations(t)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewProfileService(users, new(MockImageUploader))

		_, err := service.UpdateFullName(context.Background(), identity, "   ")

		assert.ErrorIs(t, err, ErrEmptyFullName)
		users.AssertNotCalled(t, "UpdateFullName", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProfileService_UpdatePhoto(t *testing.T) {
	id := primitive.NewObjectID()
	identity := models.Identity{UserID: id.Hex(), Email: "a@example.com"}
	content := strings.NewReader("fake-image-bytes")

	t.Run("uploads then writes the returned url", func(t *testing.T) {
		users := new(MockUserRepository)
		uploader := new(MockImageUploader)
		uploader.On("Upload", mock.Anything, "avatar.png", content).
			Return("https://cdn.example.com/avatar.png", nil)
		users.On("UpdateProfilePicByEmail", mock.Anything, identity.Email, "https://cdn.example.com/avatar.png").
			Return(nil)

		service := NewProfileService(users, uploader)
		url, err := service.UpdatePhoto(context.Background(), identity, "avatar.png", content)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/avatar.png", url)
		users.AssertExpectations(t)
	})

	t.Run("a failed upload writes nothing", func(t *testing.T) {
		users := new(MockUserRepository)
		uploader := new(MockImageUploader)
		uploader.On("Upload", mock.Anything, "avatar.png", content).
			Return("", errors.New("upload rejected"))

		service := NewProfileService(users, uploader)
		_, err := service.UpdatePhoto(context.Background(), identity, "avatar.png", content)

		require.Error(t, err)
		users.AssertNotCalled(t, "UpdateProfilePicByEmail", mock.Anything, mock.Anything, mock.Anything)
	})
}
