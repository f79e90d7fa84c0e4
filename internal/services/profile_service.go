package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AinaRoxane/Wallet/internal/clients"
	"github.com/AinaRoxane/Wallet/internal/models"
	"github.com/AinaRoxane/Wallet/internal/repositories"
)

var ErrEmptyFullName = errors.New("full name must not be empty")

type ProfileService interface {
	Get(ctx context.Context, identity models.Identity) (*models.User, error)
	UpdateFullName(ctx context.Context, identity models.Identity, fullName string) (*models.User, error)
	UpdatePhoto(ctx context.Context, identity models.Identity, filename string, content io.Reader) (string, error)
}

type profileService struct {
	users    repositories.UserRepository
	uploader clients.ImageUploader
}

func NewProfileService(users repositories.UserRepository, uploader clients.ImageUploader) ProfileService {
	return &profileService{
		users:    users,
		uploader: uploader,
	}
}

func (s *profileService) Get(ctx context.Context, identity models.Identity) (*models.User, error) {
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) UpdateFullName(ctx context.Context, identity models.Identity, fullName string) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, ErrEmptyFullName
	}

	if err := s.users.UpdateFullName(ctx, identity.UserID, fullName); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.Get(ctx, identity)
}

// UpdatePhoto uploads the image first and only then writes the URL, so a
// failed upload never leaves a dangling reference in the user document.
func (s *profileService) UpdatePhoto(ctx context.Context, identity models.Identity, filename string, content io.Reader) (string, error) {
	url, err := s.uploader.Upload(ctx, filename, content)
	if err != nil {
		return "", fmt.Errorf("failed to upload profile photo: %w", err)
	}

	if err := s.users.UpdateProfilePicByEmail(ctx, identity.Email, url); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	logrus.WithField("user_id", identity.UserID).Info("Profile photo updated")
	return url, nil
}
