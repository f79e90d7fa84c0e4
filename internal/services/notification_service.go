package services

import (
	"context"

	"github.com/AinaRoxane/Wallet/internal/aggregator"
	"github.com/AinaRoxane/Wallet/internal/models"
	"github.com/AinaRoxane/Wallet/internal/repositories"
)

// NotificationFeed is the grouped notification list plus the on-demand
// unread count.
type NotificationFeed struct {
	Groups []aggregator.DateGroup `json:"groups"`
	Unread int64                  `json:"unread"`
}

type NotificationService interface {
	GetFeed(ctx context.Context, identity models.Identity) (*NotificationFeed, error)
	CountUnread(ctx context.Context, identity models.Identity) (int64, error)
	MarkOpened(ctx context.Context, identity models.Identity, id string) error
}

type notificationService struct {
	notifications repositories.NotificationRepository
}

func NewNotificationService(notifications repositories.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) GetFeed(ctx context.Context, identity models.Identity) (*NotificationFeed, error) {
	notifications, err := s.notifications.GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifications.CountUnread(ctx, identity.Email)
	if err != nil {
		return nil, err
	}

	return &NotificationFeed{
		Groups: aggregator.GroupByDate(notifications),
		Unread: unread,
	}, nil
}

// CountUnread recomputes the badge count from the store each time instead
// of maintaining a counter document.
func (s *notificationService) CountUnread(ctx context.Context, identity models.Identity) (int64, error) {
	return s.notifications.CountUnread(ctx, identity.Email)
}

func (s *notificationService) MarkOpened(ctx context.Context, identity models.Identity, id string) error {
	return s.notifications.MarkOpened(ctx, id)
}
