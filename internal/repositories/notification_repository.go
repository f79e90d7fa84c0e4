package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AinaRoxane/Wallet/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByEmail(ctx context.Context, email string) ([]models.Notification, error)
	CountUnread(ctx context.Context, email string) (int64, error)
	MarkOpened(ctx context.Context, id string) error
}

type notificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{collection: db.Collection("notifications")}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	notification.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *notificationRepository) GetByEmail(ctx context.Context, email string) ([]models.Notification, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"email": email},
		options.Find().SetSort(bson.M{"date": -1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// CountUnread runs the compound filter on demand rather than keeping a
// counter document in sync.
func (r *notificationRepository) CountUnread(ctx context.Context, email string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"email":     email,
		"wasOpened": false,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) MarkOpened(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification id %q: %w", id, err)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"wasOpened": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification opened: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
