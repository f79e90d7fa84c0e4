package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AinaRoxane/Wallet/internal/models"
)

type HistoryRepository interface {
	GetByEmail(ctx context.Context, email string) ([]models.HistoryEntry, error)
}

type historyRepository struct {
	collection *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) HistoryRepository {
	return &historyRepository{collection: db.Collection("historiques")}
}

// GetByEmail returns the user's operation log, newest first. The collection
// is written by the back office, this service only reads it.
func (r *historyRepository) GetByEmail(ctx context.Context, email string) ([]models.HistoryEntry, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"email": email},
		options.Find().SetSort(bson.M{"made_at": -1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.HistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history entries: %w", err)
	}
	return entries, nil
}
