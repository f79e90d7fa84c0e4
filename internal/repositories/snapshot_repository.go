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

type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *models.ValuationSnapshot) error
	GetByUserID(ctx context.Context, userID string, limit int64) ([]models.ValuationSnapshot, error)
}

type snapshotRepository struct {
	collection *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) SnapshotRepository {
	return &snapshotRepository{collection: db.Collection("valuation_snapshots")}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot *models.ValuationSnapshot) error {
	result, err := r.collection.InsertOne(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("failed to create valuation snapshot: %w", err)
	}

	snapshot.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *snapshotRepository) GetByUserID(ctx context.Context, userID string, limit int64) ([]models.ValuationSnapshot, error) {
	opts := options.Find().SetSort(bson.M{"taken_at": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list valuation snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var snapshots []models.ValuationSnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode valuation snapshots: %w", err)
	}
	return snapshots, nil
}
