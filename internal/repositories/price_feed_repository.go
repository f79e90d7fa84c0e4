package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AinaRoxane/Wallet/internal/models"
)

type PriceFeedRepository interface {
	GetAll(ctx context.Context) ([]models.PriceFeed, error)
	GetBySymbol(ctx context.Context, symbol string) (*models.PriceFeed, error)
	Watch(ctx context.Context) (*mongo.ChangeStream, error)
}

type priceFeedRepository struct {
	collection *mongo.Collection
}

func NewPriceFeedRepository(db *mongo.Database) PriceFeedRepository {
	return &priceFeedRepository{collection: db.Collection("cours")}
}

func (r *priceFeedRepository) GetAll(ctx context.Context) ([]models.PriceFeed, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"symbol": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list price feeds: %w", err)
	}
	defer cursor.Close(ctx)

	var feeds []models.PriceFeed
	if err := cursor.All(ctx, &feeds); err != nil {
		return nil, fmt.Errorf("failed to decode price feeds: %w", err)
	}
	return feeds, nil
}

func (r *priceFeedRepository) GetBySymbol(ctx context.Context, symbol string) (*models.PriceFeed, error) {
	var feed models.PriceFeed
	err := r.collection.FindOne(ctx, bson.M{"symbol": symbol}).Decode(&feed)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get price feed %s: %w", symbol, err)
	}
	return &feed, nil
}

// Watch opens a change stream over the cours collection. The stream only
// signals that something changed; consumers reload the full collection
// and replace their snapshot wholesale.
func (r *priceFeedRepository) Watch(ctx context.Context) (*mongo.ChangeStream, error) {
	stream, err := r.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("failed to watch price feeds: %w", err)
	}
	return stream, nil
}
