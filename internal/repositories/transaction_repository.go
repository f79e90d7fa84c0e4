package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AinaRoxane/Wallet/internal/models"
)

// TransactionRepository is write-only on purpose: pending intents are
// read and settled by the external back office, never by this service.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
}

type transactionRepository struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) TransactionRepository {
	return &transactionRepository{collection: db.Collection("transactions")}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	result, err := r.collection.InsertOne(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	tx.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}
