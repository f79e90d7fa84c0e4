package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AinaRoxane/Wallet/internal/config"
)

type Database struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewConnection(cfg config.DatabaseConfig) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectionTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI)
	clientOptions.SetMaxPoolSize(cfg.MaxPoolSize)
	clientOptions.SetMinPoolSize(cfg.MinPoolSize)
	clientOptions.SetMaxConnIdleTime(30 * time.Second)
	clientOptions.SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := &Database{
		Client:   client,
		Database: client.Database(cfg.Database),
	}

	if err := db.CreateIndexes(); err != nil {
		logrus.WithError(err).Warn("Failed to create indexes")
	}

	logrus.WithField("database", cfg.Database).Info("Connected to MongoDB")
	return db, nil
}

func (d *Database) CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique_idx"),
		},
		{
			Keys:    bson.D{{Key: "walletId", Value: 1}},
			Options: options.Index().SetName("wallet_id_idx"),
		},
	}
	if _, err := d.Database.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	feeds := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "symbol", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("symbol_unique_idx"),
		},
	}
	if _, err := d.Database.Collection("cours").Indexes().CreateMany(ctx, feeds); err != nil {
		return fmt.Errorf("failed to create cours indexes: %w", err)
	}

	transactions := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "walletId", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().SetName("wallet_date_idx"),
		},
	}
	if _, err := d.Database.Collection("transactions").Indexes().CreateMany(ctx, transactions); err != nil {
		return fmt.Errorf("failed to create transactions indexes: %w", err)
	}

	histories := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "made_at", Value: -1},
			},
			Options: options.Index().SetName("email_made_at_idx"),
		},
	}
	if _, err := d.Database.Collection("historiques").Indexes().CreateMany(ctx, histories); err != nil {
		return fmt.Errorf("failed to create historiques indexes: %w", err)
	}

	notifications := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().SetName("email_date_idx"),
		},
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "wasOpened", Value: 1},
			},
			Options: options.Index().SetName("email_opened_idx"),
		},
	}
	if _, err := d.Database.Collection("notifications").Indexes().CreateMany(ctx, notifications); err != nil {
		return fmt.Errorf("failed to create notifications indexes: %w", err)
	}

	snapshots := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "taken_at", Value: -1},
			},
			Options: options.Index().SetName("user_taken_at_idx"),
		},
	}
	if _, err := d.Database.Collection("valuation_snapshots").Indexes().CreateMany(ctx, snapshots); err != nil {
		return fmt.Errorf("failed to create valuation_snapshots indexes: %w", err)
	}

	logrus.Debug("MongoDB indexes created")
	return nil
}

func (d *Database) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := d.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	logrus.Info("Disconnected from MongoDB")
	return nil
}

func (d *Database) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, nil)
}
