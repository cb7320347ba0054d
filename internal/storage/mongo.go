package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drawproof/drawproof/internal/types"
)

// MongoHistory archives verification runs in a MongoDB collection.
type MongoHistory struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoHistory connects to MongoDB and pings it before returning.
func NewMongoHistory(uri, database, collection string, logger *slog.Logger) (*MongoHistory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoHistory{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_history"),
	}, nil
}

func (h *MongoHistory) Name() string { return "mongodb" }

func (h *MongoHistory) Store(ctx context.Context, report *types.Report) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := h.collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("mongodb insert: %w", err)
	}
	h.logger.Debug("run archived", "code", report.Code)
	return nil
}

func (h *MongoHistory) Recent(ctx context.Context, limit int) ([]types.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "fetched_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := h.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find: %w", err)
	}
	defer cur.Close(ctx)

	var reports []types.Report
	if err := cur.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("mongodb decode: %w", err)
	}
	return reports, nil
}

func (h *MongoHistory) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.client.Disconnect(ctx)
}
