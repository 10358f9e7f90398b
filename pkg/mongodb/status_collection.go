package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mentallyspammed1/neonsearch/repository"
)

type StatusClient struct {
	col *mongo.Collection
}

func NewStatusCollection(db *mongo.Database) *StatusClient {
	col := db.Collection("status_checks")
	return &StatusClient{col: col}
}

func (c *StatusClient) InsertOne(ctx context.Context, check *repository.StatusCheck) error {
	if check.Timestamp.IsZero() {
		check.Timestamp = time.Now().UTC()
	}
	_, err := c.col.InsertOne(ctx, check)
	if err != nil {
		return fmt.Errorf("statuscol: %w", err)
	}
	return nil
}

func (c *StatusClient) List(ctx context.Context, limit int64) ([]repository.StatusCheck, error) {
	opts := options.Find().
		SetLimit(limit).
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cur, err := c.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("statuscol: %w", err)
	}
	defer cur.Close(ctx)

	var checks []repository.StatusCheck
	if err := cur.All(ctx, &checks); err != nil {
		return nil, fmt.Errorf("statuscol: %w", err)
	}
	return checks, nil
}
