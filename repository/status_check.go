package repository

import (
	"context"
	"time"
)

// StatusCheck is one client health ping, kept as an audit record.
type StatusCheck struct {
	ID         string    `bson:"id" json:"id"`
	ClientName string    `bson:"client_name" json:"client_name"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

type StatusCheckRepo interface {
	InsertOne(ctx context.Context, check *StatusCheck) error
	List(ctx context.Context, limit int64) ([]StatusCheck, error)
}
