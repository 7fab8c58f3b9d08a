package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/maplepath/api/internal/models"
	"github.com/maplepath/api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DefaultTraceTTL = 30 * 24 * time.Hour

type TraceRepository interface {
	Insert(ctx context.Context, t *models.GenerationTrace) error
	GetByHistoryID(ctx context.Context, historyID int64) (*models.GenerationTrace, error)
}

type traceRepo struct {
	col *mongo.Collection
	ttl time.Duration
}

func NewTraceRepo(db *mongo.Database, collection string, ttl time.Duration) TraceRepository {
	if ttl <= 0 {
		ttl = DefaultTraceTTL
	}
	return &traceRepo{col: db.Collection(collection), ttl: ttl}
}

func (r *traceRepo) Insert(ctx context.Context, t *models.GenerationTrace) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.ExpiresAt.IsZero() {
		t.ExpiresAt = t.CreatedAt.Add(r.ttl)
	}
	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *traceRepo) GetByHistoryID(ctx context.Context, historyID int64) (*models.GenerationTrace, error) {
	var t models.GenerationTrace
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := r.col.FindOne(ctx, bson.M{"history_id": historyID}, opts).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
