package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/maplepath/api/internal/models"
	"github.com/maplepath/api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestTraceRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert sets expiry", func(mt *mtest.T) {
		repo := NewTraceRepo(mt.DB, "generation_traces", time.Hour)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		tr := &models.GenerationTrace{HistoryID: 11, UserID: 7, Source: "fallback", Prompt: "p"}
		require.NoError(mt, repo.Insert(context.Background(), tr))
		assert.False(mt, tr.CreatedAt.IsZero())
		assert.Equal(mt, time.Hour, tr.ExpiresAt.Sub(tr.CreatedAt))
	})

	mt.Run("get by history id", func(mt *mtest.T) {
		repo := NewTraceRepo(mt.DB, "generation_traces", 0)
		ns := mt.DB.Name() + ".generation_traces"
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "history_id", Value: int64(11)},
			{Key: "source", Value: "model"},
			{Key: "raw_text", Value: `{"ats_score": 88}`},
		}))

		tr, err := repo.GetByHistoryID(context.Background(), 11)
		require.NoError(mt, err)
		assert.Equal(mt, "model", tr.Source)
		assert.Equal(mt, `{"ats_score": 88}`, tr.RawText)
	})

	mt.Run("missing trace", func(mt *mtest.T) {
		repo := NewTraceRepo(mt.DB, "generation_traces", 0)
		ns := mt.DB.Name() + ".generation_traces"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByHistoryID(context.Background(), 12)
		assert.ErrorIs(mt, err, utils.ErrNotFound)
	})
}
