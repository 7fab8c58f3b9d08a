package postgres

import (
	"context"
	"errors"

	"github.com/maplepath/api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNotPending is returned when a history row has already left the pending state.
var ErrNotPending = errors.New("generation history row is not pending")

type HistoryRepository interface {
	CreatePending(ctx context.Context, h *models.CVGenerationHistory) error
	// Complete inserts cv and marks the history row completed in one transaction.
	Complete(ctx context.Context, historyID int64, cv *models.UserCV, content datatypes.JSON, tokensUsed *int) error
	MarkFailed(ctx context.Context, historyID int64, message string) error
	ListByCV(ctx context.Context, cvID, userID int64) ([]models.CVGenerationHistory, error)
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) CreatePending(ctx context.Context, h *models.CVGenerationHistory) error {
	h.Status = models.GenerationPending
	return mapErr(r.db.WithContext(ctx).Create(h).Error)
}

func (r *historyRepo) Complete(ctx context.Context, historyID int64, cv *models.UserCV, content datatypes.JSON, tokensUsed *int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cv).Error; err != nil {
			return mapErr(err)
		}

		upd := map[string]any{
			"status":            models.GenerationCompleted,
			"cv_id":             cv.ID,
			"generated_content": content,
		}
		if tokensUsed != nil {
			upd["tokens_used"] = *tokensUsed
		}
		res := tx.Model(&models.CVGenerationHistory{}).
			Where("id = ? AND status = ?", historyID, models.GenerationPending).
			Updates(upd)
		if res.Error != nil {
			return mapErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}
		return nil
	})
}

func (r *historyRepo) MarkFailed(ctx context.Context, historyID int64, message string) error {
	res := r.db.WithContext(ctx).
		Model(&models.CVGenerationHistory{}).
		Where("id = ? AND status = ?", historyID, models.GenerationPending).
		Updates(map[string]any{
			"status":        models.GenerationFailed,
			"error_message": message,
		})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

func (r *historyRepo) ListByCV(ctx context.Context, cvID, userID int64) ([]models.CVGenerationHistory, error) {
	var rows []models.CVGenerationHistory
	err := r.db.WithContext(ctx).
		Where("cv_id = ? AND user_id = ?", cvID, userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return rows, nil
}
