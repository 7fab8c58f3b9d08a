package postgres

import (
	"context"
	"time"

	"github.com/maplepath/api/internal/models"
	"gorm.io/gorm"
)

// CVRepository scopes every read and mutation by owner. A row owned by
// someone else is reported as utils.ErrNotFound, same as a missing row.
type CVRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.UserCV, error)
	GetOwned(ctx context.Context, id, userID int64) (*models.UserCV, error)
	DeleteOwned(ctx context.Context, id, userID int64) error
	ToggleFavorite(ctx context.Context, id, userID int64) (*models.UserCV, error)
	UpdateOwned(ctx context.Context, id, userID int64, fields map[string]any) (*models.UserCV, error)
	SetPDFURL(ctx context.Context, id, userID int64, url string) error
}

type cvRepo struct {
	db *gorm.DB
}

func NewCVRepo(db *gorm.DB) CVRepository {
	return &cvRepo{db: db}
}

func (r *cvRepo) ListByUser(ctx context.Context, userID int64) ([]models.UserCV, error) {
	var rows []models.UserCV
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, mapErr(err)
}

func (r *cvRepo) GetOwned(ctx context.Context, id, userID int64) (*models.UserCV, error) {
	var cv models.UserCV
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&cv).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &cv, nil
}

func (r *cvRepo) DeleteOwned(ctx context.Context, id, userID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.UserCV{})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound)
	}
	return nil
}

// ToggleFavorite flips the flag in one statement. updated_at is left alone so
// the rendered document of an otherwise unchanged CV stays identical.
func (r *cvRepo) ToggleFavorite(ctx context.Context, id, userID int64) (*models.UserCV, error) {
	res := r.db.WithContext(ctx).
		Model(&models.UserCV{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("is_favorite", gorm.Expr("NOT is_favorite"))
	if res.Error != nil {
		return nil, mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, mapErr(gorm.ErrRecordNotFound)
	}
	return r.GetOwned(ctx, id, userID)
}

func (r *cvRepo) UpdateOwned(ctx context.Context, id, userID int64, fields map[string]any) (*models.UserCV, error) {
	if len(fields) > 0 {
		upd := make(map[string]any, len(fields)+1)
		for k, v := range fields {
			upd[k] = v
		}
		upd["updated_at"] = time.Now().UTC()

		res := r.db.WithContext(ctx).
			Model(&models.UserCV{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(upd)
		if res.Error != nil {
			return nil, mapErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, mapErr(gorm.ErrRecordNotFound)
		}
	}
	return r.GetOwned(ctx, id, userID)
}

func (r *cvRepo) SetPDFURL(ctx context.Context, id, userID int64, url string) error {
	res := r.db.WithContext(ctx).
		Model(&models.UserCV{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("pdf_url", url)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound)
	}
	return nil
}
