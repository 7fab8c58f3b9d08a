package postgres

import (
	"context"

	"github.com/maplepath/api/internal/models"
	"gorm.io/gorm"
)

type UserPurposeRepository interface {
	Create(ctx context.Context, up *models.UserSettlePurpose) error
	ListByUser(ctx context.Context, userID int64) ([]models.UserSettlePurpose, error)
	GetByID(ctx context.Context, id int64) (*models.UserSettlePurpose, error)
	Exists(ctx context.Context, userID, purposeID int64) (bool, error)
	Save(ctx context.Context, up *models.UserSettlePurpose) error
	Delete(ctx context.Context, id int64) error
}

type userPurposeRepo struct {
	db *gorm.DB
}

func NewUserPurposeRepo(db *gorm.DB) UserPurposeRepository {
	return &userPurposeRepo{db: db}
}

func (r *userPurposeRepo) Create(ctx context.Context, up *models.UserSettlePurpose) error {
	return mapErr(r.db.WithContext(ctx).Create(up).Error)
}

func (r *userPurposeRepo) ListByUser(ctx context.Context, userID int64) ([]models.UserSettlePurpose, error) {
	var rows []models.UserSettlePurpose
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, mapErr(err)
}

func (r *userPurposeRepo) GetByID(ctx context.Context, id int64) (*models.UserSettlePurpose, error) {
	var up models.UserSettlePurpose
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&up).Error; err != nil {
		return nil, mapErr(err)
	}
	return &up, nil
}

func (r *userPurposeRepo) Exists(ctx context.Context, userID, purposeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserSettlePurpose{}).
		Where("user_id = ? AND settle_purpose_id = ?", userID, purposeID).
		Count(&count).Error
	return count > 0, mapErr(err)
}

func (r *userPurposeRepo) Save(ctx context.Context, up *models.UserSettlePurpose) error {
	return mapErr(r.db.WithContext(ctx).Save(up).Error)
}

func (r *userPurposeRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.UserSettlePurpose{})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound)
	}
	return nil
}
