package postgres

import (
	"context"

	"github.com/maplepath/api/internal/models"
	"gorm.io/gorm"
)

type PurposeRepository interface {
	Create(ctx context.Context, p *models.SettlePurpose) error
	List(ctx context.Context, offset, limit int) ([]models.SettlePurpose, error)
	ListByRegion(ctx context.Context, regionID int64) ([]models.SettlePurpose, error)
	GetByID(ctx context.Context, id int64) (*models.SettlePurpose, error)
	Save(ctx context.Context, p *models.SettlePurpose) error
	Delete(ctx context.Context, id int64) error
}

type purposeRepo struct {
	db *gorm.DB
}

func NewPurposeRepo(db *gorm.DB) PurposeRepository {
	return &purposeRepo{db: db}
}

func (r *purposeRepo) Create(ctx context.Context, p *models.SettlePurpose) error {
	return mapErr(r.db.WithContext(ctx).Create(p).Error)
}

func (r *purposeRepo) List(ctx context.Context, offset, limit int) ([]models.SettlePurpose, error) {
	var rows []models.SettlePurpose
	err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, mapErr(err)
}

func (r *purposeRepo) ListByRegion(ctx context.Context, regionID int64) ([]models.SettlePurpose, error) {
	var rows []models.SettlePurpose
	err := r.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		Order("id ASC").
		Find(&rows).Error
	return rows, mapErr(err)
}

func (r *purposeRepo) GetByID(ctx context.Context, id int64) (*models.SettlePurpose, error) {
	var p models.SettlePurpose
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error; err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *purposeRepo) Save(ctx context.Context, p *models.SettlePurpose) error {
	return mapErr(r.db.WithContext(ctx).Save(p).Error)
}

func (r *purposeRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SettlePurpose{})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound)
	}
	return nil
}
