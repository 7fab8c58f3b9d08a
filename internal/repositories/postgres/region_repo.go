package postgres

import (
	"context"

	"github.com/maplepath/api/internal/models"
	"gorm.io/gorm"
)

type RegionRepository interface {
	Create(ctx context.Context, r *models.SettleRegion) error
	List(ctx context.Context, offset, limit int) ([]models.SettleRegion, error)
	GetByID(ctx context.Context, id int64) (*models.SettleRegion, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, r *models.SettleRegion) error
	Delete(ctx context.Context, id int64) error
}

type regionRepo struct {
	db *gorm.DB
}

func NewRegionRepo(db *gorm.DB) RegionRepository {
	return &regionRepo{db: db}
}

func (r *regionRepo) Create(ctx context.Context, reg *models.SettleRegion) error {
	return mapErr(r.db.WithContext(ctx).Create(reg).Error)
}

func (r *regionRepo) List(ctx context.Context, offset, limit int) ([]models.SettleRegion, error) {
	var rows []models.SettleRegion
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, mapErr(err)
}

func (r *regionRepo) GetByID(ctx context.Context, id int64) (*models.SettleRegion, error) {
	var reg models.SettleRegion
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&reg).Error; err != nil {
		return nil, mapErr(err)
	}
	return &reg, nil
}

func (r *regionRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SettleRegion{}).
		Where("region_name = ?", name).
		Count(&count).Error
	return count > 0, mapErr(err)
}

func (r *regionRepo) Save(ctx context.Context, reg *models.SettleRegion) error {
	return mapErr(r.db.WithContext(ctx).Save(reg).Error)
}

// Delete cascades to the region's purposes through the FK.
func (r *regionRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SettleRegion{})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound)
	}
	return nil
}
