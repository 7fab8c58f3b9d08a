package postgres

import (
	"context"

	"github.com/maplepath/api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IndustryRepository interface {
	ListActive(ctx context.Context) ([]models.Industry, error)
	GetByID(ctx context.Context, id int64) (*models.Industry, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, in *models.Industry) error
	// UpsertByName inserts or refreshes reference data keyed by name.
	UpsertByName(ctx context.Context, in *models.Industry) error
}

type industryRepo struct {
	db *gorm.DB
}

func NewIndustryRepo(db *gorm.DB) IndustryRepository {
	return &industryRepo{db: db}
}

func (r *industryRepo) ListActive(ctx context.Context) ([]models.Industry, error) {
	var rows []models.Industry
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&rows).Error
	return rows, mapErr(err)
}

func (r *industryRepo) GetByID(ctx context.Context, id int64) (*models.Industry, error) {
	var in models.Industry
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&in).Error; err != nil {
		return nil, mapErr(err)
	}
	return &in, nil
}

func (r *industryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Industry{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, mapErr(err)
}

func (r *industryRepo) Create(ctx context.Context, in *models.Industry) error {
	return mapErr(r.db.WithContext(ctx).Create(in).Error)
}

func (r *industryRepo) UpsertByName(ctx context.Context, in *models.Industry) error {
	return mapErr(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"name_fr", "description", "tips", "keywords", "updated_at"}),
		}).
		Create(in).Error)
}
