package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maplepath/api/internal/cache"
	"github.com/maplepath/api/internal/models"
	pgrepo "github.com/maplepath/api/internal/repositories/postgres"
	"github.com/maplepath/api/internal/utils"
)

const (
	activeIndustriesKey = "industries:active"
	industryCacheTTL    = 10 * time.Minute
)

type IndustryInput struct {
	Name        string   `json:"name"`
	NameFR      *string  `json:"name_fr"`
	Description *string  `json:"description"`
	Tips        []string `json:"tips"`
	Keywords    []string `json:"keywords"`
}

type IndustryService interface {
	ListActive(ctx context.Context) ([]models.Industry, error)
	Get(ctx context.Context, id int64) (*models.Industry, error)
	Create(ctx context.Context, in IndustryInput) (*models.Industry, error)
}

type industryService struct {
	industries pgrepo.IndustryRepository
	cache      cache.Cache
}

// NewIndustryService works without a cache (nil c).
func NewIndustryService(industries pgrepo.IndustryRepository, c cache.Cache) IndustryService {
	return &industryService{industries: industries, cache: c}
}

func (s *industryService) ListActive(ctx context.Context) ([]models.Industry, error) {
	const op = "IndustryService.ListActive"

	rows, err := cache.Remember(ctx, s.cache, activeIndustriesKey, industryCacheTTL, s.industries.ListActive)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list industries", err)
	}
	if rows == nil {
		rows = []models.Industry{}
	}
	return rows, nil
}

func (s *industryService) Get(ctx context.Context, id int64) (*models.Industry, error) {
	const op = "IndustryService.Get"

	ind, err := s.industries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Industry not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load industry", err)
	}
	return ind, nil
}

func (s *industryService) Create(ctx context.Context, in IndustryInput) (*models.Industry, error) {
	const op = "IndustryService.Create"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}

	exists, err := s.industries.ExistsByName(ctx, name)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check industry name", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "Industry already exists", utils.ErrConflict)
	}

	ind := &models.Industry{
		Name:        name,
		NameFR:      in.NameFR,
		Description: in.Description,
		Tips:        cleanList(in.Tips),
		Keywords:    cleanList(in.Keywords),
		IsActive:    true,
	}
	if err := s.industries.Create(ctx, ind); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "Industry already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create industry", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, activeIndustriesKey)
	}
	return ind, nil
}
