package services

import (
	"context"
	"errors"
	"strings"

	"github.com/maplepath/api/internal/models"
	pgrepo "github.com/maplepath/api/internal/repositories/postgres"
	"github.com/maplepath/api/internal/utils"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

type RegionInput struct {
	RegionName  *string `json:"region_name"`
	Description *string `json:"description"`
}

type PurposeInput struct {
	RegionID    *int64  `json:"region_id"`
	PurposeName *string `json:"purpose_name"`
	Description *string `json:"description"`
}

type UserPurposeInput struct {
	SettlePurposeID int64                 `json:"settle_purpose_id"`
	Status          *models.PurposeStatus `json:"status"`
	Progression     *int                  `json:"progression"`
	Notes           *string               `json:"notes"`
}

type SettleService interface {
	CreateRegion(ctx context.Context, in RegionInput) (*models.SettleRegion, error)
	ListRegions(ctx context.Context, skip, limit int) ([]models.SettleRegion, error)
	GetRegion(ctx context.Context, id int64) (*models.SettleRegion, error)
	UpdateRegion(ctx context.Context, id int64, in RegionInput) (*models.SettleRegion, error)
	DeleteRegion(ctx context.Context, id int64) error

	CreatePurpose(ctx context.Context, in PurposeInput) (*models.SettlePurpose, error)
	ListPurposes(ctx context.Context, skip, limit int) ([]models.SettlePurpose, error)
	ListPurposesByRegion(ctx context.Context, regionID int64) ([]models.SettlePurpose, error)
	GetPurpose(ctx context.Context, id int64) (*models.SettlePurpose, error)
	UpdatePurpose(ctx context.Context, id int64, in PurposeInput) (*models.SettlePurpose, error)
	DeletePurpose(ctx context.Context, id int64) error

	CreateUserPurpose(ctx context.Context, userID int64, in UserPurposeInput) (*models.UserSettlePurpose, error)
	ListUserPurposes(ctx context.Context, userID int64) ([]models.UserSettlePurpose, error)
	GetUserPurpose(ctx context.Context, userID, id int64) (*models.UserSettlePurpose, error)
	UpdateUserPurpose(ctx context.Context, userID, id int64, in UserPurposeInput) (*models.UserSettlePurpose, error)
	DeleteUserPurpose(ctx context.Context, userID, id int64) error
}

type settleService struct {
	regions      pgrepo.RegionRepository
	purposes     pgrepo.PurposeRepository
	userPurposes pgrepo.UserPurposeRepository
}

func NewSettleService(regions pgrepo.RegionRepository, purposes pgrepo.PurposeRepository, userPurposes pgrepo.UserPurposeRepository) SettleService {
	return &settleService{regions: regions, purposes: purposes, userPurposes: userPurposes}
}

func page(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit
}

// lookupErr maps a repository miss onto NOT_FOUND with msg.
func lookupErr(op, msg string, err error) error {
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, msg, err)
	}
	return utils.E(utils.CodeInternal, op, "database error", err)
}

// ---- regions

func (s *settleService) CreateRegion(ctx context.Context, in RegionInput) (*models.SettleRegion, error) {
	const op = "SettleService.CreateRegion"

	if in.RegionName == nil || strings.TrimSpace(*in.RegionName) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "region_name is required", nil)
	}
	name := strings.TrimSpace(*in.RegionName)
	if err := s.ensureRegionNameFree(ctx, op, name); err != nil {
		return nil, err
	}

	r := &models.SettleRegion{RegionName: name, Description: in.Description}
	if err := s.regions.Create(ctx, r); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "Region with this name already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create region", err)
	}
	return r, nil
}

func (s *settleService) ensureRegionNameFree(ctx context.Context, op, name string) error {
	exists, err := s.regions.ExistsByName(ctx, name)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to check region name", err)
	}
	if exists {
		return utils.E(utils.CodeConflict, op, "Region with this name already exists", utils.ErrConflict)
	}
	return nil
}

func (s *settleService) ListRegions(ctx context.Context, skip, limit int) ([]models.SettleRegion, error) {
	const op = "SettleService.ListRegions"

	skip, limit = page(skip, limit)
	rows, err := s.regions.List(ctx, skip, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list regions", err)
	}
	return rows, nil
}

func (s *settleService) GetRegion(ctx context.Context, id int64) (*models.SettleRegion, error) {
	const op = "SettleService.GetRegion"

	r, err := s.regions.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(op, "Region not found", err)
	}
	return r, nil
}

func (s *settleService) UpdateRegion(ctx context.Context, id int64, in RegionInput) (*models.SettleRegion, error) {
	const op = "SettleService.UpdateRegion"

	r, err := s.regions.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(op, "Region not found", err)
	}

	if in.RegionName != nil {
		name := strings.TrimSpace(*in.RegionName)
		if name == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "region_name cannot be empty", nil)
		}
		if name != r.RegionName {
			if err := s.ensureRegionNameFree(ctx, op, name); err != nil {
				return nil, err
			}
		}
		r.RegionName = name
	}
	if in.Description != nil {
		r.Description = in.Description
	}

	if err := s.regions.Save(ctx, r); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "Region with this name already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update region", err)
	}
	return r, nil
}

func (s *settleService) DeleteRegion(ctx context.Context, id int64) error {
	const op = "SettleService.DeleteRegion"

	if err := s.regions.Delete(ctx, id); err != nil {
		return lookupErr(op, "Region not found", err)
	}
	return nil
}

// ---- purposes

func (s *settleService) CreatePurpose(ctx context.Context, in PurposeInput) (*models.SettlePurpose, error) {
	const op = "SettleService.CreatePurpose"

	if in.RegionID == nil || *in.RegionID <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "region_id is required", nil)
	}
	if in.PurposeName == nil || strings.TrimSpace(*in.PurposeName) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "purpose_name is required", nil)
	}
	if _, err := s.regions.GetByID(ctx, *in.RegionID); err != nil {
		return nil, lookupErr(op, "Region not found", err)
	}

	p := &models.SettlePurpose{
		RegionID:    *in.RegionID,
		PurposeName: strings.TrimSpace(*in.PurposeName),
		Description: in.Description,
	}
	if err := s.purposes.Create(ctx, p); err != nil {
		// region deleted between the check and the insert
		return nil, lookupErr(op, "Region not found", err)
	}
	return p, nil
}

func (s *settleService) ListPurposes(ctx context.Context, skip, limit int) ([]models.SettlePurpose, error) {
	const op = "SettleService.ListPurposes"

	skip, limit = page(skip, limit)
	rows, err := s.purposes.List(ctx, skip, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list purposes", err)
	}
	return rows, nil
}

func (s *settleService) ListPurposesByRegion(ctx context.Context, regionID int64) ([]models.SettlePurpose, error) {
	const op = "SettleService.ListPurposesByRegion"

	rows, err := s.purposes.ListByRegion(ctx, regionID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list purposes", err)
	}
	return rows, nil
}

func (s *settleService) GetPurpose(ctx context.Context, id int64) (*models.SettlePurpose, error) {
	const op = "SettleService.GetPurpose"

	p, err := s.purposes.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(op, "Purpose not found", err)
	}
	return p, nil
}

func (s *settleService) UpdatePurpose(ctx context.Context, id int64, in PurposeInput) (*models.SettlePurpose, error) {
	const op = "SettleService.UpdatePurpose"

	p, err := s.purposes.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(op, "Purpose not found", err)
	}

	if in.RegionID != nil && *in.RegionID != p.RegionID {
		if _, err := s.regions.GetByID(ctx, *in.RegionID); err != nil {
			return nil, lookupErr(op, "Region not found", err)
		}
		p.RegionID = *in.RegionID
	}
	if in.PurposeName != nil {
		name := strings.TrimSpace(*in.PurposeName)
		if name == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "purpose_name cannot be empty", nil)
		}
		p.PurposeName = name
	}
	if in.Description != nil {
		p.Description = in.Description
	}

	if err := s.purposes.Save(ctx, p); err != nil {
		return nil, lookupErr(op, "Region not found", err)
	}
	return p, nil
}

func (s *settleService) DeletePurpose(ctx context.Context, id int64) error {
	const op = "SettleService.DeletePurpose"

	if err := s.purposes.Delete(ctx, id); err != nil {
		return lookupErr(op, "Purpose not found", err)
	}
	return nil
}

// ---- user purposes

func validateProgress(op string, status *models.PurposeStatus, progression *int) error {
	if status != nil && !status.Valid() {
		return utils.E(utils.CodeInvalidArgument, op, "status must be one of pending, in_progress, completed", nil)
	}
	if progression != nil && (*progression < 0 || *progression > 100) {
		return utils.E(utils.CodeInvalidArgument, op, "Progression must be between 0 and 100", nil)
	}
	return nil
}

func (s *settleService) CreateUserPurpose(ctx context.Context, userID int64, in UserPurposeInput) (*models.UserSettlePurpose, error) {
	const op = "SettleService.CreateUserPurpose"

	if in.SettlePurposeID <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "settle_purpose_id is required", nil)
	}
	if err := validateProgress(op, in.Status, in.Progression); err != nil {
		return nil, err
	}
	if _, err := s.purposes.GetByID(ctx, in.SettlePurposeID); err != nil {
		return nil, lookupErr(op, "Settle purpose not found", err)
	}

	exists, err := s.userPurposes.Exists(ctx, userID, in.SettlePurposeID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check assignment", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "User already assigned to this purpose", utils.ErrConflict)
	}

	up := &models.UserSettlePurpose{
		UserID:          userID,
		SettlePurposeID: in.SettlePurposeID,
		Status:          models.PurposePending,
		Notes:           in.Notes,
	}
	if in.Status != nil {
		up.Status = *in.Status
	}
	if in.Progression != nil {
		up.Progression = *in.Progression
	}

	if err := s.userPurposes.Create(ctx, up); err != nil {
		switch {
		case errors.Is(err, utils.ErrConflict):
			return nil, utils.E(utils.CodeConflict, op, "User already assigned to this purpose", err)
		case errors.Is(err, utils.ErrNotFound):
			return nil, utils.E(utils.CodeNotFound, op, "Settle purpose not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to assign purpose", err)
	}
	return up, nil
}

func (s *settleService) ListUserPurposes(ctx context.Context, userID int64) ([]models.UserSettlePurpose, error) {
	const op = "SettleService.ListUserPurposes"

	rows, err := s.userPurposes.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list user purposes", err)
	}
	return rows, nil
}

// GetUserPurpose hides other users' rows behind NOT_FOUND.
func (s *settleService) GetUserPurpose(ctx context.Context, userID, id int64) (*models.UserSettlePurpose, error) {
	const op = "SettleService.GetUserPurpose"

	up, err := s.userPurposes.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(op, "User purpose not found", err)
	}
	if up.UserID != userID {
		return nil, utils.E(utils.CodeNotFound, op, "User purpose not found", utils.ErrNotFound)
	}
	return up, nil
}

// ownedUserPurpose distinguishes a missing row (NOT_FOUND) from someone
// else's row (FORBIDDEN) for mutations.
func (s *settleService) ownedUserPurpose(ctx context.Context, op, verb string, userID, id int64) (*models.UserSettlePurpose, error) {
	up, err := s.userPurposes.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(op, "User purpose not found", err)
	}
	if up.UserID != userID {
		return nil, utils.E(utils.CodeForbidden, op, "Not authorized to "+verb+" this purpose", nil)
	}
	return up, nil
}

func (s *settleService) UpdateUserPurpose(ctx context.Context, userID, id int64, in UserPurposeInput) (*models.UserSettlePurpose, error) {
	const op = "SettleService.UpdateUserPurpose"

	up, err := s.ownedUserPurpose(ctx, op, "update", userID, id)
	if err != nil {
		return nil, err
	}
	if err := validateProgress(op, in.Status, in.Progression); err != nil {
		return nil, err
	}

	if in.Status != nil {
		up.Status = *in.Status
	}
	if in.Progression != nil {
		up.Progression = *in.Progression
	}
	if in.Notes != nil {
		up.Notes = in.Notes
	}

	if err := s.userPurposes.Save(ctx, up); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update user purpose", err)
	}
	return up, nil
}

func (s *settleService) DeleteUserPurpose(ctx context.Context, userID, id int64) error {
	const op = "SettleService.DeleteUserPurpose"

	if _, err := s.ownedUserPurpose(ctx, op, "delete", userID, id); err != nil {
		return err
	}
	if err := s.userPurposes.Delete(ctx, id); err != nil {
		return lookupErr(op, "User purpose not found", err)
	}
	return nil
}
