package services

import (
	"context"
	"errors"
	"strings"

	"github.com/maplepath/api/internal/models"
	pgrepo "github.com/maplepath/api/internal/repositories/postgres"
	"github.com/maplepath/api/internal/utils"
)

type ProfileUpdate struct {
	FullName          *string `json:"full_name"`
	PhoneNumber       *string `json:"phone_number"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

type UserService interface {
	Me(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, in ProfileUpdate) (*models.User, error)
	PublicProfile(ctx context.Context, userID int64) (*models.PublicProfile, error)
}

type userService struct {
	users pgrepo.UserRepository
}

func NewUserService(users pgrepo.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.get(ctx, "UserService.Me", userID)
}

func (s *userService) get(ctx context.Context, op string, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, in ProfileUpdate) (*models.User, error) {
	const op = "UserService.UpdateProfile"

	fields := map[string]any{}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "full_name cannot be empty", nil)
		}
		fields["full_name"] = name
	}
	if in.PhoneNumber != nil {
		fields["phone_number"] = *in.PhoneNumber
	}
	if in.ProfilePictureURL != nil {
		fields["profile_picture_url"] = *in.ProfilePictureURL
	}

	if err := s.users.UpdateProfile(ctx, userID, fields); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update profile", err)
	}
	return s.get(ctx, op, userID)
}

func (s *userService) PublicProfile(ctx context.Context, userID int64) (*models.PublicProfile, error) {
	u, err := s.get(ctx, "UserService.PublicProfile", userID)
	if err != nil {
		return nil, err
	}
	p := u.Public()
	return &p, nil
}
