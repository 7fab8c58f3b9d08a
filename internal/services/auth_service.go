package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maplepath/api/internal/auth"
	"github.com/maplepath/api/internal/models"
	pgrepo "github.com/maplepath/api/internal/repositories/postgres"
	"github.com/maplepath/api/internal/utils"
)

type RegisterInput struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FullName    string  `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(u *models.User) (string, error)
	TTL() time.Duration
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	GoogleSignIn(ctx context.Context, idToken string) (*TokenResponse, error)
}

type authService struct {
	users    pgrepo.UserRepository
	tokens   TokenIssuer
	verifier auth.IdentityVerifier
}

// NewAuthService accepts a nil verifier; federated sign-in then reports
// UNAVAILABLE.
func NewAuthService(users pgrepo.UserRepository, tokens TokenIssuer, verifier auth.IdentityVerifier) AuthService {
	return &authService{users: users, tokens: tokens, verifier: verifier}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "AuthService.Register"

	email := normalizeEmail(in.Email)
	if validate.Var(email, "required,email") != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "a valid email is required", nil)
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "full_name is required", nil)
	}
	if in.Password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Password is required for registration", nil)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, utils.ErrWeakPassword) {
			return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		Email:          email,
		HashedPassword: &hash,
		FullName:       strings.TrimSpace(in.FullName),
		PhoneNumber:    in.PhoneNumber,
		Role:           models.RoleUser,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "User with this email already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	const op = "AuthService.Login"

	badCredentials := utils.E(utils.CodeUnauthorized, op, "Incorrect email or password", nil)

	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, badCredentials
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if u.HashedPassword == nil || !utils.CheckPassword(*u.HashedPassword, password) {
		return nil, badCredentials
	}
	if !u.IsActive {
		return nil, utils.E(utils.CodeForbidden, op, "account is disabled", nil)
	}
	return s.issue(op, u)
}

func (s *authService) GoogleSignIn(ctx context.Context, idToken string) (*TokenResponse, error) {
	const op = "AuthService.GoogleSignIn"

	if s.verifier == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "federated sign-in is not configured", nil)
	}
	if strings.TrimSpace(idToken) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "firebase_token is required", nil)
	}

	id, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "Invalid Firebase token", err)
	}
	email := normalizeEmail(id.Email)
	if email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Email not found in Firebase token", nil)
	}

	u, err := s.findOrCreateFederated(ctx, id, email)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to resolve user", err)
	}
	if !u.IsActive {
		return nil, utils.E(utils.CodeForbidden, op, "account is disabled", nil)
	}
	return s.issue(op, u)
}

// findOrCreateFederated looks the caller up by firebase uid, then by email
// (linking the account), and otherwise creates a verified user.
func (s *authService) findOrCreateFederated(ctx context.Context, id *auth.Identity, email string) (*models.User, error) {
	u, err := s.users.GetByFirebaseUID(ctx, id.UID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	u, err = s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.users.LinkFirebase(ctx, u.ID, id.UID); err != nil {
			return nil, err
		}
		uid := id.UID
		u.FirebaseUID = &uid
		u.IsVerified = true
		return u, nil
	case !errors.Is(err, utils.ErrNotFound):
		return nil, err
	}

	name := strings.TrimSpace(id.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	uid := id.UID
	u = &models.User{
		Email:       email,
		FullName:    name,
		FirebaseUID: &uid,
		Role:        models.RoleUser,
		IsActive:    true,
		IsVerified:  true,
	}
	if id.Picture != "" {
		pic := id.Picture
		u.ProfilePictureURL = &pic
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) issue(op string, u *models.User) (*TokenResponse, error) {
	tok, err := s.tokens.Issue(u)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return &TokenResponse{
		AccessToken: tok,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL() / time.Second),
	}, nil
}
