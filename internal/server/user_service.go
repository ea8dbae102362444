package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nikhilshetty5/superhireX/internal/config"
	"github.com/nikhilshetty5/superhireX/internal/db"
)

// AuthStore is the persistence surface the user service needs.
type AuthStore interface {
	CreateProfile(ctx context.Context, fullName, email, role, passwordHash string) (*db.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*db.Profile, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (*db.Profile, error)
	EnsureSeekerProfile(ctx context.Context, userID uuid.UUID) error
}

// UserService provides business logic for account registration and login
type UserService struct {
	db             AuthStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store AuthStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             store,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new account. Seekers also get a resume lifecycle row so
// the pipeline has a place to track state from the first upload.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*db.Profile, error) {
	existing, err := s.db.GetProfileByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile, err := s.db.CreateProfile(ctx, req.FullName, req.Email, req.Role, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if profile.Role == db.RoleSeeker {
		if err := s.db.EnsureSeekerProfile(ctx, profile.ID); err != nil {
			return nil, fmt.Errorf("failed to create seeker profile: %w", err)
		}
	}

	return profile, nil
}

// Login authenticates an account and returns it
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*db.Profile, error) {
	profile, err := s.db.GetProfileByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}

	// Unknown email and wrong password produce the same error.
	if profile == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, profile.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return profile, nil
}

// GetProfile retrieves an account by ID
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*db.Profile, error) {
	profile, err := s.db.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, &ErrNotFound{Resource: "profile"}
	}
	return profile, nil
}
