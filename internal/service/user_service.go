package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/divide-it/backend/internal/apperrors"
	"github.com/divide-it/backend/internal/auth"
	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/storage"
)

// UserService handles registration, login and profiles.
type UserService struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewUserService creates a new UserService.
func NewUserService(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates an account and returns the user with a session token.
// Profile setup (the avatar slot) happens here as an explicit part of
// registration, not as a side effect hooked onto user creation.
func (s *UserService) Register(ctx context.Context, email, firstName, lastName, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperrors.Invalid("email and password are required")
	}

	user, err := s.authenticator.Register(ctx, email, firstName, lastName, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, "", apperrors.Invalid("user already exists")
		case errors.Is(err, auth.ErrWeakPassword):
			return nil, "", apperrors.Invalid("%v", err)
		default:
			return nil, "", apperrors.Internal("registration failed", err)
		}
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", apperrors.Internal("failed to generate token", err)
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperrors.Invalid("email and password are required")
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email)
		return nil, "", apperrors.Invalid("invalid credentials")
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", apperrors.Internal("failed to generate token", err)
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}

// GetProfile retrieves a user by ID.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found: %s", userID)
	}
	return user, nil
}

// ProfileUpdate carries the optional profile fields; nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	AvatarURL *string
}

// UpdateProfile applies a partial update to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found: %s", userID)
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Email != nil && *update.Email != "" {
		user.Email = *update.Email
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to update user", err)
	}

	slog.Info("Profile updated", "user_id", userID)
	return user, nil
}
