package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/linguaflow/backend/internal/apperrors"
	"github.com/linguaflow/backend/internal/models"
)

// UserRepository defines methods for user data access
type UserRepository interface {
	// Create inserts a new user and fills in its generated id and timestamps
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByAuth0ID retrieves a user by identity-provider subject id
	GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error)
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update applies a partial update to a user
	Update(ctx context.Context, id string, req *models.UpdateUserRequest) error
	// Delete removes a user by id
	Delete(ctx context.Context, id string) error
	// List retrieves users matching the filter with pagination
	List(ctx context.Context, filter models.UserFilter, page, count int) ([]models.User, error)
}

type userService struct {
	userRepo     UserRepository
	progressRepo UserProgressRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, progressRepo UserProgressRepository) *userService {
	return &userService{
		userRepo:     userRepo,
		progressRepo: progressRepo,
	}
}

// GetOrCreate returns the user mapped to the given identity-provider subject,
// provisioning it on first login
func (s *userService) GetOrCreate(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Auth0ID == "" {
		return nil, apperrors.Validation("user", "auth0Id", "must not be empty")
	}

	user, err := s.userRepo.GetByAuth0ID(ctx, req.Auth0ID)
	if err == nil {
		return user, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// First login: provision the user
	if !strings.Contains(req.Email, "@") {
		return nil, apperrors.Validation("user", "email", "must be a valid email address")
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, apperrors.Validation("user", "role", "unknown role")
	}

	user = &models.User{
		Auth0ID: req.Auth0ID,
		Email:   req.Email,
		Name:    req.Name,
		Role:    role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByAuth0ID retrieves the user mapped to an identity-provider subject
func (s *userService) GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	return s.userRepo.GetByAuth0ID(ctx, auth0ID)
}

// GetByID retrieves a user by id
func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Update applies a partial profile update and returns the updated user
func (s *userService) Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return nil, apperrors.Validation("user", "email", "must be a valid email address")
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		return nil, apperrors.Validation("user", "role", "unknown role")
	}

	if err := s.userRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, id)
}

// Delete removes a user. Users with progress records cannot be deleted.
func (s *userService) Delete(ctx context.Context, id string) error {
	hasProgress, err := s.progressRepo.ExistsByUserID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user progress: %w", err)
	}
	if hasProgress {
		return apperrors.DependencyExists("user", "userProgress")
	}

	return s.userRepo.Delete(ctx, id)
}

// List retrieves users matching the filter with pagination
func (s *userService) List(ctx context.Context, filter models.UserFilter, page, count int) ([]models.User, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	return s.userRepo.List(ctx, filter, page, count)
}
