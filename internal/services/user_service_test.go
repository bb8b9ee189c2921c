package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguaflow/backend/internal/apperrors"
	"github.com/linguaflow/backend/internal/models"
)

func TestUserService_GetOrCreate(t *testing.T) {
	existing := &models.User{
		ID:      "user-1",
		Auth0ID: "auth0|abc",
		Email:   "existing@example.com",
		Role:    models.RoleUser,
	}

	tests := []struct {
		name          string
		req           *models.CreateUserRequest
		userRepo      *mockUserRepository
		expectedKind  apperrors.Kind
		expectCreated bool
		expectedRole  models.Role
	}{
		{
			name:     "existing user returned as is",
			req:      &models.CreateUserRequest{Auth0ID: "auth0|abc", Email: "ignored@example.com"},
			userRepo: &mockUserRepository{user: existing},
		},
		{
			name:          "first login provisions with default role",
			req:           &models.CreateUserRequest{Auth0ID: "auth0|new", Email: "new@example.com", Name: "New User"},
			userRepo:      &mockUserRepository{byAuth0Err: apperrors.NotFound("user")},
			expectCreated: true,
			expectedRole:  models.RoleUser,
		},
		{
			name:          "explicit role preserved",
			req:           &models.CreateUserRequest{Auth0ID: "auth0|new", Email: "new@example.com", Role: models.RoleAdmin},
			userRepo:      &mockUserRepository{byAuth0Err: apperrors.NotFound("user")},
			expectCreated: true,
			expectedRole:  models.RoleAdmin,
		},
		{
			name:         "missing auth0 id",
			req:          &models.CreateUserRequest{Email: "new@example.com"},
			userRepo:     &mockUserRepository{},
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "invalid email on first login",
			req:          &models.CreateUserRequest{Auth0ID: "auth0|new", Email: "not-an-email"},
			userRepo:     &mockUserRepository{byAuth0Err: apperrors.NotFound("user")},
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "unknown role",
			req:          &models.CreateUserRequest{Auth0ID: "auth0|new", Email: "new@example.com", Role: "superuser"},
			userRepo:     &mockUserRepository{byAuth0Err: apperrors.NotFound("user")},
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "email taken by another user",
			req:          &models.CreateUserRequest{Auth0ID: "auth0|new", Email: "taken@example.com"},
			userRepo:     &mockUserRepository{byAuth0Err: apperrors.NotFound("user"), createErr: apperrors.Conflict("user", "email")},
			expectedKind: apperrors.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.userRepo, &mockProgressRepository{})

			user, err := svc.GetOrCreate(context.Background(), tt.req)

			if tt.expectedKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				return
			}

			require.NoError(t, err)
			if tt.expectCreated {
				require.NotNil(t, tt.userRepo.created)
				assert.Equal(t, tt.req.Auth0ID, user.Auth0ID)
				assert.Equal(t, tt.expectedRole, user.Role)
				assert.NotEmpty(t, user.ID)
			} else {
				assert.Equal(t, existing, user)
				assert.Nil(t, tt.userRepo.created)
			}
		})
	}
}

func TestUserService_Update(t *testing.T) {
	tests := []struct {
		name         string
		req          *models.UpdateUserRequest
		userRepo     *mockUserRepository
		expectedKind apperrors.Kind
	}{
		{
			name:     "success",
			req:      &models.UpdateUserRequest{Email: "new@example.com"},
			userRepo: &mockUserRepository{user: &models.User{ID: "user-1", Email: "new@example.com"}},
		},
		{
			name:         "invalid email",
			req:          &models.UpdateUserRequest{Email: "nope"},
			userRepo:     &mockUserRepository{},
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "unknown role",
			req:          &models.UpdateUserRequest{Role: "root"},
			userRepo:     &mockUserRepository{},
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "user not found",
			req:          &models.UpdateUserRequest{Email: "new@example.com"},
			userRepo:     &mockUserRepository{updateErr: apperrors.NotFound("user")},
			expectedKind: apperrors.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.userRepo, &mockProgressRepository{})

			user, err := svc.Update(context.Background(), "user-1", tt.req)

			if tt.expectedKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, "new@example.com", user.Email)
			}
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		userRepo      *mockUserRepository
		progressRepo  *mockProgressRepository
		expectedKind  apperrors.Kind
		expectErr     bool
		wantDeletedID string
	}{
		{
			name:          "success",
			userRepo:      &mockUserRepository{},
			progressRepo:  &mockProgressRepository{},
			wantDeletedID: "user-1",
		},
		{
			name:         "blocked by progress records",
			userRepo:     &mockUserRepository{},
			progressRepo: &mockProgressRepository{userHasProgress: true},
			expectedKind: apperrors.KindDependencyExists,
		},
		{
			name:         "progress check fails",
			userRepo:     &mockUserRepository{},
			progressRepo: &mockProgressRepository{existsErr: errors.New("database error")},
			expectErr:    true,
		},
		{
			name:          "user not found",
			userRepo:      &mockUserRepository{deleteErr: apperrors.NotFound("user")},
			progressRepo:  &mockProgressRepository{},
			expectedKind:  apperrors.KindNotFound,
			wantDeletedID: "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.userRepo, tt.progressRepo)

			err := svc.Delete(context.Background(), "user-1")

			switch {
			case tt.expectedKind != "":
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
			case tt.expectErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
			}

			// The repository is reached only once the dependency check passes
			assert.Equal(t, tt.wantDeletedID, tt.userRepo.deletedID)
		})
	}
}

func TestUserService_List(t *testing.T) {
	userRepo := &mockUserRepository{users: []models.User{{ID: "user-1"}}}
	svc := NewUserService(userRepo, &mockProgressRepository{})

	// Out-of-range pagination falls back to defaults
	users, err := svc.List(context.Background(), models.UserFilter{}, 0, -5)

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, userRepo.lastPage)
	assert.Equal(t, 10, userRepo.lastCount)
}
