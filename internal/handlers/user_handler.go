package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/linguaflow/backend/internal/middleware"
	"github.com/linguaflow/backend/internal/models"
)

// UserService defines methods for user business logic
type UserService interface {
	// GetOrCreate returns the user for an identity-provider subject, provisioning on first login
	GetOrCreate(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	// GetByAuth0ID retrieves the user mapped to an identity-provider subject
	GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error)
	// Update applies a partial profile update
	Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error)
	// Delete removes a user
	Delete(ctx context.Context, id string) error
	// List retrieves users matching the filter with pagination
	List(ctx context.Context, filter models.UserFilter, page, count int) ([]models.User, error)
}

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all user handler routes
func (h *UserHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/me", h.ProvisionMe)
		r.Get("/me", h.GetMe)
		r.Patch("/me", h.UpdateMe)
		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Get("/", h.ListUsers)
			r.Delete("/{id}", h.DeleteUser)
		})
	})
}

// ProvisionMe handles POST /users/me
// @Summary Provision the authenticated user
// @Description Create the user record for the token's subject on first login, or return the existing one
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest false "Optional profile fields"
// @Success 200 {object} models.User "Existing or newly provisioned user"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Email already in use"
// @Router /users/me [post]
func (h *UserHandler) ProvisionMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateUserRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	// The token is authoritative for identity; the body may only add profile fields
	req.Auth0ID = claims.Subject
	if req.Email == "" {
		req.Email = claims.Email
	}
	req.Role = ""

	user, err := h.userService.GetOrCreate(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to provision user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// GetMe handles GET /users/me
// @Summary Get the authenticated user
// @Description Get the user record mapped to the token's subject
// @Tags users
// @Produce json
// @Success 200 {object} models.User "User"
// @Failure 404 {object} map[string]string "User not provisioned"
// @Router /users/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.userService.GetByAuth0ID(r.Context(), claims.Subject)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// UpdateMe handles PATCH /users/me
// @Summary Update the authenticated user's profile
// @Description Partial update of email and display name
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UpdateUserRequest true "Profile update request"
// @Success 200 {object} models.User "Updated user"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Email already in use"
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.userService.GetByAuth0ID(r.Context(), claims.Subject)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Role changes are an admin concern, not a profile edit
	req.Role = ""

	updated, err := h.userService.Update(r.Context(), user.ID, &req)
	if err != nil {
		h.Logger.Error("failed to update user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, updated)
}

// ListUsers handles GET /users
// @Summary List users
// @Description Get paginated list of users with optional role filter (admin only)
// @Tags users
// @Produce json
// @Param role query string false "Role filter (user, admin)"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.User "List of users"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Router /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var filter models.UserFilter
	if roleStr := r.URL.Query().Get("role"); roleStr != "" {
		role := models.Role(roleStr)
		filter.Role = &role
	}

	page, count := parsePagination(r)

	users, err := h.userService.List(r.Context(), filter, page, count)
	if err != nil {
		h.Logger.Error("failed to list users", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// DeleteUser handles DELETE /users/{id}
// @Summary Delete a user
// @Description Delete a user without progress records (admin only)
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 409 {object} map[string]string "User has progress records"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.Delete(r.Context(), id); err != nil {
		h.Logger.Error("failed to delete user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
