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

// ProgressService defines methods for user progress business logic
type ProgressService interface {
	// Create creates a progress record for the user on a lesson
	Create(ctx context.Context, userID string, req *models.CreateUserProgressRequest) (*models.UserProgress, error)
	// GetByID retrieves a progress record owned by the user
	GetByID(ctx context.Context, userID, id string) (*models.UserProgress, error)
	// Update changes the completion state of a progress record
	Update(ctx context.Context, userID, id string, req *models.UpdateUserProgressRequest) (*models.UserProgress, error)
	// Delete removes a progress record owned by the user
	Delete(ctx context.Context, userID, id string) error
	// List retrieves the user's progress records matching the filter
	List(ctx context.Context, userID string, filter models.UserProgressFilter, page, count int) ([]models.UserProgress, error)
}

// ProgressHandler handles HTTP requests for user progress operations.
// Every route is scoped to the authenticated user; records belonging to
// other users are never visible.
type ProgressHandler struct {
	BaseHandler
	progressService ProgressService
	userService     UserService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService ProgressService, userService UserService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		userService:     userService,
		BaseHandler:     BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Route("/progress", func(r chi.Router) {
		r.Post("/", h.CreateProgress)
		r.Get("/", h.ListProgress)
		r.Get("/{id}", h.GetProgress)
		r.Patch("/{id}", h.UpdateProgress)
		r.Delete("/{id}", h.DeleteProgress)
	})
}

// currentUserID resolves the token's subject to the stored user id.
// A token for an unprovisioned user yields a not-found response.
func (h *ProgressHandler) currentUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}

	user, err := h.userService.GetByAuth0ID(r.Context(), claims.Subject)
	if err != nil {
		h.RespondServiceError(w, err)
		return "", false
	}
	return user.ID, true
}

// CreateProgress handles POST /progress
// @Summary Record lesson progress
// @Description Create a progress record for the authenticated user on a lesson
// @Tags progress
// @Accept json
// @Produce json
// @Param request body models.CreateUserProgressRequest true "Progress creation request"
// @Success 201 {object} models.UserProgress "Created progress record"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Progress already recorded for this lesson"
// @Failure 422 {object} map[string]string "Referenced lesson does not exist"
// @Router /progress [post]
func (h *ProgressHandler) CreateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}

	var req models.CreateUserProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.progressService.Create(r.Context(), userID, &req)
	if err != nil {
		h.Logger.Error("failed to create progress", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, progress)
}

// ListProgress handles GET /progress
// @Summary List progress records
// @Description Get paginated list of the authenticated user's progress records
// @Tags progress
// @Produce json
// @Param lessonId query string false "Lesson ID filter"
// @Param completed query bool false "Completion filter"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.UserProgress "List of progress records"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress [get]
func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}

	var filter models.UserProgressFilter
	if lessonID := r.URL.Query().Get("lessonId"); lessonID != "" {
		filter.LessonID = &lessonID
	}
	if completedStr := r.URL.Query().Get("completed"); completedStr != "" {
		completed := completedStr == "true"
		filter.Completed = &completed
	}

	page, count := parsePagination(r)

	records, err := h.progressService.List(r.Context(), userID, filter, page, count)
	if err != nil {
		h.Logger.Error("failed to list progress", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, records)
}

// GetProgress handles GET /progress/{id}
// @Summary Get a progress record
// @Description Get a single progress record owned by the authenticated user
// @Tags progress
// @Produce json
// @Param id path string true "Progress record ID"
// @Success 200 {object} models.UserProgress "Progress record"
// @Failure 404 {object} map[string]string "Progress record not found"
// @Router /progress/{id} [get]
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	progress, err := h.progressService.GetByID(r.Context(), userID, id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// UpdateProgress handles PATCH /progress/{id}
// @Summary Update a progress record
// @Description Change the completion state of a progress record; completing stamps completedAt, uncompleting clears it
// @Tags progress
// @Accept json
// @Produce json
// @Param id path string true "Progress record ID"
// @Param request body models.UpdateUserProgressRequest true "Progress update request"
// @Success 200 {object} models.UserProgress "Updated progress record"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Progress record not found"
// @Router /progress/{id} [patch]
func (h *ProgressHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req models.UpdateUserProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.progressService.Update(r.Context(), userID, id, &req)
	if err != nil {
		h.Logger.Error("failed to update progress", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// DeleteProgress handles DELETE /progress/{id}
// @Summary Delete a progress record
// @Description Delete a progress record owned by the authenticated user
// @Tags progress
// @Produce json
// @Param id path string true "Progress record ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Progress record not found"
// @Router /progress/{id} [delete]
func (h *ProgressHandler) DeleteProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.progressService.Delete(r.Context(), userID, id); err != nil {
		h.Logger.Error("failed to delete progress", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
