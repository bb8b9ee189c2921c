package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/linguaflow/backend/internal/models"
)

// LessonService defines methods for lesson business logic
type LessonService interface {
	// Create creates a new lesson
	Create(ctx context.Context, req *models.CreateLessonRequest) (*models.Lesson, error)
	// GetByID retrieves a lesson by id
	GetByID(ctx context.Context, id string) (*models.Lesson, error)
	// GetBySlug retrieves a lesson by slug
	GetBySlug(ctx context.Context, slug string) (*models.Lesson, error)
	// Update applies a partial update to a lesson
	Update(ctx context.Context, id string, req *models.UpdateLessonRequest) (*models.Lesson, error)
	// Delete removes a lesson
	Delete(ctx context.Context, id string) error
	// List retrieves lessons matching the filter with pagination
	List(ctx context.Context, filter models.LessonFilter, page, count int) ([]models.Lesson, error)
}

// LessonHandler handles HTTP requests for lesson operations
type LessonHandler struct {
	BaseHandler
	lessonService LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessonService LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
		BaseHandler:   BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes. Reads are available to
// any authenticated caller; mutations require the admin role.
func (h *LessonHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/lessons", func(r chi.Router) {
		r.Get("/", h.ListLessons)
		r.Get("/{id}", h.GetLesson)
		r.Get("/slug/{slug}", h.GetLessonBySlug)
		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Post("/", h.CreateLesson)
			r.Patch("/{id}", h.UpdateLesson)
			r.Delete("/{id}", h.DeleteLesson)
		})
	})
}

// ListLessons handles GET /lessons
// @Summary List lessons
// @Description Get paginated list of lessons ordered by level then position
// @Tags lessons
// @Produce json
// @Param level query string false "Proficiency level (A1..C2)"
// @Param templateId query string false "Template ID filter"
// @Param isPublished query bool false "Published filter"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.Lesson "List of lessons"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons [get]
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	var filter models.LessonFilter
	if levelStr := r.URL.Query().Get("level"); levelStr != "" {
		level := models.Level(levelStr)
		filter.Level = &level
	}
	if templateID := r.URL.Query().Get("templateId"); templateID != "" {
		filter.TemplateID = &templateID
	}
	if publishedStr := r.URL.Query().Get("isPublished"); publishedStr != "" {
		isPublished := publishedStr == "true"
		filter.IsPublished = &isPublished
	}

	page, count := parsePagination(r)

	lessons, err := h.lessonService.List(r.Context(), filter, page, count)
	if err != nil {
		h.Logger.Error("failed to list lessons", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lessons)
}

// GetLesson handles GET /lessons/{id}
// @Summary Get a lesson
// @Description Get a single lesson by ID
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} models.Lesson "Lesson"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /lessons/{id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lesson, err := h.lessonService.GetByID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// GetLessonBySlug handles GET /lessons/slug/{slug}
// @Summary Get a lesson by slug
// @Description Get a single lesson by its URL-safe slug
// @Tags lessons
// @Produce json
// @Param slug path string true "Lesson slug"
// @Success 200 {object} models.Lesson "Lesson"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /lessons/slug/{slug} [get]
func (h *LessonHandler) GetLessonBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	lesson, err := h.lessonService.GetBySlug(r.Context(), slug)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// CreateLesson handles POST /lessons
// @Summary Create a lesson
// @Description Create a new lesson at a free (level, order) position (admin only)
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body models.CreateLessonRequest true "Lesson creation request"
// @Success 201 {object} models.Lesson "Created lesson"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Slug or position already taken"
// @Failure 422 {object} map[string]string "Referenced template does not exist"
// @Router /lessons [post]
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lesson, err := h.lessonService.Create(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to create lesson", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, lesson)
}

// UpdateLesson handles PATCH /lessons/{id}
// @Summary Update a lesson
// @Description Partial update of a lesson; moving it to an occupied (level, order) position is rejected (admin only)
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param request body models.UpdateLessonRequest true "Lesson update request"
// @Success 200 {object} models.Lesson "Updated lesson"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 409 {object} map[string]string "Slug or position already taken"
// @Router /lessons/{id} [patch]
func (h *LessonHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lesson, err := h.lessonService.Update(r.Context(), id, &req)
	if err != nil {
		h.Logger.Error("failed to update lesson", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// DeleteLesson handles DELETE /lessons/{id}
// @Summary Delete a lesson
// @Description Delete a lesson no progress record references (admin only)
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 409 {object} map[string]string "Lesson has progress records"
// @Router /lessons/{id} [delete]
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.lessonService.Delete(r.Context(), id); err != nil {
		h.Logger.Error("failed to delete lesson", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
