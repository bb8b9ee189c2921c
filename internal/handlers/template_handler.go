package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/linguaflow/backend/internal/models"
)

// TemplateService defines methods for template business logic
type TemplateService interface {
	// Create creates a new template
	Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.Template, error)
	// GetByID retrieves a template by id
	GetByID(ctx context.Context, id string) (*models.Template, error)
	// Update applies a partial update to a template
	Update(ctx context.Context, id string, req *models.UpdateTemplateRequest) (*models.Template, error)
	// Delete removes a template
	Delete(ctx context.Context, id string) error
	// List retrieves templates matching the filter with pagination
	List(ctx context.Context, filter models.TemplateFilter, page, count int) ([]models.Template, error)
}

// TemplateHandler handles HTTP requests for template operations
type TemplateHandler struct {
	BaseHandler
	templateService TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateService TemplateService, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		BaseHandler:     BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all template handler routes. Reads are available
// to any authenticated caller; mutations require the admin role.
func (h *TemplateHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/templates", func(r chi.Router) {
		r.Get("/", h.ListTemplates)
		r.Get("/{id}", h.GetTemplate)
		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Post("/", h.CreateTemplate)
			r.Patch("/{id}", h.UpdateTemplate)
			r.Delete("/{id}", h.DeleteTemplate)
		})
	})
}

// ListTemplates handles GET /templates
// @Summary List templates
// @Description Get paginated list of templates with optional type and active filters
// @Tags templates
// @Produce json
// @Param type query string false "Lesson type (vocabulary, grammar, reading, listening)"
// @Param isActive query bool false "Active filter"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.Template "List of templates"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	var filter models.TemplateFilter
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		lessonType := models.LessonType(typeStr)
		filter.Type = &lessonType
	}
	if activeStr := r.URL.Query().Get("isActive"); activeStr != "" {
		isActive := activeStr == "true"
		filter.IsActive = &isActive
	}

	page, count := parsePagination(r)

	templates, err := h.templateService.List(r.Context(), filter, page, count)
	if err != nil {
		h.Logger.Error("failed to list templates", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, templates)
}

// GetTemplate handles GET /templates/{id}
// @Summary Get a template
// @Description Get a single template by ID
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} models.Template "Template"
// @Failure 404 {object} map[string]string "Template not found"
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	template, err := h.templateService.GetByID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, template)
}

// CreateTemplate handles POST /templates
// @Summary Create a template
// @Description Create a new lesson template (admin only)
// @Tags templates
// @Accept json
// @Produce json
// @Param request body models.CreateTemplateRequest true "Template creation request"
// @Success 201 {object} models.Template "Created template"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	template, err := h.templateService.Create(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to create template", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, template)
}

// UpdateTemplate handles PATCH /templates/{id}
// @Summary Update a template
// @Description Partial update of a template; deactivating retires it without affecting existing lessons (admin only)
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body models.UpdateTemplateRequest true "Template update request"
// @Success 200 {object} models.Template "Updated template"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Template not found"
// @Router /templates/{id} [patch]
func (h *TemplateHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	template, err := h.templateService.Update(r.Context(), id, &req)
	if err != nil {
		h.Logger.Error("failed to update template", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, template)
}

// DeleteTemplate handles DELETE /templates/{id}
// @Summary Delete a template
// @Description Delete a template no lesson references (admin only)
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Template not found"
// @Failure 409 {object} map[string]string "Template is referenced by lessons"
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.templateService.Delete(r.Context(), id); err != nil {
		h.Logger.Error("failed to delete template", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
