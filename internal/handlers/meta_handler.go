package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/linguaflow/backend/internal/models"
)

// MetaHandler serves static reference data and the health check
type MetaHandler struct {
	BaseHandler
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(logger *zap.Logger) *MetaHandler {
	return &MetaHandler{
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers the reference data routes
func (h *MetaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/levels", h.ListLevels)
}

// ListLevels handles GET /levels
// @Summary List proficiency levels
// @Description Get the fixed proficiency ladder in ascending order
// @Tags meta
// @Produce json
// @Success 200 {array} models.LevelInfo "Levels from A1 to C2"
// @Router /levels [get]
func (h *MetaHandler) ListLevels(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, models.LevelList())
}

// HealthCheck handles GET /health
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "Service status"
// @Router /health [get]
func (h *MetaHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
