package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/linguaflow/backend/internal/apperrors"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps an application error to its HTTP status and sends
// the kind and offending field so the UI can render a precise message
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		h.Logger.Error("unexpected service error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var status int
	switch appErr.Kind {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindConflict, apperrors.KindDependencyExists:
		status = http.StatusConflict
	case apperrors.KindReference:
		status = http.StatusUnprocessableEntity
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
	}

	h.RespondJSON(w, status, map[string]string{
		"error": appErr.Error(),
		"kind":  string(appErr.Kind),
		"field": appErr.Field,
	})
}

// parsePagination reads page and count query parameters with defaults
func parsePagination(r *http.Request) (int, int) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	count := 10
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		if c, err := strconv.Atoi(countStr); err == nil && c > 0 {
			count = c
		}
	}
	return page, count
}
