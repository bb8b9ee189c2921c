package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/linguaflow/backend/internal/apperrors"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedPage  int
		expectedCount int
	}{
		{
			name:          "defaults when absent",
			query:         "",
			expectedPage:  1,
			expectedCount: 10,
		},
		{
			name:          "explicit values",
			query:         "page=3&count=25",
			expectedPage:  3,
			expectedCount: 25,
		},
		{
			name:          "non-numeric values fall back",
			query:         "page=abc&count=xyz",
			expectedPage:  1,
			expectedCount: 10,
		},
		{
			name:          "non-positive values fall back",
			query:         "page=0&count=-5",
			expectedPage:  1,
			expectedCount: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/users?"+tt.query, nil)

			page, count := parsePagination(r)

			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedCount, count)
		})
	}
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "validation",
			err:            apperrors.Validation("lesson", "slug", "invalid slug"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "conflict",
			err:            apperrors.Conflict("user", "email"),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "dependency exists",
			err:            apperrors.DependencyExists("template", "lessons"),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "reference",
			err:            apperrors.Reference("lesson", "templateId"),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "not found",
			err:            apperrors.NotFound("lesson"),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unexpected error",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	h := &BaseHandler{Logger: zap.NewNop()}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			h.RespondServiceError(w, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}
