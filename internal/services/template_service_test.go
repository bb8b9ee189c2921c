package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguaflow/backend/internal/apperrors"
	"github.com/linguaflow/backend/internal/models"
)

func TestTemplateService_Create(t *testing.T) {
	inactive := false

	tests := []struct {
		name           string
		req            *models.CreateTemplateRequest
		expectedKind   apperrors.Kind
		expectedActive bool
	}{
		{
			name: "active by default",
			req: &models.CreateTemplateRequest{
				Name:   "Vocabulary Drill",
				Type:   models.LessonTypeVocabulary,
				Schema: models.JSONMap{"fields": []any{"word"}},
			},
			expectedActive: true,
		},
		{
			name: "explicitly inactive",
			req: &models.CreateTemplateRequest{
				Name:     "Retired Drill",
				Type:     models.LessonTypeGrammar,
				Schema:   models.JSONMap{},
				IsActive: &inactive,
			},
			expectedActive: false,
		},
		{
			name:         "missing name",
			req:          &models.CreateTemplateRequest{Type: models.LessonTypeReading, Schema: models.JSONMap{}},
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "unknown lesson type",
			req:          &models.CreateTemplateRequest{Name: "Drill", Type: "speaking", Schema: models.JSONMap{}},
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "missing schema",
			req:          &models.CreateTemplateRequest{Name: "Drill", Type: models.LessonTypeListening},
			expectedKind: apperrors.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			templateRepo := &mockTemplateRepository{}
			svc := NewTemplateService(templateRepo, &mockLessonRepository{})

			template, err := svc.Create(context.Background(), tt.req)

			if tt.expectedKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				assert.Nil(t, templateRepo.created)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedActive, template.IsActive)
			assert.NotEmpty(t, template.ID)
		})
	}
}

func TestTemplateService_Update(t *testing.T) {
	t.Run("unknown type rejected before touching storage", func(t *testing.T) {
		templateRepo := &mockTemplateRepository{}
		svc := NewTemplateService(templateRepo, &mockLessonRepository{})

		_, err := svc.Update(context.Background(), "template-1", &models.UpdateTemplateRequest{Type: "speaking"})

		assert.True(t, apperrors.IsValidation(err))
		assert.Nil(t, templateRepo.lastUpdate)
	})

	t.Run("returns the updated template", func(t *testing.T) {
		templateRepo := &mockTemplateRepository{
			template: &models.Template{ID: "template-1", Name: "Renamed"},
		}
		svc := NewTemplateService(templateRepo, &mockLessonRepository{})

		template, err := svc.Update(context.Background(), "template-1", &models.UpdateTemplateRequest{Name: "Renamed"})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", template.Name)
		assert.Equal(t, "Renamed", templateRepo.lastUpdate.Name)
	})
}

func TestTemplateService_Delete(t *testing.T) {
	t.Run("blocked while lessons reference it", func(t *testing.T) {
		templateRepo := &mockTemplateRepository{}
		svc := NewTemplateService(templateRepo, &mockLessonRepository{templateInUse: true})

		err := svc.Delete(context.Background(), "template-1")

		assert.True(t, apperrors.IsDependencyExists(err))
		assert.Empty(t, templateRepo.deletedID)
	})

	t.Run("unreferenced template deleted", func(t *testing.T) {
		templateRepo := &mockTemplateRepository{}
		svc := NewTemplateService(templateRepo, &mockLessonRepository{})

		require.NoError(t, svc.Delete(context.Background(), "template-1"))
		assert.Equal(t, "template-1", templateRepo.deletedID)
	})
}
