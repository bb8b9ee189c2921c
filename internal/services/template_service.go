package services

import (
	"context"
	"fmt"

	"github.com/linguaflow/backend/internal/apperrors"
	"github.com/linguaflow/backend/internal/models"
)

// TemplateRepository defines methods for template data access
type TemplateRepository interface {
	// Create inserts a new template and fills in its generated id and timestamps
	Create(ctx context.Context, template *models.Template) error
	// GetByID retrieves a template by id
	GetByID(ctx context.Context, id string) (*models.Template, error)
	// ExistsByID checks if a template exists
	ExistsByID(ctx context.Context, id string) (bool, error)
	// Update applies a partial update to a template
	Update(ctx context.Context, id string, req *models.UpdateTemplateRequest) error
	// Delete removes a template by id
	Delete(ctx context.Context, id string) error
	// List retrieves templates matching the filter with pagination
	List(ctx context.Context, filter models.TemplateFilter, page, count int) ([]models.Template, error)
}

type templateService struct {
	templateRepo TemplateRepository
	lessonRepo   LessonRepository
}

// NewTemplateService creates a new template service
func NewTemplateService(templateRepo TemplateRepository, lessonRepo LessonRepository) *templateService {
	return &templateService{
		templateRepo: templateRepo,
		lessonRepo:   lessonRepo,
	}
}

// Create creates a new template. New templates are active unless the request
// says otherwise.
func (s *templateService) Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.Template, error) {
	if req.Name == "" {
		return nil, apperrors.Validation("template", "name", "must not be empty")
	}
	if !models.ValidLessonType(req.Type) {
		return nil, apperrors.Validation("template", "type", "unknown lesson type")
	}
	if req.Schema == nil {
		return nil, apperrors.Validation("template", "schema", "must be a JSON object")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	template := &models.Template{
		Name:        req.Name,
		Type:        req.Type,
		Schema:      req.Schema,
		Description: req.Description,
		IsActive:    isActive,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}

	return template, nil
}

// GetByID retrieves a template by id
func (s *templateService) GetByID(ctx context.Context, id string) (*models.Template, error) {
	return s.templateRepo.GetByID(ctx, id)
}

// Update applies a partial update and returns the updated template
func (s *templateService) Update(ctx context.Context, id string, req *models.UpdateTemplateRequest) (*models.Template, error) {
	if req.Type != "" && !models.ValidLessonType(req.Type) {
		return nil, apperrors.Validation("template", "type", "unknown lesson type")
	}

	if err := s.templateRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	return s.templateRepo.GetByID(ctx, id)
}

// Delete removes a template. Templates still referenced by lessons cannot be
// deleted; deactivate them instead.
func (s *templateService) Delete(ctx context.Context, id string) error {
	inUse, err := s.lessonRepo.ExistsByTemplateID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check template usage: %w", err)
	}
	if inUse {
		return apperrors.DependencyExists("template", "lessons")
	}

	return s.templateRepo.Delete(ctx, id)
}

// List retrieves templates matching the filter with pagination
func (s *templateService) List(ctx context.Context, filter models.TemplateFilter, page, count int) ([]models.Template, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	return s.templateRepo.List(ctx, filter, page, count)
}
