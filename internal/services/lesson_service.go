package services

import (
	"context"
	"fmt"

	"github.com/linguaflow/backend/internal/apperrors"
	"github.com/linguaflow/backend/internal/models"
)

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// Create inserts a new lesson and fills in its generated id and timestamps
	Create(ctx context.Context, lesson *models.Lesson) error
	// GetByID retrieves a lesson by id
	GetByID(ctx context.Context, id string) (*models.Lesson, error)
	// GetBySlug retrieves a lesson by slug
	GetBySlug(ctx context.Context, slug string) (*models.Lesson, error)
	// ExistsBySlug checks if a lesson with the slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// ExistsByLevelOrder checks if a lesson occupies the order within a level
	ExistsByLevelOrder(ctx context.Context, level models.Level, order int) (bool, error)
	// ExistsByTemplateID checks if any lesson references the template
	ExistsByTemplateID(ctx context.Context, templateID string) (bool, error)
	// Update applies a partial update to a lesson
	Update(ctx context.Context, id string, req *models.UpdateLessonRequest) error
	// Delete removes a lesson by id
	Delete(ctx context.Context, id string) error
	// List retrieves lessons matching the filter with pagination
	List(ctx context.Context, filter models.LessonFilter, page, count int) ([]models.Lesson, error)
}

type lessonService struct {
	lessonRepo   LessonRepository
	templateRepo TemplateRepository
	progressRepo UserProgressRepository
}

// NewLessonService creates a new lesson service
func NewLessonService(lessonRepo LessonRepository, templateRepo TemplateRepository, progressRepo UserProgressRepository) *lessonService {
	return &lessonService{
		lessonRepo:   lessonRepo,
		templateRepo: templateRepo,
		progressRepo: progressRepo,
	}
}

// Create creates a new lesson after validating its slug, level and position.
// An occupied (level, order) slot is rejected; positions are never shifted.
func (s *lessonService) Create(ctx context.Context, req *models.CreateLessonRequest) (*models.Lesson, error) {
	if req.Title == "" {
		return nil, apperrors.Validation("lesson", "title", "must not be empty")
	}
	if !models.ValidSlug(req.Slug) {
		return nil, apperrors.Validation("lesson", "slug", "must be a URL-safe slug")
	}
	if !models.ValidLevel(req.Level) {
		return nil, apperrors.Validation("lesson", "level", "unknown level")
	}
	if req.Order < 1 {
		return nil, apperrors.Validation("lesson", "order", "must be a positive integer")
	}
	if req.TemplateID == "" {
		return nil, apperrors.Validation("lesson", "templateId", "must not be empty")
	}

	// Check the referenced template exists
	templateExists, err := s.templateRepo.ExistsByID(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to check template existence: %w", err)
	}
	if !templateExists {
		return nil, apperrors.Reference("lesson", "templateId")
	}

	// Check slug and position are free; the unique keys remain the backstop
	// for racing creates
	slugTaken, err := s.lessonRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug existence: %w", err)
	}
	if slugTaken {
		return nil, apperrors.Conflict("lesson", "slug")
	}

	orderTaken, err := s.lessonRepo.ExistsByLevelOrder(ctx, req.Level, req.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to check order existence: %w", err)
	}
	if orderTaken {
		return nil, apperrors.Conflict("lesson", "(level,order)")
	}

	isPublished := false
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	lesson := &models.Lesson{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Level:       req.Level,
		Order:       req.Order,
		Content:     req.Content,
		IsPublished: isPublished,
		TemplateID:  req.TemplateID,
	}
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

// GetByID retrieves a lesson by id
func (s *lessonService) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, id)
}

// GetBySlug retrieves a lesson by slug
func (s *lessonService) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	return s.lessonRepo.GetBySlug(ctx, slug)
}

// Update applies a partial update, re-validating every invariant the patch
// touches, and returns the updated lesson
func (s *lessonService) Update(ctx context.Context, id string, req *models.UpdateLessonRequest) (*models.Lesson, error) {
	if req.Slug != "" && !models.ValidSlug(req.Slug) {
		return nil, apperrors.Validation("lesson", "slug", "must be a URL-safe slug")
	}
	if req.Level != "" && !models.ValidLevel(req.Level) {
		return nil, apperrors.Validation("lesson", "level", "unknown level")
	}
	if req.Order != nil && *req.Order < 1 {
		return nil, apperrors.Validation("lesson", "order", "must be a positive integer")
	}

	current, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != "" && req.Slug != current.Slug {
		slugTaken, err := s.lessonRepo.ExistsBySlug(ctx, req.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug existence: %w", err)
		}
		if slugTaken {
			return nil, apperrors.Conflict("lesson", "slug")
		}
	}

	// Re-check the (level, order) slot when either half changes
	targetLevel := current.Level
	if req.Level != "" {
		targetLevel = req.Level
	}
	targetOrder := current.Order
	if req.Order != nil {
		targetOrder = *req.Order
	}
	if targetLevel != current.Level || targetOrder != current.Order {
		orderTaken, err := s.lessonRepo.ExistsByLevelOrder(ctx, targetLevel, targetOrder)
		if err != nil {
			return nil, fmt.Errorf("failed to check order existence: %w", err)
		}
		if orderTaken {
			return nil, apperrors.Conflict("lesson", "(level,order)")
		}
	}

	if req.TemplateID != "" && req.TemplateID != current.TemplateID {
		templateExists, err := s.templateRepo.ExistsByID(ctx, req.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("failed to check template existence: %w", err)
		}
		if !templateExists {
			return nil, apperrors.Reference("lesson", "templateId")
		}
	}

	if err := s.lessonRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	return s.lessonRepo.GetByID(ctx, id)
}

// Delete removes a lesson. Lessons with progress records cannot be deleted.
func (s *lessonService) Delete(ctx context.Context, id string) error {
	hasProgress, err := s.progressRepo.ExistsByLessonID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check lesson progress: %w", err)
	}
	if hasProgress {
		return apperrors.DependencyExists("lesson", "userProgress")
	}

	return s.lessonRepo.Delete(ctx, id)
}

// List retrieves lessons matching the filter with pagination
func (s *lessonService) List(ctx context.Context, filter models.LessonFilter, page, count int) ([]models.Lesson, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	return s.lessonRepo.List(ctx, filter, page, count)
}
