package services

import (
	"context"
	"fmt"
	"time"

	"github.com/linguaflow/backend/internal/apperrors"
	"github.com/linguaflow/backend/internal/models"
)

// UserProgressRepository defines methods for user progress data access
type UserProgressRepository interface {
	// Create inserts a new progress record and fills in its generated id and timestamps
	Create(ctx context.Context, progress *models.UserProgress) error
	// GetByID retrieves a progress record by id
	GetByID(ctx context.Context, id string) (*models.UserProgress, error)
	// GetByUserAndLesson retrieves the progress record for a (user, lesson) pair
	GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*models.UserProgress, error)
	// ExistsByUserID checks if any progress record exists for a user
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	// ExistsByLessonID checks if any progress record exists for a lesson
	ExistsByLessonID(ctx context.Context, lessonID string) (bool, error)
	// Update sets the completion state of a progress record
	Update(ctx context.Context, id string, completed bool, completedAt *time.Time) error
	// Delete removes a progress record by id
	Delete(ctx context.Context, id string) error
	// List retrieves progress records matching the filter with pagination
	List(ctx context.Context, filter models.UserProgressFilter, page, count int) ([]models.UserProgress, error)
}

type progressService struct {
	progressRepo UserProgressRepository
	lessonRepo   LessonRepository
}

// NewProgressService creates a new progress service
func NewProgressService(progressRepo UserProgressRepository, lessonRepo LessonRepository) *progressService {
	return &progressService{
		progressRepo: progressRepo,
		lessonRepo:   lessonRepo,
	}
}

// Create creates a progress record for the user on a lesson. A record marked
// completed on creation is stamped immediately. The (user, lesson) unique key
// guarantees racing creates persist exactly one row.
func (s *progressService) Create(ctx context.Context, userID string, req *models.CreateUserProgressRequest) (*models.UserProgress, error) {
	if req.LessonID == "" {
		return nil, apperrors.Validation("userProgress", "lessonId", "must not be empty")
	}

	// Check the lesson exists before inserting
	if _, err := s.lessonRepo.GetByID(ctx, req.LessonID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Reference("userProgress", "lessonId")
		}
		return nil, fmt.Errorf("failed to check lesson: %w", err)
	}

	progress := &models.UserProgress{
		UserID:    userID,
		LessonID:  req.LessonID,
		Completed: req.Completed,
	}
	if req.Completed {
		now := time.Now().UTC()
		progress.CompletedAt = &now
	}

	if err := s.progressRepo.Create(ctx, progress); err != nil {
		return nil, err
	}

	return progress, nil
}

// GetByID retrieves a progress record owned by the given user
func (s *progressService) GetByID(ctx context.Context, userID, id string) (*models.UserProgress, error) {
	progress, err := s.progressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// A record belonging to another user is indistinguishable from a missing one
	if progress.UserID != userID {
		return nil, apperrors.NotFound("userProgress")
	}
	return progress, nil
}

// Update changes the completion state of a progress record. Completing a
// record stamps completedAt when the patch does not supply it; uncompleting
// clears it. A completedAt without completed=true is rejected, preserving the
// completed⇔completedAt pairing.
func (s *progressService) Update(ctx context.Context, userID, id string, req *models.UpdateUserProgressRequest) (*models.UserProgress, error) {
	progress, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	completed := progress.Completed
	if req.Completed != nil {
		completed = *req.Completed
	}

	var completedAt *time.Time
	switch {
	case completed && req.CompletedAt != nil:
		completedAt = req.CompletedAt
	case completed && progress.CompletedAt != nil:
		completedAt = progress.CompletedAt
	case completed:
		now := time.Now().UTC()
		completedAt = &now
	case req.CompletedAt != nil:
		return nil, apperrors.Validation("userProgress", "completedAt", "cannot be set when completed is false")
	}

	if err := s.progressRepo.Update(ctx, id, completed, completedAt); err != nil {
		return nil, err
	}

	return s.progressRepo.GetByID(ctx, id)
}

// Delete removes a progress record owned by the given user
func (s *progressService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.progressRepo.Delete(ctx, id)
}

// List retrieves the user's progress records matching the filter
func (s *progressService) List(ctx context.Context, userID string, filter models.UserProgressFilter, page, count int) ([]models.UserProgress, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	filter.UserID = &userID
	return s.progressRepo.List(ctx, filter, page, count)
}
