package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linguaflow/backend/internal/apperrors"
	"github.com/linguaflow/backend/internal/models"
)

type userProgressRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserProgressRepository creates a new user progress repository
func NewUserProgressRepository(db *sql.DB, logger *zap.Logger) *userProgressRepository {
	return &userProgressRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new progress record. The (user_id, lesson_id) unique key
// arbitrates racing creates for the same pair: the insert is a single
// statement, so exactly one of N concurrent callers wins and the rest get a
// conflict error.
func (r *userProgressRepository) Create(ctx context.Context, progress *models.UserProgress) error {
	query := `
		INSERT INTO user_progress (id, user_id, lesson_id, completed, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	progress.ID = uuid.New().String()
	now := time.Now().UTC()
	progress.CreatedAt = now
	progress.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		progress.ID,
		progress.UserID,
		progress.LessonID,
		progress.Completed,
		progress.CompletedAt,
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		if duplicateKey(err) == "uq_user_progress_user_lesson" {
			return apperrors.Conflict("userProgress", "(userId,lessonId)")
		}
		if isForeignKeyViolation(err) {
			return apperrors.Reference("userProgress", "userId or lessonId")
		}
		r.logger.Error("failed to create user progress", zap.Error(err))
		return fmt.Errorf("failed to create user progress: %w", err)
	}

	return nil
}

// GetByID retrieves a progress record by its ID
func (r *userProgressRepository) GetByID(ctx context.Context, id string) (*models.UserProgress, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByUserAndLesson retrieves the progress record for a (user, lesson) pair
func (r *userProgressRepository) GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*models.UserProgress, error) {
	return r.getOne(ctx, "user_id = ? AND lesson_id = ?", userID, lessonID)
}

func (r *userProgressRepository) getOne(ctx context.Context, where string, args ...any) (*models.UserProgress, error) {
	query := `
		SELECT id, user_id, lesson_id, completed, completed_at, created_at, updated_at
		FROM user_progress
		WHERE ` + where + `
		LIMIT 1
	`

	progress := &models.UserProgress{}
	var completedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.LessonID,
		&progress.Completed,
		&completedAt,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("userProgress")
	}
	if err != nil {
		r.logger.Error("failed to get user progress", zap.Error(err))
		return nil, fmt.Errorf("failed to get user progress: %w", err)
	}

	if completedAt.Valid {
		progress.CompletedAt = &completedAt.Time
	}
	return progress, nil
}

// ExistsByUserID checks if any progress record exists for a user
func (r *userProgressRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_progress WHERE user_id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user progress existence: %w", err)
	}

	return exists, nil
}

// ExistsByLessonID checks if any progress record exists for a lesson
func (r *userProgressRepository) ExistsByLessonID(ctx context.Context, lessonID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_progress WHERE lesson_id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, lessonID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson progress existence: %w", err)
	}

	return exists, nil
}

// Update updates a progress record. Completed and CompletedAt always travel
// together here; the service layer enforces the pairing rule.
func (r *userProgressRepository) Update(ctx context.Context, id string, completed bool, completedAt *time.Time) error {
	query := `
		UPDATE user_progress
		SET completed = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, completed, completedAt, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error("failed to update user progress", zap.Error(err))
		return fmt.Errorf("failed to update user progress: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("userProgress")
	}

	return nil
}

// Delete deletes a progress record by ID, unconditionally
func (r *userProgressRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM user_progress WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete user progress", zap.Error(err))
		return fmt.Errorf("failed to delete user progress: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("userProgress")
	}

	return nil
}

// List retrieves progress records matching the filter, ordered by creation time
func (r *userProgressRepository) List(ctx context.Context, filter models.UserProgressFilter, page, count int) ([]models.UserProgress, error) {
	var whereParts []string
	var args []any

	if filter.UserID != nil {
		whereParts = append(whereParts, "user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.LessonID != nil {
		whereParts = append(whereParts, "lesson_id = ?")
		args = append(args, *filter.LessonID)
	}
	if filter.Completed != nil {
		whereParts = append(whereParts, "completed = ?")
		args = append(args, *filter.Completed)
	}

	whereClause := ""
	if len(whereParts) > 0 {
		whereClause = "WHERE " + strings.Join(whereParts, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, lesson_id, completed, completed_at, created_at, updated_at
		FROM user_progress
		%s
		ORDER BY created_at, id
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, count, (page-1)*count)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query user progress", zap.Error(err))
		return nil, fmt.Errorf("failed to query user progress: %w", err)
	}
	defer rows.Close()

	var records []models.UserProgress
	for rows.Next() {
		var progress models.UserProgress
		var completedAt sql.NullTime
		err := rows.Scan(
			&progress.ID,
			&progress.UserID,
			&progress.LessonID,
			&progress.Completed,
			&completedAt,
			&progress.CreatedAt,
			&progress.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user progress: %w", err)
		}
		if completedAt.Valid {
			progress.CompletedAt = &completedAt.Time
		}
		records = append(records, progress)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}
