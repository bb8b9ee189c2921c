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

type lessonRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB, logger *zap.Logger) *lessonRepository {
	return &lessonRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new lesson. The slug and (level, order) unique keys and
// the template foreign key arbitrate integrity under concurrent creates.
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (id, title, slug, description, level, ` + "`order`" + `, content, is_published, template_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	lesson.ID = uuid.New().String()
	now := time.Now().UTC()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		lesson.ID,
		lesson.Title,
		lesson.Slug,
		nullString(lesson.Description),
		lesson.Level,
		lesson.Order,
		lesson.Content,
		lesson.IsPublished,
		lesson.TemplateID,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)
	if err != nil {
		switch duplicateKey(err) {
		case "uq_lessons_slug":
			return apperrors.Conflict("lesson", "slug")
		case "uq_lessons_level_order":
			return apperrors.Conflict("lesson", "(level,order)")
		}
		if isForeignKeyViolation(err) {
			return apperrors.Reference("lesson", "templateId")
		}
		r.logger.Error("failed to create lesson", zap.Error(err))
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	return nil
}

// GetByID retrieves a lesson by its ID
func (r *lessonRepository) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetBySlug retrieves a lesson by its slug
func (r *lessonRepository) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	return r.getOne(ctx, "slug = ?", slug)
}

func (r *lessonRepository) getOne(ctx context.Context, where string, arg any) (*models.Lesson, error) {
	query := `
		SELECT id, title, slug, description, level, ` + "`order`" + `, content, is_published, template_id, created_at, updated_at
		FROM lessons
		WHERE ` + where + `
		LIMIT 1
	`

	lesson := &models.Lesson{}
	var description sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.Slug,
		&description,
		&lesson.Level,
		&lesson.Order,
		&lesson.Content,
		&lesson.IsPublished,
		&lesson.TemplateID,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("lesson")
	}
	if err != nil {
		r.logger.Error("failed to get lesson", zap.Error(err))
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	lesson.Description = description.String
	return lesson, nil
}

// ExistsBySlug checks if a lesson with the given slug exists
func (r *lessonRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE slug = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson slug existence: %w", err)
	}

	return exists, nil
}

// ExistsByLevelOrder checks if a lesson occupies the given order within a level
func (r *lessonRepository) ExistsByLevelOrder(ctx context.Context, level models.Level, order int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE level = ? AND ` + "`order`" + ` = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, level, order).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson order existence: %w", err)
	}

	return exists, nil
}

// ExistsByTemplateID checks if any lesson references the given template
func (r *lessonRepository) ExistsByTemplateID(ctx context.Context, templateID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE template_id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, templateID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson template existence: %w", err)
	}

	return exists, nil
}

// Update updates a lesson (partial update)
func (r *lessonRepository) Update(ctx context.Context, id string, req *models.UpdateLessonRequest) error {
	var setParts []string
	var args []any

	if req.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, req.Title)
	}
	if req.Slug != "" {
		setParts = append(setParts, "slug = ?")
		args = append(args, req.Slug)
	}
	if req.Description != nil {
		setParts = append(setParts, "description = ?")
		args = append(args, nullString(*req.Description))
	}
	if req.Level != "" {
		setParts = append(setParts, "level = ?")
		args = append(args, req.Level)
	}
	if req.Order != nil {
		setParts = append(setParts, "`order` = ?")
		args = append(args, *req.Order)
	}
	if req.Content != nil {
		setParts = append(setParts, "content = ?")
		args = append(args, req.Content)
	}
	if req.IsPublished != nil {
		setParts = append(setParts, "is_published = ?")
		args = append(args, *req.IsPublished)
	}
	if req.TemplateID != "" {
		setParts = append(setParts, "template_id = ?")
		args = append(args, req.TemplateID)
	}

	if len(setParts) == 0 {
		return apperrors.Validation("lesson", "", "no fields to update")
	}

	setParts = append(setParts, "updated_at = ?")
	args = append(args, time.Now().UTC())

	query := fmt.Sprintf(`
		UPDATE lessons
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		switch duplicateKey(err) {
		case "uq_lessons_slug":
			return apperrors.Conflict("lesson", "slug")
		case "uq_lessons_level_order":
			return apperrors.Conflict("lesson", "(level,order)")
		}
		if isForeignKeyViolation(err) {
			return apperrors.Reference("lesson", "templateId")
		}
		r.logger.Error("failed to update lesson", zap.Error(err))
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("lesson")
	}

	return nil
}

// Delete deletes a lesson by ID. Progress rows reference lessons with a
// RESTRICT foreign key, so a lesson with progress cannot be removed.
func (r *lessonRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM lessons WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isReferencedRowViolation(err) {
			return apperrors.DependencyExists("lesson", "userProgress")
		}
		r.logger.Error("failed to delete lesson", zap.Error(err))
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("lesson")
	}

	return nil
}

// List retrieves lessons matching the filter, sorted by level order then
// lesson order so sequences read in course order
func (r *lessonRepository) List(ctx context.Context, filter models.LessonFilter, page, count int) ([]models.Lesson, error) {
	var whereParts []string
	var args []any

	if filter.Level != nil {
		whereParts = append(whereParts, "level = ?")
		args = append(args, *filter.Level)
	}
	if filter.TemplateID != nil {
		whereParts = append(whereParts, "template_id = ?")
		args = append(args, *filter.TemplateID)
	}
	if filter.IsPublished != nil {
		whereParts = append(whereParts, "is_published = ?")
		args = append(args, *filter.IsPublished)
	}

	whereClause := ""
	if len(whereParts) > 0 {
		whereClause = "WHERE " + strings.Join(whereParts, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, title, slug, description, level, `+"`order`"+`, content, is_published, template_id, created_at, updated_at
		FROM lessons
		%s
		ORDER BY FIELD(level, 'A1', 'A2', 'B1', 'B2', 'C1', 'C2'), `+"`order`"+`
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, count, (page-1)*count)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query lessons", zap.Error(err))
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		var description sql.NullString
		err := rows.Scan(
			&lesson.ID,
			&lesson.Title,
			&lesson.Slug,
			&description,
			&lesson.Level,
			&lesson.Order,
			&lesson.Content,
			&lesson.IsPublished,
			&lesson.TemplateID,
			&lesson.CreatedAt,
			&lesson.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lesson.Description = description.String
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}
