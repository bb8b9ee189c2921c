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

type templateRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *sql.DB, logger *zap.Logger) *templateRepository {
	return &templateRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new template
func (r *templateRepository) Create(ctx context.Context, template *models.Template) error {
	query := `
		INSERT INTO templates (id, name, type, template_schema, description, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	template.ID = uuid.New().String()
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		template.ID,
		template.Name,
		template.Type,
		template.Schema,
		nullString(template.Description),
		template.IsActive,
		template.CreatedAt,
		template.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create template", zap.Error(err))
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

// GetByID retrieves a template by its ID
func (r *templateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	query := `
		SELECT id, name, type, template_schema, description, is_active, created_at, updated_at
		FROM templates
		WHERE id = ?
		LIMIT 1
	`

	template := &models.Template{}
	var description sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&template.ID,
		&template.Name,
		&template.Type,
		&template.Schema,
		&description,
		&template.IsActive,
		&template.CreatedAt,
		&template.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("template")
	}
	if err != nil {
		r.logger.Error("failed to get template by id", zap.Error(err))
		return nil, fmt.Errorf("failed to get template by id: %w", err)
	}

	template.Description = description.String
	return template, nil
}

// ExistsByID checks if a template with the given ID exists
func (r *templateRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM templates WHERE id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check template existence: %w", err)
	}

	return exists, nil
}

// Update updates a template (partial update)
func (r *templateRepository) Update(ctx context.Context, id string, req *models.UpdateTemplateRequest) error {
	var setParts []string
	var args []any

	if req.Name != "" {
		setParts = append(setParts, "name = ?")
		args = append(args, req.Name)
	}
	if req.Type != "" {
		setParts = append(setParts, "type = ?")
		args = append(args, req.Type)
	}
	if req.Schema != nil {
		setParts = append(setParts, "template_schema = ?")
		args = append(args, req.Schema)
	}
	if req.Description != nil {
		setParts = append(setParts, "description = ?")
		args = append(args, nullString(*req.Description))
	}
	if req.IsActive != nil {
		setParts = append(setParts, "is_active = ?")
		args = append(args, *req.IsActive)
	}

	if len(setParts) == 0 {
		return apperrors.Validation("template", "", "no fields to update")
	}

	setParts = append(setParts, "updated_at = ?")
	args = append(args, time.Now().UTC())

	query := fmt.Sprintf(`
		UPDATE templates
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to update template", zap.Error(err))
		return fmt.Errorf("failed to update template: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("template")
	}

	return nil
}

// Delete deletes a template by ID. Lessons reference templates with a
// RESTRICT foreign key, so a template in use cannot be removed.
func (r *templateRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM templates WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isReferencedRowViolation(err) {
			return apperrors.DependencyExists("template", "lessons")
		}
		r.logger.Error("failed to delete template", zap.Error(err))
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("template")
	}

	return nil
}

// List retrieves templates matching the filter, ordered by creation time
func (r *templateRepository) List(ctx context.Context, filter models.TemplateFilter, page, count int) ([]models.Template, error) {
	var whereParts []string
	var args []any

	if filter.Type != nil {
		whereParts = append(whereParts, "type = ?")
		args = append(args, *filter.Type)
	}
	if filter.IsActive != nil {
		whereParts = append(whereParts, "is_active = ?")
		args = append(args, *filter.IsActive)
	}

	whereClause := ""
	if len(whereParts) > 0 {
		whereClause = "WHERE " + strings.Join(whereParts, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, name, type, template_schema, description, is_active, created_at, updated_at
		FROM templates
		%s
		ORDER BY created_at, id
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, count, (page-1)*count)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query templates", zap.Error(err))
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		var template models.Template
		var description sql.NullString
		err := rows.Scan(
			&template.ID,
			&template.Name,
			&template.Type,
			&template.Schema,
			&description,
			&template.IsActive,
			&template.CreatedAt,
			&template.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		template.Description = description.String
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return templates, nil
}
