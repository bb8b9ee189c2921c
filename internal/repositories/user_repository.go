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

type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user. The auth0 id and email unique keys arbitrate
// duplicates; violations surface as conflict errors.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, auth0_id, email, name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	user.ID = uuid.New().String()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Auth0ID,
		user.Email,
		nullString(user.Name),
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		switch duplicateKey(err) {
		case "uq_users_email":
			return apperrors.Conflict("user", "email")
		case "uq_users_auth0_id":
			return apperrors.Conflict("user", "auth0Id")
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by its ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByAuth0ID retrieves a user by its identity-provider subject id
func (r *userRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	return r.getOne(ctx, "auth0_id = ?", auth0ID)
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `
		SELECT id, auth0_id, email, name, role, created_at, updated_at
		FROM users
		WHERE ` + where + `
		LIMIT 1
	`

	user := &models.User{}
	var name sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Auth0ID,
		&user.Email,
		&name,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("user")
	}
	if err != nil {
		r.logger.Error("failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Name = name.String
	return user, nil
}

// Update updates a user (partial update)
func (r *userRepository) Update(ctx context.Context, id string, req *models.UpdateUserRequest) error {
	var setParts []string
	var args []any

	if req.Email != "" {
		setParts = append(setParts, "email = ?")
		args = append(args, req.Email)
	}
	if req.Name != nil {
		setParts = append(setParts, "name = ?")
		args = append(args, nullString(*req.Name))
	}
	if req.Role != "" {
		setParts = append(setParts, "role = ?")
		args = append(args, req.Role)
	}

	if len(setParts) == 0 {
		return apperrors.Validation("user", "", "no fields to update")
	}

	setParts = append(setParts, "updated_at = ?")
	args = append(args, time.Now().UTC())

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if duplicateKey(err) == "uq_users_email" {
			return apperrors.Conflict("user", "email")
		}
		r.logger.Error("failed to update user", zap.Error(err))
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("user")
	}

	return nil
}

// Delete deletes a user by ID. The foreign key from user_progress is
// RESTRICT, so a user with progress rows cannot be removed.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isReferencedRowViolation(err) {
			return apperrors.DependencyExists("user", "userProgress")
		}
		r.logger.Error("failed to delete user", zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("user")
	}

	return nil
}

// List retrieves users matching the filter, ordered by creation time
func (r *userRepository) List(ctx context.Context, filter models.UserFilter, page, count int) ([]models.User, error) {
	var whereParts []string
	var args []any

	if filter.Role != nil {
		whereParts = append(whereParts, "role = ?")
		args = append(args, *filter.Role)
	}

	whereClause := ""
	if len(whereParts) > 0 {
		whereClause = "WHERE " + strings.Join(whereParts, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, auth0_id, email, name, role, created_at, updated_at
		FROM users
		%s
		ORDER BY created_at, id
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, count, (page-1)*count)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query users", zap.Error(err))
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var name sql.NullString
		err := rows.Scan(
			&user.ID,
			&user.Auth0ID,
			&user.Email,
			&name,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Name = name.String
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

// nullString converts an empty string to a NULL database value
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
