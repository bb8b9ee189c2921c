package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestDuplicateKey(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedKey string
	}{
		{
			name: "qualified key name",
			err: &mysql.MySQLError{
				Number:  1062,
				Message: "Duplicate entry 'taken@example.com' for key 'users.uq_users_email'",
			},
			expectedKey: "uq_users_email",
		},
		{
			name: "unqualified key name",
			err: &mysql.MySQLError{
				Number:  1062,
				Message: "Duplicate entry 'hello-world' for key 'uq_lessons_slug'",
			},
			expectedKey: "uq_lessons_slug",
		},
		{
			name: "wrapped error",
			err: fmt.Errorf("insert failed: %w", &mysql.MySQLError{
				Number:  1062,
				Message: "Duplicate entry 'A1-3' for key 'lessons.uq_lessons_level_order'",
			}),
			expectedKey: "uq_lessons_level_order",
		},
		{
			name: "different error number",
			err: &mysql.MySQLError{
				Number:  1452,
				Message: "Cannot add or update a child row: a foreign key constraint fails",
			},
			expectedKey: "",
		},
		{
			name:        "not a mysql error",
			err:         errors.New("connection refused"),
			expectedKey: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, duplicateKey(tt.err))
		})
	}
}

func TestForeignKeyHelpers(t *testing.T) {
	fkErr := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	refErr := &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"}

	assert.True(t, isForeignKeyViolation(fkErr))
	assert.False(t, isForeignKeyViolation(refErr))
	assert.False(t, isForeignKeyViolation(errors.New("other")))

	assert.True(t, isReferencedRowViolation(refErr))
	assert.False(t, isReferencedRowViolation(fkErr))
	assert.False(t, isReferencedRowViolation(nil))
}
