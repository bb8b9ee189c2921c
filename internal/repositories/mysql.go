package repositories

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error codes the repositories translate into the application
// error taxonomy.
const (
	mysqlErrDuplicateEntry  = 1062 // unique key violated
	mysqlErrRowIsReferenced = 1451 // delete blocked by a referencing row
	mysqlErrNoReferencedRow = 1452 // insert/update references a missing row
)

// duplicateKey returns the name of the violated unique key if err is a MySQL
// duplicate-entry error, or "" otherwise
func duplicateKey(err error) string {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlErrDuplicateEntry {
		return ""
	}

	// Message format: Duplicate entry 'x' for key 'table.key_name'
	msg := mysqlErr.Message
	idx := strings.LastIndex(msg, "for key '")
	if idx == -1 {
		return ""
	}
	key := strings.TrimSuffix(msg[idx+len("for key '"):], "'")
	if dot := strings.LastIndex(key, "."); dot != -1 {
		key = key[dot+1:]
	}
	return key
}

// isForeignKeyViolation reports whether err is a MySQL missing-referenced-row error
func isForeignKeyViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrNoReferencedRow
}

// isReferencedRowViolation reports whether err is a MySQL row-is-referenced error
func isReferencedRowViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrRowIsReferenced
}
