package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict reports a storage-level uniqueness violation. Service
// pre-checks (username taken, token row exists) can race; the unique
// index fires here and callers translate it to their own sentinel.
var ErrConflict = errors.New("storage constraint violated")

func isDuplicateErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	// sqlite (tests) and postgres phrase it differently
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
