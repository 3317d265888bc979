package database

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"
)

// Conn returns a gorm session bound to ctx. When tx is set, statements run on
// the caller's *sql.Tx so gorm writes share the service transaction.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := db.WithContext(ctx)
	if tx != nil {
		session.Statement.ConnPool = tx
	}
	return session
}

// ActiveOnly filters rows on status = 'active'.
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", "active")
	}
}

// Search matches q case-insensitively against any of the given columns.
func Search(q string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q = strings.TrimSpace(q)
		if q == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(q) + "%"
		clauses := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}
