package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound возвращается всеми репозиториями вместо gorm.ErrRecordNotFound.
var ErrNotFound = errors.New("record not found")

// isDuplicateError распознаёт нарушение уникального индекса: код 23505 для
// PostgreSQL, текстовая проверка для SQLite в dev-режиме.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}
