// Package pgerr классифицирует ошибки PostgreSQL (lib/pq) по SQLSTATE
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE коды, которые нас интересуют
const (
	CodeUniqueViolation      = "23505"
	CodeCheckViolation       = "23514"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeLockNotAvailable     = "55P03"
)

// Code возвращает SQLSTATE ошибки или пустую строку, если это не ошибка PostgreSQL
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// Constraint возвращает имя нарушенного ограничения (если есть)
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsUniqueViolation true, если нарушено уникальное ограничение
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsRetryable true для ошибок конкурентного доступа, после которых
// транзакцию можно безопасно повторить целиком
func IsRetryable(err error) bool {
	switch Code(err) {
	case CodeSerializationFailure, CodeDeadlockDetected, CodeLockNotAvailable:
		return true
	default:
		return false
	}
}
