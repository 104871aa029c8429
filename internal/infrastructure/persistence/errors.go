package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rentalops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps gorm's not-found to the domain error and wraps everything else
// with the operation name. Query details stay out of the message.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsUniqueViolation recognizes duplicate-key errors from postgres and sqlite
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
