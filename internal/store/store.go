// Package store holds the ownership-scoped persistence operations.
// Every read, update and delete on a user resource filters by both the resource id and the owner id.
package store

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// requireName trims name and rejects it when blank or wider than its column
func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := checkLength("name", name, domain.MaxNameLength); err != nil {
		return "", err
	}
	return name, nil
}

// checkLength rejects values with more than limit characters
func checkLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%w: %s must be at most %d characters", domain.ErrValidation, field, limit)
	}
	return nil
}
