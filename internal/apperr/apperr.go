// internal/apperr/apperr.go
package apperr

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors returned by repositories and services. Callers branch on
// these with errors.Is instead of inspecting driver-specific errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrUnauthorized  = errors.New("not authorized for this resource")
	ErrTimeout       = errors.New("request timed out")
	ErrCanceled      = errors.New("request was canceled")
)

// Map converts repo/infra errors into domain errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound

	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists

	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout

	case errors.Is(err, context.Canceled):
		return ErrCanceled

	default:
		return err
	}
}

// NotFound wraps a message onto ErrNotFound.
func NotFound(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrNotFound)
}

// Unauthorized wraps a message onto ErrUnauthorized.
func Unauthorized(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrUnauthorized)
}
