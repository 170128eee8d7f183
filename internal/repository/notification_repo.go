package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/unipair/match-service/internal/apperr"
	"github.com/unipair/match-service/internal/db"
)

// NotificationRepository writes notification rows for the delivery
// subsystem to pick up. The matcher never reads them back.
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new repository bound to the given DB connection.
func NewNotificationRepository(database *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: database}
}

// Create inserts a notification row.
func (r *NotificationRepository) Create(ctx context.Context, userID uint64, typ, title, message string) error {
	n := db.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
	}
	return apperr.Map(r.db.WithContext(ctx).Create(&n).Error)
}
