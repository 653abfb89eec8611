package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/notification"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByIDForBusiness finds a notification by ID within a business
func (r *GormNotificationRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*notification.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "notification")
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness lists notifications matching the filter
func (r *GormNotificationRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	var rows []models.NotificationModel
	if err := r.filtered(ctx, businessID, filter).Scopes(pageScope(filter, notificationSorts)).Find(&rows).Error; err != nil {
		return nil, translateError(err, "notification")
	}
	out := make([]notification.Notification, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountForBusiness counts notifications matching the filter
func (r *GormNotificationRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, businessID, filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "notification")
	}
	return count, nil
}

func (r *GormNotificationRepository) filtered(ctx context.Context, businessID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Scopes(businessScope(businessID), searchScope(filter.Search, "title", "message"))
	for _, key := range []string{"recipient_id", "type"} {
		if v, ok := stringFilter(filter, key); ok {
			q = q.Where(key+" = ?", v)
		}
	}
	if read, ok := boolFilter(filter, "is_read"); ok {
		q = q.Where("is_read = ?", read)
	}
	return q
}

func recipientScope(recipient *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if recipient == nil {
			return db
		}
		return db.Where("recipient_id = ?", *recipient)
	}
}

// MarkAllRead flags the unread notifications in one statement
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, businessID uuid.UUID, recipient *uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Scopes(businessScope(businessID), recipientScope(recipient)).
		Where("is_read = ?", false).
		Updates(map[string]any{
			"is_read":    true,
			"updated_at": time.Now(),
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return 0, translateError(result.Error, "notification")
	}
	return result.RowsAffected, nil
}

// Stats counts notifications per type along with the unread total
func (r *GormNotificationRepository) Stats(ctx context.Context, businessID uuid.UUID, recipient *uuid.UUID) (*notification.Stats, error) {
	var rows []struct {
		Type   notification.Type
		Count  int64
		Unread int64
	}
	err := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Scopes(businessScope(businessID), recipientScope(recipient)).
		Select("type, COUNT(*) AS count, SUM(CASE WHEN is_read THEN 0 ELSE 1 END) AS unread").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "notification")
	}
	stats := &notification.Stats{ByType: make(map[notification.Type]int64, len(rows))}
	for _, row := range rows {
		stats.Total += row.Count
		stats.Unread += row.Unread
		stats.ByType[row.Type] = row.Count
	}
	return stats, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return translateError(r.db.WithContext(ctx).Save(models.NotificationModelFromDomain(n)).Error, "notification")
}

// DeleteForBusiness deletes a notification within a business
func (r *GormNotificationRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).Delete(&models.NotificationModel{})
	if result.Error != nil {
		return translateError(result.Error, "notification")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ notification.Repository = (*GormNotificationRepository)(nil)
