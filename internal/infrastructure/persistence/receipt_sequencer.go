package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReceiptSequencer hands out receipt counters from the receipt_sequences table.
// The increment is a single UPDATE, so callers inside a transaction hold the
// row lock until commit and a rolled-back payment returns its number.
type GormReceiptSequencer struct {
	db *gorm.DB
}

// NewGormReceiptSequencer creates a new GormReceiptSequencer
func NewGormReceiptSequencer(db *gorm.DB) *GormReceiptSequencer {
	return &GormReceiptSequencer{db: db}
}

// Next returns the next counter for businessID and prefix
func (s *GormReceiptSequencer) Next(ctx context.Context, businessID uuid.UUID, prefix string) (int64, error) {
	var next int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureRow(tx, businessID, prefix); err != nil {
			return err
		}
		result := tx.Model(&models.ReceiptSequenceModel{}).
			Where("business_id = ? AND prefix = ?", businessID, prefix).
			UpdateColumns(map[string]any{
				"value":      gorm.Expr("value + 1"),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		return tx.Model(&models.ReceiptSequenceModel{}).
			Where("business_id = ? AND prefix = ?", businessID, prefix).
			Select("value").
			Row().Scan(&next)
	})
	if err != nil {
		return 0, translateError(err, "receipt sequence")
	}
	return next, nil
}

// ensureRow creates the counter row on first use, seeded from the highest
// receipt already issued under prefix
func (s *GormReceiptSequencer) ensureRow(tx *gorm.DB, businessID uuid.UUID, prefix string) error {
	var count int64
	if err := tx.Model(&models.ReceiptSequenceModel{}).
		Where("business_id = ? AND prefix = ?", businessID, prefix).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var receipts []string
	if err := tx.Model(&models.RentPaymentModel{}).
		Where("business_id = ? AND receipt_number LIKE ?", businessID, prefix+"-%").
		Pluck("receipt_number", &receipts).Error; err != nil {
		return err
	}
	var seed int64
	for _, receipt := range receipts {
		if n, ok := rent.ParseReceiptSequence(receipt, prefix); ok && n > seed {
			seed = n
		}
	}

	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.ReceiptSequenceModel{
		BusinessID: businessID,
		Prefix:     prefix,
		Value:      seed,
		UpdatedAt:  time.Now(),
	}).Error
}

var _ rent.ReceiptSequencer = (*GormReceiptSequencer)(nil)
