package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/expense"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseRepository implements expense.Repository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForBusiness finds an expense by ID within a business
func (r *GormExpenseRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*expense.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "expense")
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness lists expenses matching the filter
func (r *GormExpenseRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]expense.Expense, error) {
	var rows []models.ExpenseModel
	if err := r.filtered(ctx, businessID, filter).Scopes(pageScope(filter, expenseSorts)).Find(&rows).Error; err != nil {
		return nil, translateError(err, "expense")
	}
	out := make([]expense.Expense, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountForBusiness counts expenses matching the filter
func (r *GormExpenseRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, businessID, filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "expense")
	}
	return count, nil
}

func (r *GormExpenseRepository) filtered(ctx context.Context, businessID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Scopes(businessScope(businessID), searchScope(filter.Search, "description", "paid_by", "receipt_number"))
	for _, key := range []string{"property_id", "unit_id", "category", "payment_method"} {
		if v, ok := stringFilter(filter, key); ok {
			q = q.Where(key+" = ?", v)
		}
	}
	if from, ok := timeFilter(filter, "date_from"); ok {
		q = q.Where("expense_date >= ?", from)
	}
	if to, ok := timeFilter(filter, "date_to"); ok {
		q = q.Where("expense_date <= ?", to)
	}
	return q
}

// SummarizeForBusiness totals expenses per category, largest first
func (r *GormExpenseRepository) SummarizeForBusiness(ctx context.Context, businessID, propertyID uuid.UUID, period expense.Period) (*expense.Summary, error) {
	q := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Scopes(businessScope(businessID))
	if propertyID != uuid.Nil {
		q = q.Where("property_id = ?", propertyID)
	}
	if !period.From.IsZero() {
		q = q.Where("expense_date >= ?", period.From)
	}
	if !period.To.IsZero() {
		q = q.Where("expense_date <= ?", period.To)
	}

	var rows []expense.CategoryTotal
	err := q.Select("category, COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS count").
		Group("category").
		Order("total_amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "expense")
	}
	return expense.NewSummary(rows), nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, e *expense.Expense) error {
	return translateError(r.db.WithContext(ctx).Save(models.ExpenseModelFromDomain(e)).Error, "expense")
}

// DeleteForBusiness deletes an expense within a business
func (r *GormExpenseRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).Delete(&models.ExpenseModel{})
	if result.Error != nil {
		return translateError(result.Error, "expense")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ expense.Repository = (*GormExpenseRepository)(nil)
