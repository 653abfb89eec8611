package persistence

import (
	"strings"

	"gorm.io/gorm/clause"
)

const defaultSortKey = "created_at"

// sortKeys maps the sort keys a list endpoint accepts to table columns.
// Anything outside the map falls back to created_at, newest first.
type sortKeys map[string]string

func sortable(keys ...string) sortKeys {
	s := sortKeys{"id": "id", "created_at": "created_at", "updated_at": "updated_at"}
	for _, k := range keys {
		s[k] = k
	}
	return s
}

// orderBy resolves a requested key and direction into an ORDER BY column.
// Direction defaults to descending.
func (s sortKeys) orderBy(key, dir string) clause.OrderByColumn {
	col, ok := s[strings.TrimSpace(key)]
	if !ok {
		col = defaultSortKey
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: col},
		Desc:   !strings.EqualFold(strings.TrimSpace(dir), "asc"),
	}
}

var (
	propertySorts = sortable("name", "city", "property_type", "status", "total_units", "occupied_units", "vacant_units")
	unitSorts     = sortable("unit_number", "unit_type", "rent", "deposit", "status", "days_vacant")
	utilitySorts  = sortable("name", "unit_cost", "billing_cycle", "is_active")
	// balance is the stored running balance, not the computed one
	tenantSorts       = sortable("name", "status", "rent", "balance", "move_in_date")
	leaseSorts        = sortable("start_date", "end_date", "rent_amount", "status")
	paymentSorts      = sortable("amount", "payment_type", "payment_date", "due_date", "receipt_number", "is_confirmed")
	maintenanceSorts  = sortable("title", "priority", "status", "scheduled_date", "estimated_cost")
	expenseSorts      = sortable("expense_date", "amount", "category")
	landlordSorts     = sortable("name", "email", "status")
	notificationSorts = sortable("type", "priority", "is_read")
)
