package persistence

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// businessScope restricts a query to one business
func businessScope(businessID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("business_id = ?", businessID)
	}
}

// optionalBusinessScope restricts a query to one business unless businessID
// is uuid.Nil, which the background jobs use to sweep every business.
func optionalBusinessScope(businessID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if businessID == uuid.Nil {
			return db
		}
		return db.Where("business_id = ?", businessID)
	}
}

// searchScope matches filter.Search case-insensitively against columns.
// LOWER(..) LIKE LOWER(..) keeps the query portable to SQLite.
func searchScope(search string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + search + "%"
		clauses := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, col := range columns {
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", col))
			args = append(args, pattern)
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// pageScope applies filter ordering and pagination
func pageScope(filter shared.Filter, sorts sortKeys) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(sorts.orderBy(filter.OrderBy, filter.OrderDir))
		if filter.PageSize > 0 {
			db = db.Offset(filter.Offset()).Limit(filter.PageSize)
		}
		return db
	}
}

// stringFilter returns the non-empty string value stored under key
func stringFilter(filter shared.Filter, key string) (string, bool) {
	v, ok := filter.Filters[key]
	if !ok || v == nil {
		return "", false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// boolFilter returns the bool value stored under key
func boolFilter(filter shared.Filter, key string) (bool, bool) {
	v, ok := filter.Filters[key]
	if !ok || v == nil {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case *bool:
		if t == nil {
			return false, false
		}
		return *t, true
	case string:
		switch strings.ToLower(t) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	return false, false
}

// intFilter returns the int value stored under key
func intFilter(filter shared.Filter, key string) (int, bool) {
	v, ok := filter.Filters[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case *int:
		if t == nil {
			return 0, false
		}
		return *t, true
	}
	return 0, false
}

// timeFilter returns the non-zero time stored under key
func timeFilter(filter shared.Filter, key string) (time.Time, bool) {
	v, ok := filter.Filters[key]
	if !ok || v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	}
	return time.Time{}, false
}
