package persistence

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/rentdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver and ORM failures onto domain error codes.
// what names the entity in messages ("unit", "tenant", ...).
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.WrapDomainError(shared.CodeAlreadyExists, fmt.Sprintf("%s already exists", what), err)
	case errors.Is(err, driver.ErrBadConn):
		return shared.WrapDomainError(shared.CodeUnavailable, "database unavailable", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return shared.WrapDomainError(shared.CodeUnavailable, "database unavailable", err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// lockResult turns a versioned UPDATE result into ErrConcurrencyConflict when no row matched
func lockResult(result *gorm.DB, what string) error {
	if result.Error != nil {
		return translateError(result.Error, what)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainErrorf(shared.CodeConcurrencyConflict, "%s was modified concurrently", what)
	}
	return nil
}
