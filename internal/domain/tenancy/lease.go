package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LeaseStatus represents the lifecycle state of a lease
type LeaseStatus string

const (
	LeaseStatusPending    LeaseStatus = "pending"
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusExpired    LeaseStatus = "expired"
	LeaseStatusTerminated LeaseStatus = "terminated"
	LeaseStatusRenewed    LeaseStatus = "renewed"
)

// IsValid reports whether s is a known lease status
func (s LeaseStatus) IsValid() bool {
	switch s {
	case LeaseStatusPending, LeaseStatusActive, LeaseStatusExpired,
		LeaseStatusTerminated, LeaseStatusRenewed:
		return true
	}
	return false
}

// Signatory identifies a party signing a lease
type Signatory string

const (
	SignatoryTenant   Signatory = "tenant"
	SignatoryLandlord Signatory = "landlord"
)

// DefaultExpiryWindowDays is the look-ahead used for expiring lease reports
const DefaultExpiryWindowDays = 30

// LeaseTerms are the negotiable fields of a lease
type LeaseTerms struct {
	StartDate     time.Time
	EndDate       time.Time
	RentAmount    decimal.Decimal
	DepositAmount decimal.Decimal
	PaymentDueDay int
	LateFee       decimal.Decimal
	Terms         string
}

// Validate checks the terms for internal consistency
func (t LeaseTerms) Validate() error {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Lease start and end dates are required")
	}
	if !t.EndDate.After(t.StartDate) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Lease end date must be after start date")
	}
	if t.RentAmount.IsNegative() || t.DepositAmount.IsNegative() || t.LateFee.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Lease amounts cannot be negative")
	}
	if t.PaymentDueDay < 1 || t.PaymentDueDay > 28 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Payment due day must be between 1 and 28")
	}
	return nil
}

// Lease binds a tenant to a unit for a term. It is pending until both
// parties have signed.
type Lease struct {
	shared.BusinessAggregateRoot
	TenantID         uuid.UUID
	UnitID           uuid.UUID
	LeaseTerms
	Status           LeaseStatus
	DocumentKey      string
	SignedByTenant   bool
	SignedByLandlord bool
	SignedDate       *time.Time
	RenewedFromID    *uuid.UUID
}

// NewLease drafts a pending lease
func NewLease(businessID, tenantID, unitID uuid.UUID, terms LeaseTerms) (*Lease, error) {
	if tenantID == uuid.Nil || unitID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Lease requires a tenant and a unit")
	}
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	l := &Lease{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		TenantID:              tenantID,
		UnitID:                unitID,
		LeaseTerms:            terms,
		Status:                LeaseStatusPending,
	}
	l.AddDomainEvent(NewLeaseEvent(EventTypeLeaseCreated, l))
	return l, nil
}

// UpdateTerms rewrites the terms of a lease that is not yet closed
func (l *Lease) UpdateTerms(terms LeaseTerms) error {
	if l.IsClosed() {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Cannot edit a %s lease", l.Status)
	}
	if err := terms.Validate(); err != nil {
		return err
	}
	l.LeaseTerms = terms
	l.Touch()
	return nil
}

// Sign records a party's signature. The lease activates once both have signed.
func (l *Lease) Sign(by Signatory, now time.Time) error {
	if l.Status != LeaseStatusPending && l.Status != LeaseStatusActive {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Cannot sign a %s lease", l.Status)
	}
	switch by {
	case SignatoryTenant:
		l.SignedByTenant = true
	case SignatoryLandlord:
		l.SignedByLandlord = true
	default:
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Unknown signatory: %s", by)
	}

	if l.SignedByTenant && l.SignedByLandlord && l.Status == LeaseStatusPending {
		l.Status = LeaseStatusActive
		l.SignedDate = &now
		l.AddDomainEvent(NewLeaseEvent(EventTypeLeaseActivated, l))
	}
	l.Touch()
	return nil
}

// Terminate ends a lease early
func (l *Lease) Terminate() error {
	if l.IsClosed() {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Lease is already %s", l.Status)
	}
	l.Status = LeaseStatusTerminated
	l.Touch()
	l.AddDomainEvent(NewLeaseEvent(EventTypeLeaseTerminated, l))
	return nil
}

// Expire closes an active lease whose end date has passed
func (l *Lease) Expire(now time.Time) bool {
	if l.Status != LeaseStatusActive || !now.After(l.EndDate) {
		return false
	}
	l.Status = LeaseStatusExpired
	l.Touch()
	l.AddDomainEvent(NewLeaseEvent(EventTypeLeaseExpired, l))
	return true
}

// Renew closes this lease and returns its successor running from now to
// newEnd. Signatures carry over, so the successor starts active. A zero
// newRent keeps the current rent.
func (l *Lease) Renew(newEnd time.Time, newRent decimal.Decimal, now time.Time) (*Lease, error) {
	if l.Status != LeaseStatusActive && l.Status != LeaseStatusExpired {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidState, "Cannot renew a %s lease", l.Status)
	}
	terms := l.LeaseTerms
	terms.StartDate = now
	terms.EndDate = newEnd
	if newRent.IsPositive() {
		terms.RentAmount = newRent
	}

	next, err := NewLease(l.BusinessID, l.TenantID, l.UnitID, terms)
	if err != nil {
		return nil, err
	}
	prevID := l.ID
	next.RenewedFromID = &prevID
	next.SignedByTenant = true
	next.SignedByLandlord = true
	next.SignedDate = &now
	next.Status = LeaseStatusActive

	l.Status = LeaseStatusRenewed
	l.Touch()
	l.AddDomainEvent(NewLeaseEvent(EventTypeLeaseRenewed, l))
	return next, nil
}

// IsClosed reports whether the lease can no longer change
func (l *Lease) IsClosed() bool {
	return l.Status == LeaseStatusExpired || l.Status == LeaseStatusTerminated || l.Status == LeaseStatusRenewed
}

// ExpiresWithin reports whether an active lease ends within days of now
func (l *Lease) ExpiresWithin(now time.Time, days int) bool {
	if l.Status != LeaseStatusActive {
		return false
	}
	limit := now.AddDate(0, 0, days)
	return !l.EndDate.Before(now) && !l.EndDate.After(limit)
}
