package property

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillingCycle is the recurrence period of a utility charge
type BillingCycle string

const (
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleAnnually  BillingCycle = "annually"
	BillingCyclePerUse    BillingCycle = "per_use"
)

var (
	three  = decimal.NewFromInt(3)
	twelve = decimal.NewFromInt(12)
)

// IsValid reports whether c is a known billing cycle
func (c BillingCycle) IsValid() bool {
	switch c {
	case BillingCycleMonthly, BillingCycleQuarterly, BillingCycleAnnually, BillingCyclePerUse:
		return true
	}
	return false
}

// MonthlyEquivalent normalizes a charge for this cycle into a monthly amount.
// Per-use charges are metered separately and contribute nothing.
func (c BillingCycle) MonthlyEquivalent(charge decimal.Decimal) decimal.Decimal {
	switch c {
	case BillingCycleMonthly:
		return charge
	case BillingCycleQuarterly:
		return charge.Div(three)
	case BillingCycleAnnually:
		return charge.Div(twelve)
	default:
		return decimal.Zero
	}
}

// Utility is a chargeable service (water, power, internet...) offered by a business
type Utility struct {
	shared.BusinessAggregateRoot
	Name         string
	Description  string
	UnitCost     decimal.Decimal
	BillingCycle BillingCycle
	IsActive     bool
}

// NewUtility creates an active utility
func NewUtility(businessID uuid.UUID, name string, unitCost decimal.Decimal, cycle BillingCycle) (*Utility, error) {
	if err := validateUtility(name, unitCost, cycle); err != nil {
		return nil, err
	}
	u := &Utility{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  strings.TrimSpace(name),
		UnitCost:              unitCost,
		BillingCycle:          cycle,
		IsActive:              true,
	}
	u.AddDomainEvent(NewUtilityCreatedEvent(u))
	return u, nil
}

// Update replaces the utility's pricing and description
func (u *Utility) Update(name, description string, unitCost decimal.Decimal, cycle BillingCycle) error {
	if err := validateUtility(name, unitCost, cycle); err != nil {
		return err
	}
	u.Name = strings.TrimSpace(name)
	u.Description = description
	u.UnitCost = unitCost
	u.BillingCycle = cycle
	u.Touch()
	return nil
}

// SetActive toggles whether the utility can be attached to units
func (u *Utility) SetActive(active bool) {
	if u.IsActive == active {
		return
	}
	u.IsActive = active
	u.Touch()
}

func validateUtility(name string, unitCost decimal.Decimal, cycle BillingCycle) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Utility name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Utility name cannot exceed 100 characters")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Utility cost cannot be negative")
	}
	if !cycle.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid billing cycle: %s", cycle)
	}
	return nil
}
