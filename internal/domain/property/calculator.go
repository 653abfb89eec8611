package property

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UtilityCharge is one line of a monthly breakdown
type UtilityCharge struct {
	UtilityID    uuid.UUID       `json:"utility_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	BillingCycle BillingCycle    `json:"billing_cycle"`
}

// MonthlyTotal is the recurring monthly charge of a unit
type MonthlyTotal struct {
	Rent      decimal.Decimal `json:"rent"`
	Utilities []UtilityCharge `json:"utilities"`
	Total     decimal.Decimal `json:"total"`
}

// UtilitySum returns the sum of the utility lines
func (m MonthlyTotal) UtilitySum() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range m.Utilities {
		sum = sum.Add(c.Amount)
	}
	return sum
}

// ComputeMonthlyTotal derives base rent plus the monthly equivalent of every
// included utility. The charge is the unit override when non-zero, otherwise
// the utility's own cost. Lines that normalize to zero are left out and the
// total is rounded to cents. Utilities missing from catalog are skipped.
func ComputeMonthlyTotal(unit *Unit, catalog map[uuid.UUID]*Utility) MonthlyTotal {
	result := MonthlyTotal{
		Rent:      unit.Rent,
		Utilities: []UtilityCharge{},
	}

	total := unit.Rent
	for _, entry := range unit.Utilities {
		if !entry.IsIncluded {
			continue
		}
		utility, ok := catalog[entry.UtilityID]
		if !ok || utility == nil {
			continue
		}

		charge := entry.UnitCharge
		if charge.IsZero() {
			charge = utility.UnitCost
		}
		amount := utility.BillingCycle.MonthlyEquivalent(charge)
		if !amount.IsPositive() {
			continue
		}

		total = total.Add(amount)
		result.Utilities = append(result.Utilities, UtilityCharge{
			UtilityID:    utility.ID,
			Name:         utility.Name,
			Amount:       amount.Round(2),
			BillingCycle: utility.BillingCycle,
		})
	}

	result.Total = total.Round(2)
	return result
}
