// Package engine computes the per-household ideal savings allocation:
// capacity calculators, income phase-outs, employer-match parsing, the
// tax-preference reorder and the capacity-constrained waterfall.
package engine

import (
	"nestegg/internal/core"
	"nestegg/internal/limits"
)

// Calculator bundles the pure capacity functions with the injected
// limit table. It performs no I/O and holds no per-client state, so a
// single instance is shared across every run.
type Calculator struct {
	Limits *limits.Table
}

// NewCalculator wraps a loaded limit table.
func NewCalculator(t *limits.Table) *Calculator {
	return &Calculator{Limits: t}
}

// HealthSavingsCapacity returns the monthly HSA ceiling. Ineligible
// households get zero. Joint and head-of-household filers use the
// family ceiling; the age-55 add-on applies on top. A missing or
// negative age means no add-on: capacity defaults toward zero, never
// toward unbounded.
func (c *Calculator) HealthSavingsCapacity(eligible bool, age int, f core.FilingStatus) core.Money {
	if !eligible {
		return core.Money{}
	}
	annual := c.Limits.HSASelfOnly
	if f == core.MarriedJoint || f == core.HeadOfHousehold {
		annual = c.Limits.HSAFamily
	}
	if age >= 55 {
		annual += c.Limits.HSACatchUp55
	}
	return core.Money{Cents: annual}.PerMonth()
}

// EducationSavingsCapacity returns the monthly 529-style ceiling: the
// per-dependent annual ceiling times the dependent count. No
// dependents, no capacity.
func (c *Calculator) EducationSavingsCapacity(dependents int) core.Money {
	if dependents <= 0 {
		return core.Money{}
	}
	return core.Money{Cents: c.Limits.EducationPerDependent * int64(dependents)}.PerMonth()
}

// LimitedFSACapacity returns the monthly limited-purpose FSA ceiling.
func (c *Calculator) LimitedFSACapacity() core.Money {
	return core.Money{Cents: c.Limits.HealthFSA}.PerMonth()
}

// CoverdellCapacity returns the monthly ESA ceiling across dependents.
func (c *Calculator) CoverdellCapacity(dependents int) core.Money {
	if dependents <= 0 {
		return core.Money{}
	}
	return core.Money{Cents: c.Limits.CoverdellPerDependent * int64(dependents)}.PerMonth()
}

// RetirementAccountCapacity returns the monthly ceiling for one account
// kind: the annual base plus the age-banded catch-up, divided by 12.
// The age-50 tier applies to any kind that carries one; the larger
// age-60 tier replaces it for employee-deferral kinds. An unknown kind
// is a configuration fault, not a zero.
func (c *Calculator) RetirementAccountCapacity(kind limits.AccountKind, age int) (core.Money, error) {
	l, err := c.Limits.RetirementLimit(kind)
	if err != nil {
		return core.Money{}, err
	}
	annual := l.Base
	switch {
	case age >= 60 && l.CatchUp60 > 0:
		annual += l.CatchUp60
	case age >= 50:
		annual += l.CatchUp50
	}
	return core.Money{Cents: annual}.PerMonth(), nil
}
