// Package limits holds the year-versioned statutory contribution limit
// tables. A Table is loaded once at process start and injected into the
// engine; nothing here is mutable at run time.
package limits

import (
	"errors"
	"fmt"

	"nestegg/internal/core"
)

// Account kinds the retirement capacity calculator understands. The
// enhanced age-60 catch-up tier applies to employee-deferral kinds only.
const (
	KindEmployeeDeferral AccountKind = "employee_deferral" // 401k, 403b, 457b, solo-401k employee side
	KindIRA              AccountKind = "ira"               // traditional and Roth share one ceiling
	KindSEP              AccountKind = "sep"
	KindSimple           AccountKind = "simple"
	KindSoloEmployer     AccountKind = "solo_employer"
)

type (
	AccountKind string

	// RetirementLimit is the annual ceiling for one account kind, in
	// cents, with its age-banded catch-up add-ons. CatchUp60 is zero
	// for kinds without the enhanced tier.
	RetirementLimit struct {
		Base      int64
		CatchUp50 int64
		CatchUp60 int64
	}

	// PhaseOutBand is an income window, in annual cents. Below Floor
	// the capacity is untouched; at or above Ceiling it is zero.
	PhaseOutBand struct {
		Floor   int64
		Ceiling int64
	}

	// Table carries every statutory constant for one plan year.
	Table struct {
		Year int

		Retirement map[AccountKind]RetirementLimit

		HSASelfOnly  int64
		HSAFamily    int64
		HSACatchUp55 int64

		// HealthFSA is the annual health flexible spending account
		// ceiling, shared by the limited-purpose variant.
		HealthFSA int64

		// EducationPerDependent is the annual per-beneficiary ceiling
		// applied to 529-style contributions; CoverdellPerDependent is
		// the much lower ESA ceiling.
		EducationPerDependent int64
		CoverdellPerDependent int64

		RothIRAPhaseOut  map[core.FilingStatus]PhaseOutBand
		TradIRADeduction map[core.FilingStatus]PhaseOutBand
	}
)

// ErrMissingEntry marks a lookup for a constant the table does not
// carry. Callers treat it as a configuration fault, never as zero.
var ErrMissingEntry = errors.New("limit table missing entry")

const dollars = 100

var tables = map[int]*Table{
	2024: {
		Year: 2024,
		Retirement: map[AccountKind]RetirementLimit{
			KindEmployeeDeferral: {Base: 23000 * dollars, CatchUp50: 7500 * dollars, CatchUp60: 7500 * dollars},
			KindIRA:              {Base: 7000 * dollars, CatchUp50: 1000 * dollars},
			KindSEP:              {Base: 69000 * dollars},
			KindSimple:           {Base: 16000 * dollars, CatchUp50: 3500 * dollars, CatchUp60: 3500 * dollars},
			KindSoloEmployer:     {Base: 46000 * dollars},
		},
		HSASelfOnly:           4150 * dollars,
		HSAFamily:             8300 * dollars,
		HSACatchUp55:          1000 * dollars,
		HealthFSA:             3200 * dollars,
		EducationPerDependent: 18000 * dollars,
		CoverdellPerDependent: 2000 * dollars,
		RothIRAPhaseOut: map[core.FilingStatus]PhaseOutBand{
			core.Single:          {Floor: 146000 * dollars, Ceiling: 161000 * dollars},
			core.HeadOfHousehold: {Floor: 146000 * dollars, Ceiling: 161000 * dollars},
			core.MarriedJoint:    {Floor: 230000 * dollars, Ceiling: 240000 * dollars},
			core.MarriedSeparate: {Floor: 0, Ceiling: 10000 * dollars},
		},
		TradIRADeduction: map[core.FilingStatus]PhaseOutBand{
			core.Single:          {Floor: 77000 * dollars, Ceiling: 87000 * dollars},
			core.HeadOfHousehold: {Floor: 77000 * dollars, Ceiling: 87000 * dollars},
			core.MarriedJoint:    {Floor: 123000 * dollars, Ceiling: 143000 * dollars},
			core.MarriedSeparate: {Floor: 0, Ceiling: 10000 * dollars},
		},
	},
	2025: {
		Year: 2025,
		Retirement: map[AccountKind]RetirementLimit{
			KindEmployeeDeferral: {Base: 23500 * dollars, CatchUp50: 7500 * dollars, CatchUp60: 11250 * dollars},
			KindIRA:              {Base: 7000 * dollars, CatchUp50: 1000 * dollars},
			KindSEP:              {Base: 70000 * dollars},
			KindSimple:           {Base: 16500 * dollars, CatchUp50: 3500 * dollars, CatchUp60: 5250 * dollars},
			KindSoloEmployer:     {Base: 46500 * dollars},
		},
		HSASelfOnly:           4300 * dollars,
		HSAFamily:             8550 * dollars,
		HSACatchUp55:          1000 * dollars,
		HealthFSA:             3300 * dollars,
		EducationPerDependent: 19000 * dollars,
		CoverdellPerDependent: 2000 * dollars,
		RothIRAPhaseOut: map[core.FilingStatus]PhaseOutBand{
			core.Single:          {Floor: 150000 * dollars, Ceiling: 165000 * dollars},
			core.HeadOfHousehold: {Floor: 150000 * dollars, Ceiling: 165000 * dollars},
			core.MarriedJoint:    {Floor: 236000 * dollars, Ceiling: 246000 * dollars},
			core.MarriedSeparate: {Floor: 0, Ceiling: 10000 * dollars},
		},
		TradIRADeduction: map[core.FilingStatus]PhaseOutBand{
			core.Single:          {Floor: 79000 * dollars, Ceiling: 89000 * dollars},
			core.HeadOfHousehold: {Floor: 79000 * dollars, Ceiling: 89000 * dollars},
			core.MarriedJoint:    {Floor: 126000 * dollars, Ceiling: 146000 * dollars},
			core.MarriedSeparate: {Floor: 0, Ceiling: 10000 * dollars},
		},
	},
}

// DefaultYear is the plan year used when the deployment does not pin one.
const DefaultYear = 2025

// ForYear returns the limit table for a plan year.
func ForYear(year int) (*Table, error) {
	t, ok := tables[year]
	if !ok {
		return nil, fmt.Errorf("%w: no table for year %d", ErrMissingEntry, year)
	}
	return t, nil
}

// Years lists the plan years this build carries, in no particular order.
func Years() []int {
	out := make([]int, 0, len(tables))
	for y := range tables {
		out = append(out, y)
	}
	return out
}

// RetirementLimit looks up the ceiling entry for an account kind.
func (t *Table) RetirementLimit(kind AccountKind) (RetirementLimit, error) {
	l, ok := t.Retirement[kind]
	if !ok {
		return RetirementLimit{}, fmt.Errorf("%w: retirement kind %q (year %d)", ErrMissingEntry, kind, t.Year)
	}
	return l, nil
}

// RothPhaseOut looks up the Roth IRA income band for a filing status.
func (t *Table) RothPhaseOut(f core.FilingStatus) (PhaseOutBand, error) {
	b, ok := t.RothIRAPhaseOut[f]
	if !ok {
		return PhaseOutBand{}, fmt.Errorf("%w: roth phase-out for filing status %q (year %d)", ErrMissingEntry, f, t.Year)
	}
	return b, nil
}

// TradIRAPhaseOut looks up the deductible traditional IRA band.
func (t *Table) TradIRAPhaseOut(f core.FilingStatus) (PhaseOutBand, error) {
	b, ok := t.TradIRADeduction[f]
	if !ok {
		return PhaseOutBand{}, fmt.Errorf("%w: trad IRA phase-out for filing status %q (year %d)", ErrMissingEntry, f, t.Year)
	}
	return b, nil
}
