package core

import (
	"errors"
	"strings"
)

const (
	Single          FilingStatus = "single"
	MarriedJoint    FilingStatus = "married_joint"
	MarriedSeparate FilingStatus = "married_separate"
	HeadOfHousehold FilingStatus = "head_of_household"
)

const (
	Employee     EmploymentStatus = "employee"
	SelfEmployed EmploymentStatus = "self_employed"
	BothEmployed EmploymentStatus = "both"
	NotWorking   EmploymentStatus = "not_working"
)

const (
	TaxNow   TaxPreference = "now"
	TaxLater TaxPreference = "later"
	TaxBoth  TaxPreference = "both"
)

const (
	DomainRetirement Domain = "retirement"
	DomainEducation  Domain = "education"
	DomainHealth     Domain = "health"
	DomainBank       Domain = "bank"
)

type (
	FilingStatus     string
	EmploymentStatus string
	TaxPreference    string
	Domain           string
	Archetype        string

	Money struct {
		Cents int64
	}

	// EmployerPlan describes the workplace retirement plan the intake
	// collaborator reported, if any. MatchText is free-form and parsed
	// downstream; CurrentDeferral is the household's existing monthly
	// deferral into the plan.
	EmployerPlan struct {
		Offered         bool
		MatchText       string
		CurrentDeferral Money
	}

	// ImportanceScores are 0-10 ratings the household gave each savings
	// domain. They drive the budget split and the downstream narrative.
	ImportanceScores struct {
		Retirement int
		Education  int
		Health     int
	}

	// ClientProfile is the immutable per-run snapshot of one household.
	// Optional fields carry their zero value when the intake record
	// omitted them; the engine substitutes documented neutral defaults.
	ClientProfile struct {
		ID             string
		Name           string
		Age            int
		Filing         FilingStatus
		Employment     EmploymentStatus
		GrossIncome    Money // annual
		NetProfit      Money // annual self-employment profit
		MonthlySavings Money // discretionary monthly budget
		SavingsRate    float64
		Scores         ImportanceScores
		HSAEligible    bool
		Dependents     int
		HasPretaxIRA   bool
		Employer       EmployerPlan
		TaxPref        TaxPreference
		ArchetypeID    Archetype
		Version        int64
	}

	// Vehicle is one named contribution target inside a single domain.
	// Cap is a monthly ceiling; Unbounded vehicles ignore Cap entirely.
	// Vehicles are stateless and rebuilt on every run because caps
	// depend on that run's inputs.
	Vehicle struct {
		Name      string
		Domain    Domain
		Cap       Money
		Unbounded bool
		PreTax    bool
		Note      string
	}

	// VehicleOrders holds the per-domain funding priority lists. Order
	// encodes priority; the family bank sink terminates every list.
	VehicleOrders struct {
		Retirement []Vehicle
		Education  []Vehicle
		Health     []Vehicle
	}

	// Seeds maps vehicle name to a pre-existing non-discretionary
	// monthly amount (employer deposits, profit distributions). Seeds
	// feed the "actual" side only and never consume waterfall budget.
	Seeds map[string]Money

	// Allocation is the actual/ideal pair the engine computes for one
	// vehicle in one run.
	Allocation struct {
		Actual Money
		Ideal  Money
	}

	// AllocationResult is one run's full output: per domain, vehicle
	// name to its allocation. A later run overwrites the previous one.
	AllocationResult struct {
		ClientID string
		Domains  map[Domain]map[string]Allocation
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrUnknownArchetype = errors.New("unknown archetype")
	ErrEmptyClientID    = errors.New("empty client id")
)

func (f FilingStatus) Valid() bool {
	switch f {
	case Single, MarriedJoint, MarriedSeparate, HeadOfHousehold:
		return true
	}
	return false
}

func (e EmploymentStatus) Valid() bool {
	switch e {
	case Employee, SelfEmployed, BothEmployed, NotWorking:
		return true
	}
	return false
}

// IsMarried reports whether the filing status uses family-level limits.
func (f FilingStatus) IsMarried() bool {
	return f == MarriedJoint || f == MarriedSeparate
}

func (p ClientProfile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrEmptyClientID
	}
	if !p.Filing.Valid() {
		return errors.New("invalid filing status: " + string(p.Filing))
	}
	if !p.Employment.Valid() {
		return errors.New("invalid employment status: " + string(p.Employment))
	}
	if p.ArchetypeID == "" {
		return ErrUnknownArchetype
	}
	return nil
}

// SelfEmployedIncome reports whether any self-employment income exists.
func (p ClientProfile) SelfEmployedIncome() bool {
	return (p.Employment == SelfEmployed || p.Employment == BothEmployed) && p.NetProfit.Cents > 0
}

// NewResult builds an empty AllocationResult with all domain maps ready.
func NewResult(clientID string) AllocationResult {
	return AllocationResult{
		ClientID: clientID,
		Domains: map[Domain]map[string]Allocation{
			DomainRetirement: {},
			DomainEducation:  {},
			DomainHealth:     {},
			DomainBank:       {},
		},
	}
}

// Set records the allocation pair for a vehicle in a domain.
func (r AllocationResult) Set(d Domain, vehicle string, a Allocation) {
	if r.Domains[d] == nil {
		r.Domains[d] = map[string]Allocation{}
	}
	r.Domains[d][vehicle] = a
}

// Get returns the allocation for a vehicle, zero-valued when absent.
func (r AllocationResult) Get(d Domain, vehicle string) Allocation {
	return r.Domains[d][vehicle]
}
