package strategies

import (
	"nestegg/internal/core"
	"nestegg/internal/engine"
)

// wealthBuilder serves households who routinely max the statutory
// accounts: the backdoor Roth is assumed rather than discovered, a
// limited-purpose FSA rides alongside the HSA, and taxable brokerage
// accounts absorb the bulk of the budget, including an education-
// earmarked one behind the 529.
type wealthBuilder struct{}

func (wealthBuilder) Archetype() core.Archetype { return WealthBuilder }

func (wealthBuilder) Build(p core.ClientProfile, calc *engine.Calculator) (core.Seeds, core.VehicleOrders, error) {
	seeds := core.Seeds{}

	match, matchSeed := employerMatch(p)
	if matchSeed.Cents > 0 {
		seeds[core.Vehicle401kMatch] = matchSeed
	}
	if p.Employer.CurrentDeferral.Cents > 0 {
		seeds[core.Vehicle401kTraditional] = p.Employer.CurrentDeferral
	}

	trad401k, err := deferral(calc, core.Vehicle401kTraditional, true, p.Age)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}
	ira, err := rothOrBackdoor(p, calc)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}
	brokerage := core.Vehicle{Name: core.VehicleBrokerage, Domain: core.DomainRetirement, Unbounded: true}

	education := []core.Vehicle{
		{Name: core.Vehicle529, Domain: core.DomainEducation, Cap: calc.EducationSavingsCapacity(p.Dependents)},
		{Name: core.VehicleEduBrokerage, Domain: core.DomainEducation, Unbounded: true},
		core.Sink(),
	}

	health := []core.Vehicle{
		hsa(p, calc),
		{Name: core.VehicleLimitedFSA, Domain: core.DomainHealth, Cap: calc.LimitedFSACapacity(), PreTax: true},
		core.Sink(),
	}

	return seeds, core.VehicleOrders{
		Retirement: sealed(match, trad401k, ira, brokerage),
		Education:  education,
		Health:     health,
	}, nil
}
