package strategies

import (
	"nestegg/internal/core"
	"nestegg/internal/engine"
)

// highEarner handles households whose income phases out the direct IRA
// paths: the strategy substitutes the backdoor Roth whenever the
// phase-out zeroes the direct contribution, and adds nonqualified
// deferred compensation ahead of taxable savings.
type highEarner struct{}

func (highEarner) Archetype() core.Archetype { return HighEarner }

func (highEarner) Build(p core.ClientProfile, calc *engine.Calculator) (core.Seeds, core.VehicleOrders, error) {
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

	// Deferred comp has no statutory ceiling; cap it at a tenth of
	// income so the waterfall still reaches taxable savings.
	deferredComp := core.Vehicle{
		Name:   core.VehicleDeferredComp,
		Domain: core.DomainRetirement,
		Cap:    percentOfAnnual(p.GrossIncome, 0.10),
		PreTax: true,
	}
	brokerage := core.Vehicle{Name: core.VehicleBrokerage, Domain: core.DomainRetirement, Unbounded: true}

	return seeds, core.VehicleOrders{
		Retirement: sealed(match, trad401k, ira, deferredComp, brokerage),
		Education:  educationOrder(p, calc),
		Health:     healthOrder(p, calc),
	}, nil
}
