package strategies

import (
	"nestegg/internal/core"
	"nestegg/internal/engine"
)

// steadySaver is the baseline mid-career employee: capture the match,
// fill the workplace plan, top up an IRA, and overflow into taxable
// savings.
type steadySaver struct{}

func (steadySaver) Archetype() core.Archetype { return SteadySaver }

func (steadySaver) Build(p core.ClientProfile, calc *engine.Calculator) (core.Seeds, core.VehicleOrders, error) {
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
	roth, err := rothIRA(p, calc)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}
	brokerage := core.Vehicle{Name: core.VehicleBrokerage, Domain: core.DomainRetirement, Unbounded: true}

	return seeds, core.VehicleOrders{
		Retirement: sealed(match, trad401k, roth, brokerage),
		Education:  educationOrder(p, calc),
		Health:     healthOrder(p, calc),
	}, nil
}
