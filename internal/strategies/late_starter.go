package strategies

import (
	"nestegg/internal/core"
	"nestegg/internal/engine"
)

// lateStarter serves households who began saving seriously after 50:
// every catch-up tier matters, so the strategy pushes the workplace
// plan and both IRA flavors before anything taxable.
type lateStarter struct{}

func (lateStarter) Archetype() core.Archetype { return LateStarter }

func (lateStarter) Build(p core.ClientProfile, calc *engine.Calculator) (core.Seeds, core.VehicleOrders, error) {
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
	trad, err := tradIRA(p, calc)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}
	roth, err := rothIRA(p, calc)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}

	return seeds, core.VehicleOrders{
		Retirement: sealed(match, trad401k, trad, roth),
		Education:  educationOrder(p, calc),
		Health:     healthOrder(p, calc),
	}, nil
}
