package strategies

import (
	"nestegg/internal/core"
	"nestegg/internal/engine"
	"nestegg/internal/limits"
)

// sideHustler covers employees with meaningful self-employment income
// on the side: workplace plan first, then a SEP funded from the side
// income, then Roth space.
type sideHustler struct{}

func (sideHustler) Archetype() core.Archetype { return SideHustler }

func (sideHustler) Build(p core.ClientProfile, calc *engine.Calculator) (core.Seeds, core.VehicleOrders, error) {
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

	sepCap, err := calc.RetirementAccountCapacity(limits.KindSEP, p.Age)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}
	// SEP contributions cannot exceed 25% of the side income.
	sepCap = sepCap.Min(percentOfAnnual(p.NetProfit, 0.25))
	sep := core.Vehicle{Name: core.VehicleSEPIRA, Domain: core.DomainRetirement, Cap: sepCap, PreTax: true}

	roth, err := rothIRA(p, calc)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}

	return seeds, core.VehicleOrders{
		Retirement: sealed(match, trad401k, sep, roth),
		Education:  educationOrder(p, calc),
		Health:     healthOrder(p, calc),
	}, nil
}
