package strategies

import (
	"nestegg/internal/core"
	"nestegg/internal/engine"
)

// preRetiree serves households within sight of retirement, with a tilt
// toward public-sector and nonprofit plans: 403b plus the 457b, whose
// separate deferral ceiling effectively doubles the workplace space,
// and an annuity bridge behind the statutory accounts. Health savings
// lead with the HSA since medical costs dominate early retirement.
type preRetiree struct{}

func (preRetiree) Archetype() core.Archetype { return PreRetiree }

func (preRetiree) Build(p core.ClientProfile, calc *engine.Calculator) (core.Seeds, core.VehicleOrders, error) {
	seeds := core.Seeds{}

	match, matchSeed := employerMatch(p)
	if matchSeed.Cents > 0 {
		seeds[core.Vehicle401kMatch] = matchSeed
	}
	if p.Employer.CurrentDeferral.Cents > 0 {
		seeds[core.Vehicle403b] = p.Employer.CurrentDeferral
	}

	plan403b, err := deferral(calc, core.Vehicle403b, true, p.Age)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}
	plan457b, err := deferral(calc, core.Vehicle457b, true, p.Age)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}
	trad, err := tradIRA(p, calc)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}
	annuity := core.Vehicle{
		Name:   core.VehicleAnnuity,
		Domain: core.DomainRetirement,
		Cap:    percentOfAnnual(p.GrossIncome, 0.10),
		Note:   "income bridge until pension and social security start",
	}

	health := []core.Vehicle{
		hsa(p, calc),
		{Name: core.VehicleHealthSink, Domain: core.DomainHealth, Unbounded: true},
		core.Sink(),
	}

	return seeds, core.VehicleOrders{
		Retirement: sealed(match, plan403b, plan457b, trad, annuity),
		Education:  educationOrder(p, calc),
		Health:     health,
	}, nil
}
