package strategies

import (
	"nestegg/internal/core"
	"nestegg/internal/engine"
)

// gettingStarted serves young households early in their careers:
// modest income, usually no dependents. Free employer money first,
// then Roth space while their tax bracket is low.
type gettingStarted struct{}

func (gettingStarted) Archetype() core.Archetype { return GettingStarted }

func (gettingStarted) Build(p core.ClientProfile, calc *engine.Calculator) (core.Seeds, core.VehicleOrders, error) {
	seeds := core.Seeds{}

	match, matchSeed := employerMatch(p)
	if matchSeed.Cents > 0 {
		seeds[core.Vehicle401kMatch] = matchSeed
	}
	if p.Employer.CurrentDeferral.Cents > 0 {
		seeds[core.Vehicle401kRoth] = p.Employer.CurrentDeferral
	}

	roth, err := rothIRA(p, calc)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}
	roth401k, err := deferral(calc, core.Vehicle401kRoth, false, p.Age)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}

	return seeds, core.VehicleOrders{
		Retirement: sealed(match, roth, roth401k),
		Education: []core.Vehicle{
			// Starter households rarely have dependents; the general
			// savings vehicle keeps the list useful when they do not.
			{Name: core.Vehicle529, Domain: core.DomainEducation, Cap: calc.EducationSavingsCapacity(p.Dependents)},
			{Name: core.VehicleEduSavings, Domain: core.DomainEducation, Unbounded: true},
			core.Sink(),
		},
		Health: healthOrder(p, calc),
	}, nil
}
