package strategies

import (
	"nestegg/internal/core"
	"nestegg/internal/engine"
)

// familyFocused serves households whose stated priority is their
// children: a deeper education list with custodial and prepaid-tuition
// options behind the tax-advantaged plans, and a spousal IRA when a
// joint filer has a non-working spouse's contribution room to use.
type familyFocused struct{}

func (familyFocused) Archetype() core.Archetype { return FamilyFocused }

func (familyFocused) Build(p core.ClientProfile, calc *engine.Calculator) (core.Seeds, core.VehicleOrders, error) {
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

	retirement := []core.Vehicle{match, trad401k, roth}
	if p.Filing == core.MarriedJoint {
		spousal, err := rothIRA(p, calc)
		if err != nil {
			return nil, core.VehicleOrders{}, err
		}
		spousal.Name = core.VehicleSpousalRothIRA
		retirement = append(retirement, spousal)
	}

	education := []core.Vehicle{
		{Name: core.Vehicle529, Domain: core.DomainEducation, Cap: calc.EducationSavingsCapacity(p.Dependents)},
		{Name: core.VehicleCoverdell, Domain: core.DomainEducation, Cap: calc.CoverdellCapacity(p.Dependents)},
		{Name: core.VehiclePrepaid, Domain: core.DomainEducation, Cap: calc.EducationSavingsCapacity(p.Dependents)},
		{Name: core.VehicleCustodial, Domain: core.DomainEducation, Unbounded: true},
		core.Sink(),
	}

	return seeds, core.VehicleOrders{
		Retirement: sealed(retirement...),
		Education:  education,
		Health:     healthOrder(p, calc),
	}, nil
}
