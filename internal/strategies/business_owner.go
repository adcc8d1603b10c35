package strategies

import (
	"nestegg/internal/core"
	"nestegg/internal/engine"
	"nestegg/internal/limits"
)

// businessOwner serves self-employed households living on business
// income. Profit distributions are front-loaded as an unbounded
// vehicle ahead of any statutory-limited account: the owner's draw is
// the foundation the tax-advantaged plans stack on. Smaller operations
// get a SIMPLE IRA instead of the solo 401k pair.
type businessOwner struct{}

func (businessOwner) Archetype() core.Archetype { return BusinessOwner }

// simpleIRAThreshold is the annual net profit below which the SIMPLE
// IRA replaces the solo 401k, in cents.
const simpleIRAThreshold = 50_000_00

func (businessOwner) Build(p core.ClientProfile, calc *engine.Calculator) (core.Seeds, core.VehicleOrders, error) {
	seeds := core.Seeds{}

	profitDist := core.Vehicle{
		Name:      core.VehicleProfitDist,
		Domain:    core.DomainRetirement,
		Unbounded: true,
		PreTax:    true,
	}
	if p.NetProfit.Cents > 0 {
		seeds[core.VehicleProfitDist] = p.NetProfit.PerMonth()
	}

	var planVehicles []core.Vehicle
	if p.NetProfit.Cents > 0 && p.NetProfit.Cents < simpleIRAThreshold {
		simple, err := calc.RetirementAccountCapacity(limits.KindSimple, p.Age)
		if err != nil {
			return nil, core.VehicleOrders{}, err
		}
		planVehicles = []core.Vehicle{
			{Name: core.VehicleSimpleIRA, Domain: core.DomainRetirement, Cap: simple, PreTax: true},
		}
	} else {
		employee, err := deferral(calc, core.VehicleSolo401kEmployee, true, p.Age)
		if err != nil {
			return nil, core.VehicleOrders{}, err
		}
		employerCap, err := calc.RetirementAccountCapacity(limits.KindSoloEmployer, p.Age)
		if err != nil {
			return nil, core.VehicleOrders{}, err
		}
		// The employer side is further bounded by 25% of net profit.
		employerCap = employerCap.Min(percentOfAnnual(p.NetProfit, 0.25))
		planVehicles = []core.Vehicle{
			employee,
			{Name: core.VehicleSolo401kEmployer, Domain: core.DomainRetirement, Cap: employerCap, PreTax: true},
		}
	}

	ira, err := rothOrBackdoor(p, calc)
	if err != nil {
		return nil, core.VehicleOrders{}, err
	}

	retirement := append([]core.Vehicle{profitDist}, planVehicles...)
	retirement = append(retirement, ira)

	return seeds, core.VehicleOrders{
		Retirement: sealed(retirement...),
		Education:  educationOrder(p, calc),
		Health:     healthOrder(p, calc),
	}, nil
}
