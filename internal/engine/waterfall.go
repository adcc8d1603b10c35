package engine

import "nestegg/internal/core"

// DomainBudgets is the monthly discretionary budget already split
// across the three savings domains.
type DomainBudgets struct {
	Retirement core.Money
	Education  core.Money
	Health     core.Money
}

// Allocate walks each domain's priority list and distributes the
// domain budget vehicle by vehicle, up to each capacity. The family
// bank sink, always last, absorbs whatever no bounded vehicle could
// take, so the full budget is always placed. Actual amounts come
// verbatim from seeds and are never subtracted from the walked budget:
// ideal is computed independently of what is already happening because
// the actual-vs-ideal contrast is the product, not a running ledger.
func Allocate(clientID string, orders core.VehicleOrders, budgets DomainBudgets, seeds core.Seeds) core.AllocationResult {
	result := core.NewResult(clientID)
	var sinkTotal core.Money

	walk := func(domain core.Domain, list []core.Vehicle, budget core.Money) {
		remaining := budget
		for _, v := range list {
			if v.Name == core.VehicleFamilyBank {
				sinkTotal = sinkTotal.Add(remaining)
				remaining = core.Money{}
				continue
			}
			allocated := remaining
			if !v.Unbounded {
				allocated = remaining.Min(v.Cap)
			}
			if allocated.Cents < 0 {
				allocated = core.Money{}
			}
			remaining = remaining.Sub(allocated)
			result.Set(domain, v.Name, core.Allocation{
				Actual: seeds[v.Name],
				Ideal:  allocated,
			})
		}
		// No sink in the list leaves the remainder unplaced; strategies
		// are required to terminate every list with the sink, so this
		// only happens with a hand-built order in tests.
		sinkTotal = sinkTotal.Add(remaining)
	}

	walk(core.DomainRetirement, orders.Retirement, budgets.Retirement)
	walk(core.DomainEducation, orders.Education, budgets.Education)
	walk(core.DomainHealth, orders.Health, budgets.Health)

	result.Set(core.DomainBank, core.VehicleFamilyBank, core.Allocation{Ideal: sinkTotal})
	return result
}
