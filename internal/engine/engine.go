package engine

import (
	"fmt"
	"log/slog"

	"nestegg/internal/core"
)

// Strategy builds the vehicle priority lists and seeds for one
// archetype. Implementations must read only their declared inputs,
// default missing optional fields to documented neutral values, and
// terminate every list with the family bank sink.
type Strategy interface {
	Archetype() core.Archetype
	Build(p core.ClientProfile, calc *Calculator) (core.Seeds, core.VehicleOrders, error)
}

// Registry is the closed strategy table mapping archetype ids to their
// builders. It is populated once at startup; lookups of unregistered
// ids fail closed with a ConfigurationError.
type Registry struct {
	strategies map[core.Archetype]Strategy
}

// NewRegistry returns an empty strategy table.
func NewRegistry() *Registry {
	return &Registry{strategies: map[core.Archetype]Strategy{}}
}

// Register adds a strategy under its archetype id. Registering the
// same id twice keeps the later entry.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Archetype()] = s
}

// Get returns the strategy for an archetype id.
func (r *Registry) Get(id core.Archetype) (Strategy, error) {
	s, ok := r.strategies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownArchetype, id)
	}
	return s, nil
}

// Archetypes lists the registered archetype ids.
func (r *Registry) Archetypes() []core.Archetype {
	out := make([]core.Archetype, 0, len(r.strategies))
	for id := range r.strategies {
		out = append(out, id)
	}
	return out
}

// Engine runs the full allocation pipeline for one client profile. It
// is stateless across invocations: every run is a pure computation
// over one profile, so a single Engine may serve concurrent batch
// callers without locking.
type Engine struct {
	calc   *Calculator
	reg    *Registry
	logger *slog.Logger
}

// New assembles an engine from a calculator and a populated registry.
func New(calc *Calculator, reg *Registry, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{calc: calc, reg: reg, logger: logger}
}

// Calculator exposes the capacity calculator, mainly for strategies
// under test.
func (e *Engine) Calculator() *Calculator {
	return e.calc
}

// Run computes the actual/ideal allocation table for one profile:
// dispatch to the archetype strategy, reorder the retirement list by
// tax preference, split the monthly budget across domains, and run the
// waterfall. Deterministic and idempotent; an unchanged profile yields
// an identical result.
func (e *Engine) Run(p core.ClientProfile) (core.AllocationResult, error) {
	if err := p.Validate(); err != nil {
		return core.AllocationResult{}, fmt.Errorf("validate profile: %w", err)
	}

	strategy, err := e.reg.Get(p.ArchetypeID)
	if err != nil {
		return core.AllocationResult{}, &ConfigurationError{ClientID: p.ID, Err: err}
	}

	seeds, orders, err := strategy.Build(p, e.calc)
	if err != nil {
		if IsConfigurationError(err) {
			return core.AllocationResult{}, &ConfigurationError{ClientID: p.ID, Err: err}
		}
		return core.AllocationResult{}, fmt.Errorf("build vehicle orders: %w", err)
	}

	orders.Retirement = ReorderByTaxPreference(orders.Retirement, p.TaxPref)

	budgets := e.splitBudget(p)
	e.logger.Debug("domain budgets computed",
		"client_id", p.ID,
		"archetype", p.ArchetypeID,
		"retirement", budgets.Retirement.String(),
		"education", budgets.Education.String(),
		"health", budgets.Health.String())

	return Allocate(p.ID, orders, budgets, seeds), nil
}

// splitBudget divides the monthly discretionary amount across domains
// by normalized importance scores. Education weight drops to zero with
// no dependents and health to zero without HSA eligibility; all-zero
// scores fall back to a 70/20/10 weighting before that zeroing. Any
// residual weight collapse sends everything to retirement.
func (e *Engine) splitBudget(p core.ClientProfile) DomainBudgets {
	monthly := p.MonthlySavings
	if monthly.IsZero() && p.SavingsRate > 0 && p.GrossIncome.Cents > 0 {
		monthly = core.Money{Cents: int64(float64(p.GrossIncome.Cents) * p.SavingsRate)}.PerMonth()
		e.logger.Info("monthly savings defaulted from savings rate",
			"client_id", p.ID, "rate", p.SavingsRate, "monthly", monthly.String())
	}

	wR, wE, wH := p.Scores.Retirement, p.Scores.Education, p.Scores.Health
	if wR == 0 && wE == 0 && wH == 0 {
		wR, wE, wH = 7, 2, 1
		e.logger.Info("importance scores absent, using default weighting",
			"client_id", p.ID)
	}
	if p.Dependents <= 0 {
		wE = 0
	}
	if !p.HSAEligible {
		wH = 0
	}

	total := wR + wE + wH
	if total == 0 {
		return DomainBudgets{Retirement: monthly}
	}

	edu := core.Money{Cents: monthly.Cents * int64(wE) / int64(total)}
	health := core.Money{Cents: monthly.Cents * int64(wH) / int64(total)}
	// Retirement takes the integer-division remainder so the three
	// budgets always sum exactly to the monthly amount.
	ret := monthly.Sub(edu).Sub(health)
	return DomainBudgets{Retirement: ret, Education: edu, Health: health}
}
