package strategies

import (
	"log/slog"

	"nestegg/internal/core"
	"nestegg/internal/engine"
	"nestegg/internal/limits"
)

// employerMatch builds the employer-match vehicle and, when the
// household already defers into the plan, the matching seed that is
// flowing today. Unparsable match text caps the match at zero with a
// logged diagnostic; it is never a fault.
func employerMatch(p core.ClientProfile) (core.Vehicle, core.Money) {
	v := core.Vehicle{Name: core.Vehicle401kMatch, Domain: core.DomainRetirement, PreTax: true}
	if !p.Employer.Offered {
		return v, core.Money{}
	}
	rule := engine.ParseMatchText(p.Employer.MatchText)
	if !rule.OK {
		if p.Employer.MatchText != "" {
			slog.Warn("employer match text unparsable, treating as no match",
				"client_id", p.ID, "text", p.Employer.MatchText)
		}
		return v, core.Money{}
	}
	v.Cap = rule.MonthlyCap(p.GrossIncome)

	var seed core.Money
	if p.Employer.CurrentDeferral.Cents > 0 {
		matched := core.Money{Cents: int64(float64(p.Employer.CurrentDeferral.Cents) * rule.Rate)}
		seed = matched.Min(v.Cap)
	}
	return v, seed
}

// deferral builds an employee-deferral vehicle (401k, 403b, 457b,
// solo-401k employee side) with its age-banded capacity.
func deferral(calc *engine.Calculator, name string, preTax bool, age int) (core.Vehicle, error) {
	cap, err := calc.RetirementAccountCapacity(limits.KindEmployeeDeferral, age)
	if err != nil {
		return core.Vehicle{}, err
	}
	return core.Vehicle{Name: name, Domain: core.DomainRetirement, Cap: cap, PreTax: preTax}, nil
}

// rothOrBackdoor returns the direct Roth IRA with its phase-out
// applied, or the backdoor substitute once income zeroes the direct
// path. The backdoor gets the full IRA capacity and a procedural note;
// a pre-existing pre-tax IRA balance forces the pro-rata warning,
// otherwise the clean-conversion note.
func rothOrBackdoor(p core.ClientProfile, calc *engine.Calculator) (core.Vehicle, error) {
	cap, err := calc.RetirementAccountCapacity(limits.KindIRA, p.Age)
	if err != nil {
		return core.Vehicle{}, err
	}
	band, err := calc.Limits.RothPhaseOut(p.Filing)
	if err != nil {
		return core.Vehicle{}, err
	}
	direct := engine.ApplyPhaseOut(core.Vehicle{
		Name:   core.VehicleRothIRA,
		Domain: core.DomainRetirement,
		Cap:    cap,
	}, p.GrossIncome, band)
	if direct.Cap.Cents > 0 {
		return direct, nil
	}

	note := "contribute after-tax to a traditional IRA, then convert promptly"
	if p.HasPretaxIRA {
		note = "pre-tax IRA balance triggers pro-rata taxation on conversion; review before converting"
	}
	return core.Vehicle{
		Name:   core.VehicleBackdoorRoth,
		Domain: core.DomainRetirement,
		Cap:    cap,
		Note:   note,
	}, nil
}

// rothIRA builds the direct Roth IRA with its phase-out applied and no
// backdoor substitution. A fully phased-out vehicle stays in the list
// at capacity zero.
func rothIRA(p core.ClientProfile, calc *engine.Calculator) (core.Vehicle, error) {
	cap, err := calc.RetirementAccountCapacity(limits.KindIRA, p.Age)
	if err != nil {
		return core.Vehicle{}, err
	}
	band, err := calc.Limits.RothPhaseOut(p.Filing)
	if err != nil {
		return core.Vehicle{}, err
	}
	v := core.Vehicle{Name: core.VehicleRothIRA, Domain: core.DomainRetirement, Cap: cap}
	return engine.ApplyPhaseOut(v, p.GrossIncome, band), nil
}

// tradIRA builds the deductible traditional IRA with the deduction
// phase-out applied.
func tradIRA(p core.ClientProfile, calc *engine.Calculator) (core.Vehicle, error) {
	cap, err := calc.RetirementAccountCapacity(limits.KindIRA, p.Age)
	if err != nil {
		return core.Vehicle{}, err
	}
	band, err := calc.Limits.TradIRAPhaseOut(p.Filing)
	if err != nil {
		return core.Vehicle{}, err
	}
	v := core.Vehicle{Name: core.VehicleTraditionalIRA, Domain: core.DomainRetirement, Cap: cap, PreTax: true}
	return engine.ApplyPhaseOut(v, p.GrossIncome, band), nil
}

// hsa builds the HSA vehicle. Ineligibility leaves it in the list at
// capacity zero rather than dropping it.
func hsa(p core.ClientProfile, calc *engine.Calculator) core.Vehicle {
	return core.Vehicle{
		Name:   core.VehicleHSA,
		Domain: core.DomainHealth,
		Cap:    calc.HealthSavingsCapacity(p.HSAEligible, p.Age, p.Filing),
		PreTax: true,
	}
}

// healthOrder is the default health list: HSA then the sink.
func healthOrder(p core.ClientProfile, calc *engine.Calculator) []core.Vehicle {
	return []core.Vehicle{hsa(p, calc), core.Sink()}
}

// educationOrder is the default education list: 529 then Coverdell,
// then the sink. Without dependents both carry zero capacity.
func educationOrder(p core.ClientProfile, calc *engine.Calculator) []core.Vehicle {
	return []core.Vehicle{
		{Name: core.Vehicle529, Domain: core.DomainEducation, Cap: calc.EducationSavingsCapacity(p.Dependents)},
		{Name: core.VehicleCoverdell, Domain: core.DomainEducation, Cap: calc.CoverdellCapacity(p.Dependents)},
		core.Sink(),
	}
}

// sealed appends the family bank sink, keeping the invariant that
// every priority list terminates with it.
func sealed(list ...core.Vehicle) []core.Vehicle {
	return append(list, core.Sink())
}

// percentOfAnnual returns pct of an annual amount as a monthly cap.
func percentOfAnnual(annual core.Money, pct float64) core.Money {
	return core.Money{Cents: int64(float64(annual.Cents) * pct)}.PerMonth()
}
