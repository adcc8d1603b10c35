package engine

import (
	"nestegg/internal/core"
	"nestegg/internal/limits"
)

// ApplyPhaseOut shrinks a vehicle's capacity linearly across an income
// band. Below the band the capacity is untouched; at or above the band
// ceiling it becomes zero; inside the band it scales by the remaining
// fraction of the band, floored to whole dollars. The vehicle is never
// removed: a fully phased-out vehicle stays in its list at capacity
// zero and the allocator skips it naturally. Substituting an indirect
// path (backdoor) is the strategy's job, never this function's.
func ApplyPhaseOut(v core.Vehicle, income core.Money, band limits.PhaseOutBand) core.Vehicle {
	if v.Unbounded {
		return v
	}
	if income.Cents < band.Floor {
		return v
	}
	if income.Cents >= band.Ceiling || band.Ceiling <= band.Floor {
		v.Cap = core.Money{}
		return v
	}
	width := band.Ceiling - band.Floor
	over := income.Cents - band.Floor
	// cap' = cap * (1 - over/width), in integer arithmetic.
	scaled := v.Cap.Cents * (width - over) / width
	v.Cap = core.Money{Cents: scaled}.FloorToDollar()
	return v
}
