package engine

import "nestegg/internal/core"

// ReorderByTaxPreference reorders a retirement priority list so the
// preferred tax treatment funds first. "now" moves pre-tax vehicles
// ahead of post-tax ones, "later" the inverse; relative order within
// each group is preserved. "both" or an unrecognized preference is the
// identity. Capacities are never altered, only order. Only the
// retirement list is ever reordered; education and health lists pass
// through the engine untouched.
func ReorderByTaxPreference(list []core.Vehicle, pref core.TaxPreference) []core.Vehicle {
	var preFirst bool
	switch pref {
	case core.TaxNow:
		preFirst = true
	case core.TaxLater:
		preFirst = false
	default:
		out := make([]core.Vehicle, len(list))
		copy(out, list)
		return out
	}

	// The sink stays pinned at the end regardless of its tax class.
	pre := make([]core.Vehicle, 0, len(list))
	post := make([]core.Vehicle, 0, len(list))
	tail := make([]core.Vehicle, 0, 1)
	for _, v := range list {
		switch {
		case v.Name == core.VehicleFamilyBank:
			tail = append(tail, v)
		case v.PreTax:
			pre = append(pre, v)
		default:
			post = append(post, v)
		}
	}

	out := make([]core.Vehicle, 0, len(list))
	if preFirst {
		out = append(out, pre...)
		out = append(out, post...)
	} else {
		out = append(out, post...)
		out = append(out, pre...)
	}
	return append(out, tail...)
}
