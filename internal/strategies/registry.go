// Package strategies implements one vehicle-priority strategy per
// financial archetype. Each strategy consumes a client profile and the
// capacity calculator, and emits seeds plus the ordered per-domain
// vehicle lists the waterfall allocator walks. Priority order itself,
// not only capacities, differs per archetype, which is why these are
// hand-authored rather than derived.
package strategies

import (
	"nestegg/internal/core"
	"nestegg/internal/engine"
)

// The nine archetype ids the intake classifier can assign. Unknown ids
// fail closed in the engine registry.
const (
	GettingStarted core.Archetype = "getting_started"
	SteadySaver    core.Archetype = "steady_saver"
	HighEarner     core.Archetype = "high_earner"
	BusinessOwner  core.Archetype = "business_owner"
	SideHustler    core.Archetype = "side_hustler"
	FamilyFocused  core.Archetype = "family_focused"
	LateStarter    core.Archetype = "late_starter"
	PreRetiree     core.Archetype = "pre_retiree"
	WealthBuilder  core.Archetype = "wealth_builder"
)

// DefaultRegistry returns the closed strategy table with all nine
// archetypes registered. Adding an archetype means adding one entry
// here, never editing a dispatch chain.
func DefaultRegistry() *engine.Registry {
	reg := engine.NewRegistry()
	reg.Register(gettingStarted{})
	reg.Register(steadySaver{})
	reg.Register(highEarner{})
	reg.Register(businessOwner{})
	reg.Register(sideHustler{})
	reg.Register(familyFocused{})
	reg.Register(lateStarter{})
	reg.Register(preRetiree{})
	reg.Register(wealthBuilder{})
	return reg
}
