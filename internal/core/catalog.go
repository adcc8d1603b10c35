package core

// Vehicle catalog. Names double as the stable column identifiers the
// result writers emit, so they never change once released; renaming a
// vehicle means adding a new entry and retiring the old column.
const (
	// Retirement
	Vehicle401kTraditional  = "401k_traditional"
	Vehicle401kRoth         = "401k_roth"
	Vehicle401kMatch        = "401k_match"
	Vehicle403b             = "403b"
	Vehicle457b             = "457b"
	VehicleSolo401kEmployee = "solo_401k_employee"
	VehicleSolo401kEmployer = "solo_401k_employer"
	VehicleSEPIRA           = "sep_ira"
	VehicleSimpleIRA        = "simple_ira"
	VehicleTraditionalIRA   = "traditional_ira"
	VehicleRothIRA          = "roth_ira"
	VehicleBackdoorRoth     = "backdoor_roth_ira"
	VehicleSpousalTradIRA   = "spousal_traditional_ira"
	VehicleSpousalRothIRA   = "spousal_roth_ira"
	VehicleProfitDist       = "profit_distribution"
	VehicleDeferredComp     = "deferred_comp"
	VehicleBrokerage        = "taxable_brokerage"
	VehicleAnnuity          = "annuity"

	// Education
	Vehicle529          = "529_plan"
	VehicleCoverdell    = "coverdell_esa"
	VehicleCustodial    = "custodial_account"
	VehiclePrepaid      = "prepaid_tuition"
	VehicleEduSavings   = "education_savings"
	VehicleEduBrokerage = "education_brokerage"

	// Health
	VehicleHSA        = "hsa"
	VehicleLimitedFSA = "limited_fsa"
	VehicleHealthSink = "health_savings"

	// Overflow
	VehicleFamilyBank = "family_bank"
)

// CatalogEntry describes a vehicle's fixed attributes: the domain it
// belongs to and whether contributions are pre-tax. Capacity is not
// part of the catalog because it depends on the run's inputs.
type CatalogEntry struct {
	Name   string
	Domain Domain
	PreTax bool
}

// Catalog is the closed list of vehicles any archetype may produce.
// Result writers iterate it to emit every column, zero-filled when the
// run's archetype did not produce the vehicle.
var Catalog = []CatalogEntry{
	{Vehicle401kTraditional, DomainRetirement, true},
	{Vehicle401kRoth, DomainRetirement, false},
	{Vehicle401kMatch, DomainRetirement, true},
	{Vehicle403b, DomainRetirement, true},
	{Vehicle457b, DomainRetirement, true},
	{VehicleSolo401kEmployee, DomainRetirement, true},
	{VehicleSolo401kEmployer, DomainRetirement, true},
	{VehicleSEPIRA, DomainRetirement, true},
	{VehicleSimpleIRA, DomainRetirement, true},
	{VehicleTraditionalIRA, DomainRetirement, true},
	{VehicleRothIRA, DomainRetirement, false},
	{VehicleBackdoorRoth, DomainRetirement, false},
	{VehicleSpousalTradIRA, DomainRetirement, true},
	{VehicleSpousalRothIRA, DomainRetirement, false},
	{VehicleProfitDist, DomainRetirement, true},
	{VehicleDeferredComp, DomainRetirement, true},
	{VehicleBrokerage, DomainRetirement, false},
	{VehicleAnnuity, DomainRetirement, false},

	{Vehicle529, DomainEducation, false},
	{VehicleCoverdell, DomainEducation, false},
	{VehicleCustodial, DomainEducation, false},
	{VehiclePrepaid, DomainEducation, false},
	{VehicleEduSavings, DomainEducation, false},
	{VehicleEduBrokerage, DomainEducation, false},

	{VehicleHSA, DomainHealth, true},
	{VehicleLimitedFSA, DomainHealth, true},
	{VehicleHealthSink, DomainHealth, false},
}

// catalogByName is derived once from Catalog for lookups.
var catalogByName = func() map[string]CatalogEntry {
	m := make(map[string]CatalogEntry, len(Catalog))
	for _, e := range Catalog {
		m[e.Name] = e
	}
	return m
}()

// LookupVehicle returns the catalog entry for a vehicle name.
func LookupVehicle(name string) (CatalogEntry, bool) {
	e, ok := catalogByName[name]
	return e, ok
}

// Sink returns the unbounded family bank vehicle that terminates every
// priority list. It lives outside the three savings domains.
func Sink() Vehicle {
	return Vehicle{
		Name:      VehicleFamilyBank,
		Domain:    DomainBank,
		Unbounded: true,
	}
}

// Columns returns the full fixed output column set in catalog order:
// "{domain}_{vehicle}_actual" and "{domain}_{vehicle}_ideal" per
// catalog vehicle, plus the ungrouped "family_bank_ideal".
func Columns() []string {
	cols := make([]string, 0, len(Catalog)*2+1)
	for _, e := range Catalog {
		cols = append(cols,
			string(e.Domain)+"_"+e.Name+"_actual",
			string(e.Domain)+"_"+e.Name+"_ideal",
		)
	}
	cols = append(cols, "family_bank_ideal")
	return cols
}

// Flatten maps an AllocationResult onto the fixed column set. Vehicles
// the run did not produce come out as zero so downstream consumers can
// rely on column presence.
func (r AllocationResult) Flatten() map[string]Money {
	out := make(map[string]Money, len(Catalog)*2+1)
	for _, e := range Catalog {
		a := r.Get(e.Domain, e.Name)
		out[string(e.Domain)+"_"+e.Name+"_actual"] = a.Actual
		out[string(e.Domain)+"_"+e.Name+"_ideal"] = a.Ideal
	}
	out["family_bank_ideal"] = r.Get(DomainBank, VehicleFamilyBank).Ideal
	return out
}
