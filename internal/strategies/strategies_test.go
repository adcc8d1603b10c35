package strategies

import (
	"strings"
	"testing"

	"nestegg/internal/core"
	"nestegg/internal/engine"
	"nestegg/internal/limits"
)

func testCalc(t *testing.T) *engine.Calculator {
	t.Helper()
	table, err := limits.ForYear(2025)
	if err != nil {
		t.Fatalf("load limit table: %v", err)
	}
	return engine.NewCalculator(table)
}

func baseProfile() core.ClientProfile {
	return core.ClientProfile{
		ID:             "c1",
		Age:            40,
		Filing:         core.Single,
		Employment:     core.Employee,
		GrossIncome:    core.Dollars(90000),
		NetProfit:      core.Dollars(30000),
		MonthlySavings: core.Dollars(1500),
		HSAEligible:    true,
		Dependents:     1,
		TaxPref:        core.TaxBoth,
		Version:        1,
	}
}

// Every archetype must terminate every domain list with the family
// bank sink and never emit a duplicate vehicle within a list.
func TestEveryArchetypeSealsLists(t *testing.T) {
	calc := testCalc(t)
	reg := DefaultRegistry()

	for _, id := range reg.Archetypes() {
		t.Run(string(id), func(t *testing.T) {
			s, err := reg.Get(id)
			if err != nil {
				t.Fatalf("Get(%s) error = %v", id, err)
			}
			_, orders, err := s.Build(baseProfile(), calc)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			lists := map[string][]core.Vehicle{
				"retirement": orders.Retirement,
				"education":  orders.Education,
				"health":     orders.Health,
			}
			for domain, list := range lists {
				if len(list) == 0 {
					t.Errorf("%s list is empty", domain)
					continue
				}
				last := list[len(list)-1]
				if last.Name != core.VehicleFamilyBank || !last.Unbounded {
					t.Errorf("%s list ends with %q, want unbounded %s", domain, last.Name, core.VehicleFamilyBank)
				}
				seen := map[string]bool{}
				for _, v := range list {
					if seen[v.Name] {
						t.Errorf("%s list has duplicate vehicle %q", domain, v.Name)
					}
					seen[v.Name] = true
					if !v.Unbounded && v.Cap.Cents < 0 {
						t.Errorf("%s/%s negative capacity %d", domain, v.Name, v.Cap.Cents)
					}
				}
			}
		})
	}
}

// End-to-end over every archetype: no finite vehicle's ideal exceeds
// its capacity and the family bank absorbs whatever is left.
func TestEveryArchetypeIdealsRespectCapacities(t *testing.T) {
	calc := testCalc(t)
	reg := DefaultRegistry()
	eng := engine.New(calc, reg, nil)

	for _, id := range reg.Archetypes() {
		t.Run(string(id), func(t *testing.T) {
			p := baseProfile()
			p.ArchetypeID = id

			res, err := eng.Run(p)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			s, _ := reg.Get(id)
			_, orders, err := s.Build(p, calc)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			for _, list := range [][]core.Vehicle{orders.Retirement, orders.Education, orders.Health} {
				for _, v := range list {
					if v.Unbounded {
						continue
					}
					got := res.Get(v.Domain, v.Name).Ideal
					if got.Cents > v.Cap.Cents {
						t.Errorf("%s/%s ideal %d exceeds capacity %d", v.Domain, v.Name, got.Cents, v.Cap.Cents)
					}
				}
			}
		})
	}
}

func TestHighEarnerBackdoorSubstitution(t *testing.T) {
	calc := testCalc(t)

	tests := []struct {
		name        string
		income      int64
		hasPretax   bool
		wantVehicle string
		wantNote    string
	}{
		{
			name:        "below phase-out keeps direct roth",
			income:      100000,
			wantVehicle: core.VehicleRothIRA,
		},
		{
			name:        "above phase-out substitutes backdoor",
			income:      250000,
			wantVehicle: core.VehicleBackdoorRoth,
			wantNote:    "convert promptly",
		},
		{
			name:        "pre-tax ira balance flags pro-rata",
			income:      250000,
			hasPretax:   true,
			wantVehicle: core.VehicleBackdoorRoth,
			wantNote:    "pro-rata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProfile()
			p.GrossIncome = core.Dollars(tt.income)
			p.HasPretaxIRA = tt.hasPretax

			_, orders, err := highEarner{}.Build(p, calc)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			var found *core.Vehicle
			for i, v := range orders.Retirement {
				if v.Name == tt.wantVehicle {
					found = &orders.Retirement[i]
					break
				}
			}
			if found == nil {
				t.Fatalf("retirement list missing %q", tt.wantVehicle)
			}
			if tt.wantVehicle == core.VehicleBackdoorRoth {
				for _, v := range orders.Retirement {
					if v.Name == core.VehicleRothIRA {
						t.Error("backdoor substitution must replace the direct roth, not join it")
					}
				}
				if found.Cap.Cents != 700000/12 {
					t.Errorf("backdoor cap = %d, want full IRA capacity %d", found.Cap.Cents, 700000/12)
				}
			}
			if tt.wantNote != "" && !strings.Contains(found.Note, tt.wantNote) {
				t.Errorf("note %q does not mention %q", found.Note, tt.wantNote)
			}
		})
	}
}

func TestBusinessOwnerProfitDistributionLeads(t *testing.T) {
	calc := testCalc(t)
	p := baseProfile()
	p.Employment = core.SelfEmployed
	p.NetProfit = core.Dollars(120000)

	seeds, orders, err := businessOwner{}.Build(p, calc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	first := orders.Retirement[0]
	if first.Name != core.VehicleProfitDist || !first.Unbounded {
		t.Errorf("first retirement vehicle = %q unbounded=%v, want unbounded %s",
			first.Name, first.Unbounded, core.VehicleProfitDist)
	}
	if got := seeds[core.VehicleProfitDist]; got.Cents != 12000000/12 {
		t.Errorf("profit distribution seed = %d, want %d", got.Cents, 12000000/12)
	}
}

func TestBusinessOwnerPlanSelection(t *testing.T) {
	calc := testCalc(t)

	tests := []struct {
		name      string
		netProfit int64
		want      []string
		wantNot   []string
	}{
		{
			name:      "small operation gets a simple ira",
			netProfit: 40000,
			want:      []string{core.VehicleSimpleIRA},
			wantNot:   []string{core.VehicleSolo401kEmployee, core.VehicleSolo401kEmployer},
		},
		{
			name:      "larger operation gets the solo 401k pair",
			netProfit: 120000,
			want:      []string{core.VehicleSolo401kEmployee, core.VehicleSolo401kEmployer},
			wantNot:   []string{core.VehicleSimpleIRA},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProfile()
			p.Employment = core.SelfEmployed
			p.NetProfit = core.Dollars(tt.netProfit)

			_, orders, err := businessOwner{}.Build(p, calc)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			names := map[string]core.Vehicle{}
			for _, v := range orders.Retirement {
				names[v.Name] = v
			}
			for _, want := range tt.want {
				if _, ok := names[want]; !ok {
					t.Errorf("retirement list missing %q", want)
				}
			}
			for _, not := range tt.wantNot {
				if _, ok := names[not]; ok {
					t.Errorf("retirement list unexpectedly has %q", not)
				}
			}
		})
	}
}

// The solo 401k employer side is bounded by a quarter of net profit
// when that is tighter than the statutory ceiling.
func TestBusinessOwnerEmployerSideProfitBound(t *testing.T) {
	calc := testCalc(t)
	p := baseProfile()
	p.Employment = core.SelfEmployed
	p.NetProfit = core.Dollars(60000)

	_, orders, err := businessOwner{}.Build(p, calc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, v := range orders.Retirement {
		if v.Name != core.VehicleSolo401kEmployer {
			continue
		}
		// 25% of 60k = 15k/yr = 125000 cents/month, well under the
		// statutory employer ceiling.
		if v.Cap.Cents != 1500000/12 {
			t.Errorf("employer cap = %d, want %d", v.Cap.Cents, 1500000/12)
		}
		return
	}
	t.Fatal("solo 401k employer vehicle not found")
}

func TestEmployerMatchSeeding(t *testing.T) {
	calc := testCalc(t)
	p := baseProfile()
	p.GrossIncome = core.Dollars(120000)
	p.Employer = core.EmployerPlan{
		Offered:         true,
		MatchText:       "50% of first 6%",
		CurrentDeferral: core.Dollars(400),
	}

	seeds, orders, err := steadySaver{}.Build(p, calc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Match cap: 120000 * 6% * 50% / 12 = $300/month.
	match := orders.Retirement[0]
	if match.Name != core.Vehicle401kMatch {
		t.Fatalf("first retirement vehicle = %q, want %s", match.Name, core.Vehicle401kMatch)
	}
	if match.Cap.Cents != 30000 {
		t.Errorf("match cap = %d, want 30000", match.Cap.Cents)
	}
	// Seed: 50% of the current $400 deferral, under the cap.
	if got := seeds[core.Vehicle401kMatch]; got.Cents != 20000 {
		t.Errorf("match seed = %d, want 20000", got.Cents)
	}
	if got := seeds[core.Vehicle401kTraditional]; got.Cents != 40000 {
		t.Errorf("deferral seed = %d, want 40000", got.Cents)
	}
}

func TestEmployerMatchUnparsableTextIsNotAFault(t *testing.T) {
	calc := testCalc(t)
	p := baseProfile()
	p.Employer = core.EmployerPlan{Offered: true, MatchText: "ask HR about it"}

	seeds, orders, err := steadySaver{}.Build(p, calc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := orders.Retirement[0].Cap.Cents; got != 0 {
		t.Errorf("unparsable match text cap = %d, want 0", got)
	}
	if _, ok := seeds[core.Vehicle401kMatch]; ok {
		t.Error("unparsable match text must not seed the match vehicle")
	}
}

func TestFamilyFocusedSpousalIRA(t *testing.T) {
	calc := testCalc(t)

	t.Run("joint filer gains spousal roth", func(t *testing.T) {
		p := baseProfile()
		p.Filing = core.MarriedJoint

		_, orders, err := familyFocused{}.Build(p, calc)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		var found bool
		for _, v := range orders.Retirement {
			if v.Name == core.VehicleSpousalRothIRA {
				found = true
			}
		}
		if !found {
			t.Error("joint filer retirement list missing spousal roth ira")
		}
	})

	t.Run("single filer has none", func(t *testing.T) {
		_, orders, err := familyFocused{}.Build(baseProfile(), calc)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		for _, v := range orders.Retirement {
			if v.Name == core.VehicleSpousalRothIRA {
				t.Error("single filer retirement list has spousal roth ira")
			}
		}
	})
}

// A fully phased-out direct Roth stays in the steady saver's list at
// capacity zero instead of disappearing.
func TestSteadySaverKeepsPhasedOutRoth(t *testing.T) {
	calc := testCalc(t)
	p := baseProfile()
	p.GrossIncome = core.Dollars(300000)

	_, orders, err := steadySaver{}.Build(p, calc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, v := range orders.Retirement {
		if v.Name == core.VehicleRothIRA {
			if v.Cap.Cents != 0 {
				t.Errorf("phased-out roth cap = %d, want 0", v.Cap.Cents)
			}
			return
		}
	}
	t.Fatal("roth ira missing from retirement list")
}

func TestWealthBuilderFSAFromLimitTable(t *testing.T) {
	calc := testCalc(t)
	_, orders, err := wealthBuilder{}.Build(baseProfile(), calc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, v := range orders.Health {
		if v.Name == core.VehicleLimitedFSA {
			if v.Cap.Cents != 330000/12 {
				t.Errorf("fsa cap = %d, want plan-year ceiling %d", v.Cap.Cents, 330000/12)
			}
			return
		}
	}
	t.Fatal("limited fsa missing from health list")
}

func TestPreRetireeWorkplacePlans(t *testing.T) {
	calc := testCalc(t)
	p := baseProfile()
	p.Age = 58

	_, orders, err := preRetiree{}.Build(p, calc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	names := map[string]core.Vehicle{}
	for _, v := range orders.Retirement {
		names[v.Name] = v
	}
	b403, ok403 := names[core.Vehicle403b]
	b457, ok457 := names[core.Vehicle457b]
	if !ok403 || !ok457 {
		t.Fatal("pre-retiree list must carry both the 403b and the 457b")
	}
	// Separate ceilings: both carry the age-50 catch-up deferral cap.
	want := (2350000 + 750000) / 12
	if b403.Cap.Cents != int64(want) || b457.Cap.Cents != int64(want) {
		t.Errorf("403b/457b caps = %d/%d, want %d each", b403.Cap.Cents, b457.Cap.Cents, want)
	}
}

func TestSideHustlerSEPBoundedBySideIncome(t *testing.T) {
	calc := testCalc(t)
	p := baseProfile()
	p.NetProfit = core.Dollars(24000)

	_, orders, err := sideHustler{}.Build(p, calc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, v := range orders.Retirement {
		if v.Name == core.VehicleSEPIRA {
			// 25% of 24k = 6k/yr = $500/month, under the SEP ceiling.
			if v.Cap.Cents != 50000 {
				t.Errorf("sep cap = %d, want 50000", v.Cap.Cents)
			}
			return
		}
	}
	t.Fatal("sep ira missing from retirement list")
}
