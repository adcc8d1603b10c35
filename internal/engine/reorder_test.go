package engine

import (
	"testing"

	"nestegg/internal/core"
)

func reorderFixture() []core.Vehicle {
	return []core.Vehicle{
		{Name: core.Vehicle401kMatch, PreTax: true},
		{Name: core.VehicleRothIRA, PreTax: false},
		{Name: core.Vehicle401kTraditional, PreTax: true},
		{Name: core.VehicleBrokerage, PreTax: false},
		core.Sink(),
	}
}

func names(list []core.Vehicle) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = v.Name
	}
	return out
}

func TestReorderByTaxPreference(t *testing.T) {
	tests := []struct {
		name string
		pref core.TaxPreference
		want []string
	}{
		{
			name: "now puts pre-tax first, stable within groups",
			pref: core.TaxNow,
			want: []string{core.Vehicle401kMatch, core.Vehicle401kTraditional, core.VehicleRothIRA, core.VehicleBrokerage, core.VehicleFamilyBank},
		},
		{
			name: "later puts post-tax first",
			pref: core.TaxLater,
			want: []string{core.VehicleRothIRA, core.VehicleBrokerage, core.Vehicle401kMatch, core.Vehicle401kTraditional, core.VehicleFamilyBank},
		},
		{
			name: "both is identity",
			pref: core.TaxBoth,
			want: []string{core.Vehicle401kMatch, core.VehicleRothIRA, core.Vehicle401kTraditional, core.VehicleBrokerage, core.VehicleFamilyBank},
		},
		{
			name: "unrecognized is identity",
			pref: core.TaxPreference("whatever"),
			want: []string{core.Vehicle401kMatch, core.VehicleRothIRA, core.Vehicle401kTraditional, core.VehicleBrokerage, core.VehicleFamilyBank},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(ReorderByTaxPreference(reorderFixture(), tt.pref))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("position %d: got %v, want %v", i, got, tt.want)
				}
			}
		})
	}
}

func TestReorderDoesNotMutateInput(t *testing.T) {
	in := reorderFixture()
	_ = ReorderByTaxPreference(in, core.TaxLater)
	if in[0].Name != core.Vehicle401kMatch {
		t.Error("reorder mutated its input")
	}
}

func TestReorderKeepsCapacities(t *testing.T) {
	in := []core.Vehicle{
		{Name: core.Vehicle401kTraditional, PreTax: true, Cap: core.Dollars(100)},
		{Name: core.VehicleRothIRA, Cap: core.Dollars(200)},
	}
	out := ReorderByTaxPreference(in, core.TaxLater)
	for _, v := range out {
		switch v.Name {
		case core.Vehicle401kTraditional:
			if v.Cap.Cents != 10000 {
				t.Errorf("cap altered: %d", v.Cap.Cents)
			}
		case core.VehicleRothIRA:
			if v.Cap.Cents != 20000 {
				t.Errorf("cap altered: %d", v.Cap.Cents)
			}
		}
	}
}
