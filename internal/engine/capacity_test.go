package engine

import (
	"testing"

	"nestegg/internal/core"
	"nestegg/internal/limits"
)

func testCalc(t *testing.T) *Calculator {
	t.Helper()
	table, err := limits.ForYear(2025)
	if err != nil {
		t.Fatalf("load limit table: %v", err)
	}
	return NewCalculator(table)
}

func TestHealthSavingsCapacity(t *testing.T) {
	calc := testCalc(t)

	tests := []struct {
		name     string
		eligible bool
		age      int
		filing   core.FilingStatus
		want     int64
	}{
		{
			// Individual annual ceiling / 12, no add-on below 55.
			name:     "eligible single age 45",
			eligible: true,
			age:      45,
			filing:   core.Single,
			want:     430000 / 12,
		},
		{
			// Family ceiling plus catch-up add-on at 55.
			name:     "eligible family age 55",
			eligible: true,
			age:      55,
			filing:   core.MarriedJoint,
			want:     (855000 + 100000) / 12,
		},
		{
			name:     "ineligible",
			eligible: false,
			age:      60,
			filing:   core.MarriedJoint,
			want:     0,
		},
		{
			name:     "negative age gets no add-on",
			eligible: true,
			age:      -1,
			filing:   core.Single,
			want:     430000 / 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.HealthSavingsCapacity(tt.eligible, tt.age, tt.filing)
			if got.Cents != tt.want {
				t.Errorf("HealthSavingsCapacity() = %d, want %d", got.Cents, tt.want)
			}
		})
	}
}

func TestEducationSavingsCapacity(t *testing.T) {
	calc := testCalc(t)

	if got := calc.EducationSavingsCapacity(0); got.Cents != 0 {
		t.Errorf("no dependents should yield zero, got %d", got.Cents)
	}
	if got := calc.EducationSavingsCapacity(2); got.Cents != 2*1900000/12 {
		t.Errorf("two dependents = %d, want %d", got.Cents, 2*1900000/12)
	}
}

// Both the FSA and HSA ceilings come from the plan-year table, never
// from constants baked into a strategy.
func TestLimitedFSACapacityTracksPlanYear(t *testing.T) {
	calc := testCalc(t)
	if got := calc.LimitedFSACapacity(); got.Cents != 330000/12 {
		t.Errorf("2025 fsa capacity = %d, want %d", got.Cents, 330000/12)
	}

	prior, err := limits.ForYear(2024)
	if err != nil {
		t.Fatalf("load limit table: %v", err)
	}
	if got := NewCalculator(prior).LimitedFSACapacity(); got.Cents != 320000/12 {
		t.Errorf("2024 fsa capacity = %d, want %d", got.Cents, 320000/12)
	}
}

func TestRetirementAccountCapacityCatchUp(t *testing.T) {
	calc := testCalc(t)

	tests := []struct {
		name string
		kind limits.AccountKind
		age  int
		want int64
	}{
		{"deferral below 50", limits.KindEmployeeDeferral, 45, 2350000 / 12},
		{"deferral at 50", limits.KindEmployeeDeferral, 50, (2350000 + 750000) / 12},
		{"deferral at 60 enhanced tier", limits.KindEmployeeDeferral, 60, (2350000 + 1125000) / 12},
		{"ira at 60 keeps the 50 tier", limits.KindIRA, 60, (700000 + 100000) / 12},
		{"sep has no catch-up", limits.KindSEP, 65, 7000000 / 12},
		{"missing age means no catch-up", limits.KindEmployeeDeferral, 0, 2350000 / 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.RetirementAccountCapacity(tt.kind, tt.age)
			if err != nil {
				t.Fatalf("RetirementAccountCapacity() error = %v", err)
			}
			if got.Cents != tt.want {
				t.Errorf("RetirementAccountCapacity() = %d, want %d", got.Cents, tt.want)
			}
		})
	}
}

// Capacity must be non-decreasing in age for every kind that offers a
// catch-up.
func TestCatchUpMonotonicity(t *testing.T) {
	calc := testCalc(t)
	kinds := []limits.AccountKind{
		limits.KindEmployeeDeferral,
		limits.KindIRA,
		limits.KindSimple,
	}
	for _, kind := range kinds {
		at40, _ := calc.RetirementAccountCapacity(kind, 40)
		at50, _ := calc.RetirementAccountCapacity(kind, 50)
		at60, _ := calc.RetirementAccountCapacity(kind, 60)
		if at50.Cents < at40.Cents || at60.Cents < at50.Cents {
			t.Errorf("%s: capacities not monotone: %d, %d, %d", kind, at40.Cents, at50.Cents, at60.Cents)
		}
	}
}

func TestRetirementAccountCapacityUnknownKind(t *testing.T) {
	calc := testCalc(t)
	if _, err := calc.RetirementAccountCapacity("pension_x", 40); err == nil {
		t.Fatal("expected error for unknown account kind")
	}
}
