package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"$300", 30000, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyPerMonth(t *testing.T) {
	cases := []struct {
		annual  int64
		monthly int64
	}{
		{430000, 35833}, // truncates, never rounds above the ceiling
		{1200, 100},
		{0, 0},
	}
	for _, tc := range cases {
		got := Money{Cents: tc.annual}.PerMonth()
		if got.Cents != tc.monthly {
			t.Errorf("PerMonth(%d) = %d, want %d", tc.annual, got.Cents, tc.monthly)
		}
	}
}

func TestMoneyFloorToDollar(t *testing.T) {
	if got := (Money{Cents: 12399}).FloorToDollar(); got.Cents != 12300 {
		t.Errorf("FloorToDollar = %d, want 12300", got.Cents)
	}
}

func TestMoneyString(t *testing.T) {
	if got := (Money{Cents: 30000}).String(); got != "300.00" {
		t.Errorf("String = %q, want 300.00", got)
	}
	if got := (Money{Cents: 105}).String(); got != "1.05" {
		t.Errorf("String = %q, want 1.05", got)
	}
}
