package http

import (
	"net/http/httptest"
	"strings"
	"testing"

	"nestegg/internal/core"
)

func parse(t *testing.T, body string) (core.ClientProfile, error) {
	t.Helper()
	r := httptest.NewRequest("POST", "/api/clients", strings.NewReader(body))
	return parseProfileRequest(httptest.NewRecorder(), r)
}

func TestParseProfileRequest(t *testing.T) {
	body := `{
		"id": "c1",
		"name": "The Does",
		"age": 41,
		"filing_status": "married_joint",
		"employment": "employee",
		"gross_income": "145000",
		"monthly_savings": "2350.50",
		"score_retirement": 6,
		"score_education": 3,
		"score_health": 1,
		"hsa_eligible": true,
		"dependents": 2,
		"employer_plan_offered": true,
		"employer_match_text": "50% of first 6%",
		"employer_deferral": "400",
		"tax_preference": "now",
		"archetype": "family_focused"
	}`

	p, err := parse(t, body)
	if err != nil {
		t.Fatalf("parseProfileRequest() error = %v", err)
	}
	if p.ID != "c1" || p.Age != 41 {
		t.Errorf("identity fields wrong: %+v", p)
	}
	if p.Filing != core.MarriedJoint || p.Employment != core.Employee {
		t.Errorf("status fields wrong: filing=%s employment=%s", p.Filing, p.Employment)
	}
	if p.GrossIncome.Cents != 14500000 {
		t.Errorf("gross income = %d, want 14500000", p.GrossIncome.Cents)
	}
	if p.MonthlySavings.Cents != 235050 {
		t.Errorf("monthly savings = %d, want 235050", p.MonthlySavings.Cents)
	}
	if p.Employer.CurrentDeferral.Cents != 40000 {
		t.Errorf("employer deferral = %d, want 40000", p.Employer.CurrentDeferral.Cents)
	}
	if p.Scores.Retirement != 6 || p.Scores.Education != 3 || p.Scores.Health != 1 {
		t.Errorf("scores wrong: %+v", p.Scores)
	}
	if p.TaxPref != core.TaxNow {
		t.Errorf("tax preference = %s, want now", p.TaxPref)
	}
	if p.ArchetypeID != core.Archetype("family_focused") {
		t.Errorf("archetype = %s, want family_focused", p.ArchetypeID)
	}
}

func TestParseProfileRequestDefaults(t *testing.T) {
	body := `{
		"id": "c2",
		"age": 30,
		"filing_status": "single",
		"employment": "employee",
		"archetype": "getting_started"
	}`

	p, err := parse(t, body)
	if err != nil {
		t.Fatalf("parseProfileRequest() error = %v", err)
	}
	if p.TaxPref != core.TaxBoth {
		t.Errorf("missing tax preference defaulted to %s, want both", p.TaxPref)
	}
	if !p.GrossIncome.IsZero() || !p.MonthlySavings.IsZero() {
		t.Error("absent money fields must stay zero")
	}
}

func TestParseProfileRequestErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"id":`},
		{"unknown field", `{"id":"c1","filing_status":"single","employment":"employee","archetype":"steady_saver","surprise":1}`},
		{"negative money", `{"id":"c1","filing_status":"single","employment":"employee","archetype":"steady_saver","gross_income":"-5"}`},
		{"money as prose", `{"id":"c1","filing_status":"single","employment":"employee","archetype":"steady_saver","gross_income":"a lot"}`},
		{"bad filing status", `{"id":"c1","filing_status":"widowed","employment":"employee","archetype":"steady_saver"}`},
		{"bad employment", `{"id":"c1","filing_status":"single","employment":"retired","archetype":"steady_saver"}`},
		{"missing archetype", `{"id":"c1","filing_status":"single","employment":"employee"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parse(t, tt.body); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}
