package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"nestegg/internal/core"
)

// profileRequest is the intake payload. Money fields arrive as decimal
// strings so clients never send floats; absent optional fields keep
// their neutral defaults.
type profileRequest struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	FilingStatus   string  `json:"filing_status"`
	Employment     string  `json:"employment"`
	GrossIncome    string  `json:"gross_income,omitempty"`
	NetProfit      string  `json:"net_profit,omitempty"`
	MonthlySavings string  `json:"monthly_savings,omitempty"`
	SavingsRate    float64 `json:"savings_rate,omitempty"`

	ScoreRetirement int `json:"score_retirement,omitempty"`
	ScoreEducation  int `json:"score_education,omitempty"`
	ScoreHealth     int `json:"score_health,omitempty"`

	HSAEligible  bool `json:"hsa_eligible,omitempty"`
	Dependents   int  `json:"dependents,omitempty"`
	HasPretaxIRA bool `json:"has_pretax_ira,omitempty"`

	EmployerPlanOffered bool   `json:"employer_plan_offered,omitempty"`
	EmployerMatchText   string `json:"employer_match_text,omitempty"`
	EmployerDeferral    string `json:"employer_deferral,omitempty"`

	TaxPreference string `json:"tax_preference,omitempty"`
	Archetype     string `json:"archetype"`
}

const maxBodyBytes = 64 << 10

func parseProfileRequest(w http.ResponseWriter, r *http.Request) (core.ClientProfile, error) {
	var req profileRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return core.ClientProfile{}, fmt.Errorf("decode request: %w", err)
	}

	p := core.ClientProfile{
		ID:           req.ID,
		Name:         req.Name,
		Age:          req.Age,
		Filing:       core.FilingStatus(req.FilingStatus),
		Employment:   core.EmploymentStatus(req.Employment),
		SavingsRate:  req.SavingsRate,
		HSAEligible:  req.HSAEligible,
		Dependents:   req.Dependents,
		HasPretaxIRA: req.HasPretaxIRA,
		TaxPref:      core.TaxPreference(req.TaxPreference),
		ArchetypeID:  core.Archetype(req.Archetype),
		Scores: core.ImportanceScores{
			Retirement: req.ScoreRetirement,
			Education:  req.ScoreEducation,
			Health:     req.ScoreHealth,
		},
		Employer: core.EmployerPlan{
			Offered:   req.EmployerPlanOffered,
			MatchText: req.EmployerMatchText,
		},
	}
	if p.TaxPref == "" {
		p.TaxPref = core.TaxBoth
		slog.InfoContext(r.Context(), "tax preference absent, using neutral default",
			"client_id", p.ID, "default", string(core.TaxBoth))
	}

	var err error
	if p.GrossIncome, err = parseMoney(req.GrossIncome, "gross_income"); err != nil {
		return core.ClientProfile{}, err
	}
	if p.NetProfit, err = parseMoney(req.NetProfit, "net_profit"); err != nil {
		return core.ClientProfile{}, err
	}
	if p.MonthlySavings, err = parseMoney(req.MonthlySavings, "monthly_savings"); err != nil {
		return core.ClientProfile{}, err
	}
	if p.Employer.CurrentDeferral, err = parseMoney(req.EmployerDeferral, "employer_deferral"); err != nil {
		return core.ClientProfile{}, err
	}

	if err := p.Validate(); err != nil {
		return core.ClientProfile{}, err
	}
	return p, nil
}

func parseMoney(s, field string) (core.Money, error) {
	if s == "" {
		return core.Money{}, nil
	}
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return core.Money{Cents: cents}, nil
}
