package engine

import (
	"regexp"
	"strconv"

	"nestegg/internal/core"
)

// MatchRule is the typed result of parsing an employer-match
// description. Rate is the employer's matching fraction and LimitPct
// the slice of income it applies to, both as fractions (0.5 and 0.06
// for "50% of first 6%"). OK is false when the text did not fit the
// grammar; callers treat that as "no match" and log it, never fail.
type MatchRule struct {
	Rate     float64
	LimitPct float64
	OK       bool
}

// The grammar is deliberately small: a match percentage, a connective,
// and an income percentage. Examples it accepts:
//
//	"50% of first 6%"
//	"100% of the first 3%"
//	"50% up to 6%"
//	"dollar for dollar up to 4%"
var (
	matchPercentRe = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*%\s*(?:of|on|up\s+to)\s*(?:the\s+)?(?:first\s+)?(\d+(?:\.\d+)?)\s*%\s*$`)
	matchDollarRe  = regexp.MustCompile(`(?i)^\s*dollar[-\s]for[-\s]dollar\s+(?:of|on|up\s+to)\s*(?:the\s+)?(?:first\s+)?(\d+(?:\.\d+)?)\s*%\s*$`)
)

// ParseMatchText parses a constrained free-text employer-match
// description into a MatchRule. Unparsable text yields a zero rule
// with OK false.
func ParseMatchText(s string) MatchRule {
	if m := matchPercentRe.FindStringSubmatch(s); m != nil {
		rate, err1 := strconv.ParseFloat(m[1], 64)
		limit, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			return MatchRule{}
		}
		return MatchRule{Rate: rate / 100, LimitPct: limit / 100, OK: true}
	}
	if m := matchDollarRe.FindStringSubmatch(s); m != nil {
		limit, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return MatchRule{}
		}
		return MatchRule{Rate: 1, LimitPct: limit / 100, OK: true}
	}
	return MatchRule{}
}

// MonthlyCap returns the monthly employer-match ceiling for an annual
// income: income × limit × rate ÷ 12. A rule that failed to parse caps
// at zero.
func (r MatchRule) MonthlyCap(annualIncome core.Money) core.Money {
	if !r.OK {
		return core.Money{}
	}
	annual := float64(annualIncome.Cents) * r.LimitPct * r.Rate
	return core.Money{Cents: int64(annual)}.PerMonth()
}
