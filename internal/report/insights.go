package report

import (
	"fmt"

	"github.com/mgerber/venue-forecast/internal/scenario"
	"github.com/mgerber/venue-forecast/pkg/format"
	"github.com/mgerber/venue-forecast/pkg/mathutil"
)

// Margin thresholds for the narrative findings.
const (
	healthyMarginPercent = 15.0
	thinMarginPercent    = 5.0
)

// Insights derives rule-based narrative findings from the computed
// metrics. It consumes the metrics verbatim.
func Insights(s *scenario.Scenario) []string {
	var findings []string
	m := s.Metrics

	switch {
	case mathutil.IsNegative(m.TotalProfit):
		findings = append(findings, fmt.Sprintf("The scenario runs at an annual loss of %s.",
			format.Currency(-m.TotalProfit)))
	case m.ProfitMarginPercent > 0 && m.ProfitMarginPercent < thinMarginPercent:
		findings = append(findings, fmt.Sprintf("Profit margin is thin at %.1f%%; small cost increases would push the year into a loss.",
			m.ProfitMarginPercent))
	case m.ProfitMarginPercent >= healthyMarginPercent:
		findings = append(findings, fmt.Sprintf("Profit margin of %.1f%% leaves room for investment.",
			m.ProfitMarginPercent))
	}

	courseRevenues := []struct {
		label string
		value float64
	}{
		{"course group 1", m.Course1RevenuePerWeek},
		{"course group 2", m.Course2RevenuePerWeek},
		{"course group 3", m.Course3RevenuePerWeek},
	}
	for _, c := range courseRevenues {
		if mathutil.IsNegative(c.value) {
			findings = append(findings, fmt.Sprintf("Trainer costs exceed ticket income for %s (%s per week).",
				c.label, format.Currency(c.value)))
		}
	}

	if m.TotalRevenueGross > 0 {
		vatShare := mathutil.CalculatePercentage(m.TotalVAT, m.TotalRevenueGross)
		findings = append(findings, fmt.Sprintf("VAT accounts for %.1f%% of gross annual revenue (%s).",
			vatShare, format.Currency(m.TotalVAT)))
	}

	if m.HistoricalRevenue > 0 || m.HistoricalCosts > 0 {
		historicalProfit := m.HistoricalRevenue - m.HistoricalCosts
		if mathutil.IsNegative(historicalProfit) {
			findings = append(findings, fmt.Sprintf("The elapsed weeks show a shortfall of %s against costs; the remaining weeks project %s profit.",
				format.Currency(-historicalProfit), format.Currency(m.ProjectedProfit)))
		} else if !mathutil.IsZero(historicalProfit) {
			findings = append(findings, fmt.Sprintf("The elapsed weeks already earned %s; the remaining weeks project another %s.",
				format.Currency(historicalProfit), format.Currency(m.ProjectedProfit)))
		}
	}

	return findings
}
