// Package report provides utilities for formatting and displaying
// scenario results. It reads inputs and metrics only and never recomputes
// anything itself.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mgerber/venue-forecast/internal/scenario"
	"github.com/mgerber/venue-forecast/pkg/format"
)

// revenueRow pairs a per-source label with its weekly figure.
type revenueRow struct {
	label string
	value float64
}

func revenueRows(s *scenario.Scenario) []revenueRow {
	m := s.Metrics
	return []revenueRow{
		{"Fixed income (profi training)", m.FixedIncomePerWeek},
		{"Ticket sales", m.TicketRevenuePerWeek},
		{"Gastronomy (net)", m.GastronomyRevenuePerWeek},
		{"Course group 1", m.Course1RevenuePerWeek},
		{"Course group 2", m.Course2RevenuePerWeek},
		{"Course group 3", m.Course3RevenuePerWeek},
		{"Workshops", m.WorkshopRevenuePerWeek},
		{"Rentals", m.RentalRevenuePerWeek},
	}
}

func costRows(s *scenario.Scenario) []revenueRow {
	m := s.Metrics
	return []revenueRow{
		{"Monthly fixed costs per week", m.MonthlyCostsPerWeek},
		{"Show fees per week", m.ShowFeesPerWeek},
		{"Weekly reserves", m.WeeklyReserves},
	}
}

// PrettyString renders a human-readable summary of one scenario.
func PrettyString(s *scenario.Scenario) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	m := s.Metrics

	fmt.Fprintf(&b, "--- Scenario %s ---\n", s.Name)

	b.WriteString("\nWeekly revenue (gross unless noted)\n")
	for _, row := range revenueRows(s) {
		p.Fprintf(&b, "  %-32s %12.2f\n", row.label, row.value)
	}
	p.Fprintf(&b, "  %-32s %12.2f\n", "Base weekly revenue (gross)", m.BaseWeeklyRevenueGross)
	p.Fprintf(&b, "  %-32s %12.2f\n", "Base weekly revenue (net)", m.BaseWeeklyRevenue)
	p.Fprintf(&b, "  %-32s %12.2f\n", "Weekly VAT", m.WeeklyVAT)

	b.WriteString("\nWeekly costs\n")
	for _, row := range costRows(s) {
		p.Fprintf(&b, "  %-32s %12.2f\n", row.label, row.value)
	}
	p.Fprintf(&b, "  %-32s %12.2f\n", "Base weekly costs", m.BaseWeeklyCosts)

	b.WriteString("\nAnnual totals\n")
	p.Fprintf(&b, "  %-32s %12.2f\n", "Total revenue (gross)", m.TotalRevenueGross)
	p.Fprintf(&b, "  %-32s %12.2f\n", "Total revenue (net)", m.TotalRevenue)
	p.Fprintf(&b, "  %-32s %12.2f\n", "Total VAT", m.TotalVAT)
	p.Fprintf(&b, "  %-32s %12.2f\n", "Total costs", m.TotalCosts)
	p.Fprintf(&b, "  %-32s %12.2f\n", "Total profit (net)", m.TotalProfit)
	p.Fprintf(&b, "  %-32s %12.2f\n", "Total profit (gross)", m.TotalProfitGross)
	p.Fprintf(&b, "  %-31s %12.2f%%\n", "Profit margin", m.ProfitMarginPercent)

	b.WriteString("\nHistorical vs. projected\n")
	p.Fprintf(&b, "  %-32s %12.2f\n", "Historical revenue (net)", m.HistoricalRevenue)
	p.Fprintf(&b, "  %-32s %12.2f\n", "Historical costs", m.HistoricalCosts)
	p.Fprintf(&b, "  %-32s %12.2f\n", "Projected revenue (net)", m.ProjectedRevenue)
	p.Fprintf(&b, "  %-32s %12.2f\n", "Projected costs", m.ProjectedCosts)
	p.Fprintf(&b, "  %-32s %12.2f\n", "Projected profit", m.ProjectedProfit)

	if insights := Insights(s); len(insights) > 0 {
		b.WriteString("\nFindings\n")
		for _, insight := range insights {
			fmt.Fprintf(&b, "  - %s\n", insight)
		}
	}

	return b.String()
}

// PrettyFormat prints the human-readable summary to stdout.
func PrettyFormat(s *scenario.Scenario) {
	fmt.Print(PrettyString(s))
}

// CsvString renders the per-source breakdown and annual aggregates in
// comma-separated value format.
func CsvString(s *scenario.Scenario) string {
	var b strings.Builder
	m := s.Metrics

	b.WriteString(`"metric","value"` + "\n")
	write := func(name string, value float64) {
		fmt.Fprintf(&b, `"%s","%s"`+"\n", name, format.NumericCurrency(value))
	}

	for _, row := range revenueRows(s) {
		write(row.label, row.value)
	}
	write("Base weekly revenue (gross)", m.BaseWeeklyRevenueGross)
	write("Base weekly revenue (net)", m.BaseWeeklyRevenue)
	write("Weekly VAT", m.WeeklyVAT)
	for _, row := range costRows(s) {
		write(row.label, row.value)
	}
	write("Base weekly costs", m.BaseWeeklyCosts)
	write("Total revenue (gross)", m.TotalRevenueGross)
	write("Total revenue (net)", m.TotalRevenue)
	write("Total VAT", m.TotalVAT)
	write("Total costs", m.TotalCosts)
	write("Total profit (net)", m.TotalProfit)
	write("Total profit (gross)", m.TotalProfitGross)
	write("Profit margin percent", m.ProfitMarginPercent)
	write("Historical revenue (net)", m.HistoricalRevenue)
	write("Historical costs", m.HistoricalCosts)
	write("Projected revenue (net)", m.ProjectedRevenue)
	write("Projected costs", m.ProjectedCosts)
	write("Projected profit", m.ProjectedProfit)

	return b.String()
}

// CsvFormat prints the CSV rendering to stdout.
func CsvFormat(s *scenario.Scenario) {
	fmt.Print(CsvString(s))
}
