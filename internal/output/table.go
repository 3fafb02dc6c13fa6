package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/finsim/wealthpath/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	surplusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	deficitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderCashflowTable renders the deterministic projection as a console
// table: one row per year followed by the Year-1 breakdown. A nil formatter
// falls back to FormatCurrency.
func RenderCashflowTable(table *domain.CashflowTable, format CurrencyFormatter) string {
	if format == nil {
		format = FormatCurrency
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Cash Flow Projection"))
	b.WriteString("\n\n")

	cols := []string{"Year", "Age", "Take-Home", "Passive", "Rental", "Expenses", "Mortgage", "Available", "Monthly", "Notes"}
	widths := []int{4, 3, 14, 12, 12, 14, 12, 14, 12, 0}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = pad(c, widths[i])
	}
	b.WriteString(headerStyle.Render(strings.Join(header, "  ")))
	b.WriteString("\n")

	for _, row := range table.Rows {
		notes := strings.Join(row.Events, ", ")
		if row.Retired {
			if notes != "" {
				notes = "retired, " + notes
			} else {
				notes = "retired"
			}
		}
		cells := []string{
			pad(fmt.Sprintf("%d", row.Year), widths[0]),
			pad(fmt.Sprintf("%d", row.Age), widths[1]),
			pad(format(row.TakeHome), widths[2]),
			pad(format(row.PassiveIncome), widths[3]),
			pad(format(row.RentalIncome), widths[4]),
			pad(format(row.LivingExpenses), widths[5]),
			pad(format(row.Mortgage), widths[6]),
			pad(format(row.AvailableSavings), widths[7]),
			pad(format(row.MonthlySavings), widths[8]),
			mutedStyle.Render(notes),
		}
		line := strings.Join(cells, "  ")
		if row.AvailableSavings.IsNegative() {
			line = deficitStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderYear1(table.Year1, format))
	return b.String()
}

func renderYear1(y1 domain.Year1Breakdown, format CurrencyFormatter) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Year 1 Breakdown"))
	b.WriteString("\n")
	for _, item := range y1.Items {
		b.WriteString(fmt.Sprintf("  %-22s %s\n", item.Label, format(item.Amount)))
	}

	status := surplusStyle.Render(string(domain.StatusSurplus))
	if y1.Status == domain.StatusDeficit {
		status = deficitStyle.Render(string(domain.StatusDeficit))
	}
	b.WriteString(fmt.Sprintf("  %-22s %s (%s)\n", "Available", format(y1.Available), status))
	return b.String()
}

// RenderSummary renders the stochastic run's headline statistics.
func RenderSummary(summary domain.Summary, res *domain.SimulationResult, format CurrencyFormatter) string {
	if format == nil {
		format = FormatCurrency
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Simulation Summary"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Paths: %d   Years: %d\n\n", res.Paths, res.Years))
	b.WriteString(fmt.Sprintf("  %-28s %s\n", "Median final net worth", format(summary.MedianFinalNetWorth)))
	b.WriteString(fmt.Sprintf("  %-28s %s\n", "Mean final net worth", format(summary.MeanFinalNetWorth)))
	b.WriteString(fmt.Sprintf("  %-28s %s\n", "Probability of growth", FormatPercentage(summary.ProbabilityOfGrowth)))
	b.WriteString(fmt.Sprintf("  %-28s %s\n", "Probability of doubling", FormatPercentage(summary.ProbabilityOfDoubling)))

	keys := make([]string, 0, len(summary.FinalPercentiles))
	for k := range summary.FinalPercentiles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return percentileRank(keys[i]) < percentileRank(keys[j])
	})
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("  Final net worth percentiles"))
	b.WriteString("\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %-28s %s\n", k, format(summary.FinalPercentiles[k])))
	}

	for _, w := range res.Warnings {
		b.WriteString("\n")
		b.WriteString(deficitStyle.Render("warning: " + w))
		b.WriteString("\n")
	}
	return b.String()
}

func percentileRank(key string) int {
	var n int
	fmt.Sscanf(key, "p%d", &n)
	return n
}

func pad(s string, width int) string {
	if width <= 0 || len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
