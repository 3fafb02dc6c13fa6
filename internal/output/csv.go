package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/finsim/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// CashflowCSV renders the projection rows as CSV (one row per year).
type CashflowCSV struct{}

func (CashflowCSV) Name() string { return "csv" }

func (CashflowCSV) Format(table *domain.CashflowTable) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Age", "Retired", "TakeHome", "PensionContribution", "PassiveIncome", "RentalIncome", "LivingExpenses", "Mortgage", "AvailableSavings", "MonthlySavings", "Events"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range table.Rows {
		record := []string{
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Age),
			strconv.FormatBool(row.Retired),
			row.TakeHome.StringFixed(2),
			row.PensionContribution.StringFixed(2),
			row.PassiveIncome.StringFixed(2),
			row.RentalIncome.StringFixed(2),
			row.LivingExpenses.StringFixed(2),
			row.Mortgage.StringFixed(2),
			row.AvailableSavings.StringFixed(2),
			row.MonthlySavings.StringFixed(2),
			strings.Join(row.Events, "; "),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// PercentileBandsCSV renders per-year net worth percentile bands from the
// stochastic result, one row per year with a column per requested
// percentile. Useful for charting a fan of outcomes without shipping raw
// matrices. The percentile function is injected so this layer carries no
// statistics of its own.
type PercentileBandsCSV struct {
	Percentiles []int
	Percentile  func(values []decimal.Decimal, p int) decimal.Decimal
}

func (f PercentileBandsCSV) Format(res *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Year"}
	for _, p := range f.Percentiles {
		header = append(header, "p"+strconv.Itoa(p))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for year := 0; year <= res.Years; year++ {
		col := res.ColumnAt(res.NetWorth, year)
		record := []string{strconv.Itoa(year)}
		for _, p := range f.Percentiles {
			record = append(record, f.Percentile(col, p).StringFixed(2))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
