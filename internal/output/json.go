package output

import (
	"fmt"
	"io"

	"github.com/finsim/wealthpath/internal/domain"
	"github.com/goccy/go-json"
)

// jsonReport is the shape of the exported simulation document: headline
// statistics first, full matrices after, so consumers that only want the
// summary can stop reading early.
type jsonReport struct {
	Summary domain.Summary           `json:"summary"`
	Result  *domain.SimulationResult `json:"result"`
}

// WriteJSONReport streams the summary and full result as indented JSON.
func WriteJSONReport(w io.Writer, summary domain.Summary, res *domain.SimulationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonReport{Summary: summary, Result: res}); err != nil {
		return fmt.Errorf("failed to encode simulation report: %w", err)
	}
	return nil
}

// WriteCashflowJSON streams the deterministic projection table as indented
// JSON.
func WriteCashflowJSON(w io.Writer, table *domain.CashflowTable) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(table); err != nil {
		return fmt.Errorf("failed to encode cashflow table: %w", err)
	}
	return nil
}
