package domain

import "github.com/shopspring/decimal"

// SimulationResult holds the raw path matrices from one stochastic run.
// Wealth matrices are (paths x years+1) with column 0 the initial state;
// InflationRates is (paths x years), entry [p][y] being the rate realized
// in year y+1 of path p. The result is plain data owned by the caller.
type SimulationResult struct {
	Paths int `json:"paths"`
	Years int `json:"years"`

	NetWorth        [][]decimal.Decimal `json:"net_worth"`
	RealNetWorth    [][]decimal.Decimal `json:"real_net_worth"`
	LiquidWealth    [][]decimal.Decimal `json:"liquid_wealth"`
	PensionWealth   [][]decimal.Decimal `json:"pension_wealth"`
	PropertyValue   [][]decimal.Decimal `json:"property_value"`
	MortgageBalance [][]decimal.Decimal `json:"mortgage_balance"`
	InflationRates  [][]decimal.Decimal `json:"inflation_rates"`

	// Warnings collects post-hoc diagnostics (non-finite values detected
	// in the matrices). The run still completes and returns full data.
	Warnings []string `json:"warnings,omitempty"`
}

// FinalNetWorth returns the last column of the net worth matrix, one value
// per path.
func (r *SimulationResult) FinalNetWorth() []decimal.Decimal {
	return r.ColumnAt(r.NetWorth, r.Years)
}

// ColumnAt extracts one year's values across all paths from a wealth matrix.
func (r *SimulationResult) ColumnAt(matrix [][]decimal.Decimal, year int) []decimal.Decimal {
	col := make([]decimal.Decimal, len(matrix))
	for p := range matrix {
		col[p] = matrix[p][year]
	}
	return col
}

// Summary condenses a result into headline statistics: central tendency of
// final net worth, growth odds and the percentile spread.
type Summary struct {
	MedianFinalNetWorth   decimal.Decimal            `json:"median_final_net_worth"`
	MeanFinalNetWorth     decimal.Decimal            `json:"mean_final_net_worth"`
	ProbabilityOfGrowth   decimal.Decimal            `json:"probability_of_growth"`
	ProbabilityOfDoubling decimal.Decimal            `json:"probability_of_doubling"`
	FinalPercentiles      map[string]decimal.Decimal `json:"final_percentiles"`
}
