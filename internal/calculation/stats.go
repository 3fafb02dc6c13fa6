package calculation

import (
	"fmt"
	"sort"

	"github.com/finsim/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// summaryPercentiles are the distribution points reported for the final
// year's net worth.
var summaryPercentiles = []int{10, 25, 50, 75, 90}

// Median returns the middle value of the input, averaging the two central
// values for even-length input. An empty input yields zero.
func Median(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sorted := sortedCopy(values)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// Mean returns the arithmetic mean, zero for empty input.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// Percentile returns the pth percentile (0..100) using nearest-rank on the
// sorted values.
func Percentile(values []decimal.Decimal, p int) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sorted := sortedCopy(values)
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := (p*len(sorted) + 99) / 100
	return sorted[rank-1]
}

func sortedCopy(values []decimal.Decimal) []decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})
	return sorted
}

// Summarize reduces a simulation result to its headline statistics. Growth
// and doubling odds compare each path's final net worth against the shared
// year-zero net worth.
func Summarize(res *domain.SimulationResult, cfg *domain.SimulationConfig) domain.Summary {
	final := res.FinalNetWorth()
	initial := cfg.InitialNetWorth()
	doubled := initial.Mul(decimal.NewFromInt(2))

	grew, doubledCount := 0, 0
	for _, v := range final {
		if v.GreaterThan(initial) {
			grew++
		}
		if v.GreaterThan(doubled) {
			doubledCount++
		}
	}
	total := decimal.NewFromInt(int64(len(final)))

	percentiles := make(map[string]decimal.Decimal, len(summaryPercentiles))
	for _, p := range summaryPercentiles {
		percentiles[fmt.Sprintf("p%d", p)] = Percentile(final, p)
	}

	return domain.Summary{
		MedianFinalNetWorth:   Median(final),
		MeanFinalNetWorth:     Mean(final),
		ProbabilityOfGrowth:   decimal.NewFromInt(int64(grew)).Div(total),
		ProbabilityOfDoubling: decimal.NewFromInt(int64(doubledCount)).Div(total),
		FinalPercentiles:      percentiles,
	}
}
