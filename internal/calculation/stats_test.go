package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimals(vals ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func TestMedian(t *testing.T) {
	assert.True(t, Median(decimals(5, 1, 3)).Equal(decimal.NewFromInt(3)), "Odd-length median is the middle value")
	assert.True(t, Median(decimals(4, 1, 3, 2)).Equal(decimal.NewFromFloat(2.5)), "Even-length median averages the central pair")
	assert.True(t, Median(nil).IsZero(), "Empty input yields zero")
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	vals := decimals(5, 1, 3)
	Median(vals)
	assert.True(t, vals[0].Equal(decimal.NewFromInt(5)), "Input order must be preserved")
}

func TestMean(t *testing.T) {
	assert.True(t, Mean(decimals(1, 2, 3, 4)).Equal(decimal.NewFromFloat(2.5)))
	assert.True(t, Mean(nil).IsZero())
}

func TestPercentile(t *testing.T) {
	vals := decimals(10, 20, 30, 40, 50, 60, 70, 80, 90, 100)

	assert.True(t, Percentile(vals, 50).Equal(decimal.NewFromInt(50)), "p50 of 1..10 tens")
	assert.True(t, Percentile(vals, 10).Equal(decimal.NewFromInt(10)))
	assert.True(t, Percentile(vals, 90).Equal(decimal.NewFromInt(90)))
	assert.True(t, Percentile(vals, 0).Equal(decimal.NewFromInt(10)), "p0 is the minimum")
	assert.True(t, Percentile(vals, 100).Equal(decimal.NewFromInt(100)), "p100 is the maximum")
	assert.True(t, Percentile(nil, 50).IsZero())
}

func TestSummarize(t *testing.T) {
	engine := NewMonteCarloEngine()
	cfg := basicGrowthConfig()

	res, err := engine.Run(context.Background(), cfg)
	require.NoError(t, err)

	summary := Summarize(res, cfg)

	assert.True(t, summary.MedianFinalNetWorth.Equal(Median(res.FinalNetWorth())))
	assert.False(t, summary.ProbabilityOfGrowth.IsNegative())
	assert.True(t, summary.ProbabilityOfGrowth.LessThanOrEqual(decimal.NewFromInt(1)), "Probabilities are ratios in [0,1]")
	assert.True(t, summary.ProbabilityOfDoubling.LessThanOrEqual(summary.ProbabilityOfGrowth),
		"Doubling is at least as hard as growing")
	assert.Len(t, summary.FinalPercentiles, 5)

	p10, p90 := summary.FinalPercentiles["p10"], summary.FinalPercentiles["p90"]
	assert.True(t, p10.LessThanOrEqual(p90), "Percentiles are ordered")
}
