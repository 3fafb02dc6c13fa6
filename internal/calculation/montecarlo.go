package calculation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/finsim/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// inflationFloor caps how deflationary a drawn year can be: realized
// inflation never goes below -5%.
var inflationFloor = decimal.NewFromFloat(-0.05)

// MonteCarloEngine runs the stochastic wealth simulation: thousands of
// randomized paths through the same yearly recurrence the deterministic
// projector uses, producing full distribution matrices instead of a single
// trajectory.
type MonteCarloEngine struct {
	Logger Logger

	// Workers bounds the number of goroutines partitioning the path range.
	// Zero means one per available CPU. The year dimension stays strictly
	// sequential inside each path; only paths run in parallel.
	Workers int
}

// NewMonteCarloEngine creates an engine with a no-op logger.
func NewMonteCarloEngine() *MonteCarloEngine {
	return &MonteCarloEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine's logger; nil restores the no-op logger.
func (e *MonteCarloEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Run executes the full simulation for a validated config and returns the
// path matrices. The call is atomic: once validation passes it always
// completes with a full result, and for a fixed seed the output is
// reproducible bit for bit. There is no I/O or cancellation inside the
// engine; ctx is only consulted before work begins.
func (e *MonteCarloEngine) Run(ctx context.Context, cfg *domain.SimulationConfig) (*domain.SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths, years := cfg.Paths, cfg.Years
	e.Logger.Infof("running %d paths over %d years (seed %d)", paths, years, cfg.Seed)

	// All randomness is drawn up front from a single seeded source, in a
	// fixed order, so the worker partitioning below cannot perturb it.
	rng := rand.New(rand.NewSource(cfg.Seed))
	portfolioReturns := drawNormalMatrix(rng, paths, years, cfg.ExpectedReturn, cfg.ReturnVolatility, nil)
	pensionReturns := drawNormalMatrix(rng, paths, years, cfg.ExpectedReturn, cfg.ReturnVolatility, nil)
	inflationRates := drawNormalMatrix(rng, paths, years, cfg.ExpectedInflation, cfg.InflationVolatility, &inflationFloor)

	plans, _, err := planYears(cfg)
	if err != nil {
		return nil, err
	}

	res := &domain.SimulationResult{
		Paths:           paths,
		Years:           years,
		NetWorth:        newMatrix(paths, years+1),
		RealNetWorth:    newMatrix(paths, years+1),
		LiquidWealth:    newMatrix(paths, years+1),
		PensionWealth:   newMatrix(paths, years+1),
		PropertyValue:   newMatrix(paths, years+1),
		MortgageBalance: newMatrix(paths, years+1),
		InflationRates:  inflationRates,
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > paths {
		workers = paths
	}

	var wg sync.WaitGroup
	chunk := (paths + workers - 1) / workers
	for start := 0; start < paths; start += chunk {
		end := start + chunk
		if end > paths {
			end = paths
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for p := start; p < end; p++ {
				e.simulatePath(cfg, plans, portfolioReturns[p], pensionReturns[p], inflationRates[p], res, p)
			}
		}(start, end)
	}
	wg.Wait()

	if warn := checkFinite(res); warn != "" {
		e.Logger.Warnf("%s", warn)
		res.Warnings = append(res.Warnings, warn)
	}
	return res, nil
}

// simulatePath advances one path's stochastic state (liquid wealth, pension
// pot, cumulative inflation) through years 1..N in order, filling row p of
// every result matrix. Property value and mortgage balance come from the
// shared deterministic plan.
func (e *MonteCarloEngine) simulatePath(cfg *domain.SimulationConfig, plans []yearPlan,
	portfolioReturns, pensionReturns, inflationRates []decimal.Decimal,
	res *domain.SimulationResult, p int) {

	years := cfg.Years
	liquid := cfg.InitialLiquidWealth
	pension := decimal.Zero

	// cumInflation[y] is the product of (1+inflation) over the first y
	// years of this path; index 0 is 1 (year-0 purchasing power).
	cumInflation := make([]decimal.Decimal, years+1)
	cumInflation[0] = one

	res.LiquidWealth[p][0] = liquid
	res.PensionWealth[p][0] = pension
	res.PropertyValue[p][0] = cfg.InitialPropertyValue
	res.MortgageBalance[p][0] = cfg.InitialMortgage
	res.NetWorth[p][0] = cfg.InitialNetWorth()
	res.RealNetWorth[p][0] = res.NetWorth[p][0]

	for year := 1; year <= years; year++ {
		plan := plans[year]
		cumInflation[year] = cumInflation[year-1].Mul(one.Add(inflationRates[year-1]))
		cum := cumInflation[year]

		// Household take-home. Employment income is deterministic; only
		// the post-retirement pension figure picks up this path's realized
		// inflation since the retirement year.
		takeHome := plan.primary.TakeHome
		primaryPensionDraw := decimal.Zero
		if plan.primary.Retired {
			adjusted := plan.primary.TakeHome.Mul(inflationSince(cumInflation, cfg.RetirementAge-cfg.StartingAge, year))
			takeHome = adjusted
			primaryPensionDraw = adjusted
		}
		if cfg.Spouse != nil {
			spouseIncome := plan.spouse.TakeHome
			if plan.spouse.Retired {
				spouseIncome = plan.spouse.TakeHome.Mul(inflationSince(cumInflation, cfg.Spouse.RetirementAge-cfg.Spouse.Age, year))
			}
			takeHome = takeHome.Add(spouseIncome)
		}

		// Annualize the schedules. Living costs and rental ride realized
		// inflation; the mortgage payment is nominal, fixed by contract.
		expenses := plan.monthlyExpenses.Mul(twelve).Mul(cum)
		mortgagePayment := plan.monthlyMortgage.Mul(twelve)
		rental := plan.monthlyRental.Mul(twelve).Mul(cum)
		passive := plan.passiveIncome.Mul(cum)

		availableSavings := takeHome.Add(rental).Add(passive).Sub(expenses).Sub(mortgagePayment)

		// Pension pot: grow, add this year's contributions, then draw the
		// configured pension income if the primary member is retired. The
		// withdrawal is capped at the post-growth balance so the pot can
		// never go negative; with no pension income configured the pot is
		// simply left to grow.
		afterGrowth := pension.Mul(one.Add(pensionReturns[year-1]))
		withdrawal := decimal.Zero
		if plan.primary.Retired && cfg.PensionIncome.IsPositive() {
			withdrawal = primaryPensionDraw
			if withdrawal.GreaterThan(afterGrowth) {
				withdrawal = afterGrowth
			}
		}
		pension = afterGrowth.Add(plan.pensionContribution).Sub(withdrawal)

		// Liquid wealth absorbs the year's surplus or deficit plus any
		// one-off event cash. A negative balance is a legitimate outcome
		// signaling insolvency risk on this path.
		liquid = liquid.Mul(one.Add(portfolioReturns[year-1])).Add(availableSavings).Add(plan.liquidEventDelta)

		netWorth := liquid.Add(pension).Add(plan.propertyValue).Sub(plan.mortgageBalance)

		res.LiquidWealth[p][year] = liquid
		res.PensionWealth[p][year] = pension
		res.PropertyValue[p][year] = plan.propertyValue
		res.MortgageBalance[p][year] = plan.mortgageBalance
		res.NetWorth[p][year] = netWorth
		res.RealNetWorth[p][year] = netWorth.Div(cum)
	}
}

// inflationSince returns the cumulative inflation realized between a
// reference year index and the current year, 1 when the reference is not
// yet in the past.
func inflationSince(cumInflation []decimal.Decimal, sinceYear, year int) decimal.Decimal {
	if sinceYear < 0 {
		sinceYear = 0
	}
	if sinceYear >= year {
		return one
	}
	return cumInflation[year].Div(cumInflation[sinceYear])
}

// drawNormalMatrix fills a (paths x years) matrix with independent normal
// draws of the given mean and standard deviation, optionally floored.
func drawNormalMatrix(rng *rand.Rand, paths, years int, mean, stddev decimal.Decimal, floor *decimal.Decimal) [][]decimal.Decimal {
	m := make([][]decimal.Decimal, paths)
	for p := 0; p < paths; p++ {
		row := make([]decimal.Decimal, years)
		for y := 0; y < years; y++ {
			draw := mean.Add(decimal.NewFromFloat(rng.NormFloat64()).Mul(stddev))
			if floor != nil && draw.LessThan(*floor) {
				draw = *floor
			}
			row[y] = draw
		}
		m[p] = row
	}
	return m
}

func newMatrix(rows, cols int) [][]decimal.Decimal {
	m := make([][]decimal.Decimal, rows)
	for i := range m {
		m[i] = make([]decimal.Decimal, cols)
	}
	return m
}

// checkFinite sweeps the result matrices for values that no longer fit a
// float64 (overflow from pathological inputs). It reports a single
// aggregate warning; the batch is never aborted for this.
func checkFinite(res *domain.SimulationResult) string {
	bad := 0
	for _, matrix := range [][][]decimal.Decimal{
		res.NetWorth, res.RealNetWorth, res.LiquidWealth,
		res.PensionWealth, res.PropertyValue, res.MortgageBalance,
	} {
		for _, row := range matrix {
			for _, v := range row {
				f, _ := v.Float64()
				if math.IsNaN(f) || math.IsInf(f, 0) {
					bad++
				}
			}
		}
	}
	if bad == 0 {
		return ""
	}
	return fmt.Sprintf("result contains %d non-finite values; inputs may be pathological", bad)
}
