package calculation

import (
	"fmt"

	"github.com/finsim/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// schedule is a forward-looking monthly amount with one entry per projection
// year (0..years). Events mutate it in place from their effective year
// onward, never retroactively.
type schedule struct {
	vals []decimal.Decimal
}

func newSchedule(initial decimal.Decimal, years int) *schedule {
	vals := make([]decimal.Decimal, years+1)
	for i := range vals {
		vals[i] = initial
	}
	return &schedule{vals: vals}
}

func (s *schedule) at(year int) decimal.Decimal {
	return s.vals[year]
}

func (s *schedule) addFrom(year int, delta decimal.Decimal) {
	for y := year; y < len(s.vals); y++ {
		s.vals[y] = s.vals[y].Add(delta)
	}
}

func (s *schedule) zeroFrom(year int) {
	for y := year; y < len(s.vals); y++ {
		s.vals[y] = decimal.Zero
	}
}

// scheduleSet groups the three event-mutable monthly schedules.
type scheduleSet struct {
	expenses *schedule
	mortgage *schedule
	rental   *schedule
}

func newScheduleSet(cfg *domain.SimulationConfig) *scheduleSet {
	return &scheduleSet{
		expenses: newSchedule(cfg.MonthlyExpenses, cfg.Years),
		mortgage: newSchedule(cfg.MonthlyMortgagePayment, cfg.Years),
		rental:   newSchedule(decimal.Zero, cfg.Years),
	}
}

// purchasePayment resolves the monthly payment a property purchase layers
// onto the mortgage schedule: an explicit figure wins, otherwise it is
// derived from the event's mortgage amount and term at the household rate.
func purchasePayment(cfg *domain.SimulationConfig, e domain.Event) decimal.Decimal {
	if e.NewMortgagePayment.IsPositive() {
		return e.NewMortgagePayment
	}
	return MonthlyMortgagePayment(e.MortgageAmount, cfg.MortgageInterestRate, e.MortgageTermYears*12)
}

// yearPlan is everything about one simulation year that does not depend on
// a path's random draws: schedules as they stand entering the year, the
// deterministic property and mortgage state after organic updates and
// events, the net one-off cash effect of the year's events, nominal passive
// income and household employment income.
type yearPlan struct {
	monthlyExpenses     decimal.Decimal
	monthlyMortgage     decimal.Decimal
	monthlyRental       decimal.Decimal
	propertyValue       decimal.Decimal
	mortgageBalance     decimal.Decimal
	liquidEventDelta    decimal.Decimal
	passiveIncome       decimal.Decimal
	primary             YearIncome
	spouse              YearIncome
	pensionContribution decimal.Decimal
}

// planYears runs the deterministic pre-pass over years 1..N. Property
// value, mortgage balance, the schedules and event cash effects are shared
// by every path (none of them is randomized), so computing them once keeps
// the per-path loop down to the genuinely stochastic state.
//
// Within a year the order is: organic updates first (appreciation,
// amortization), then events, so events act as discrete interventions
// layered on top of organic growth.
func planYears(cfg *domain.SimulationConfig) ([]yearPlan, *scheduleSet, error) {
	schedules := newScheduleSet(cfg)
	eventsByYear := domain.GroupEventsByYear(cfg.Events)

	plans := make([]yearPlan, cfg.Years+1)
	plans[0] = yearPlan{
		propertyValue:   cfg.InitialPropertyValue,
		mortgageBalance: cfg.InitialMortgage,
	}

	growthStep := one.Add(cfg.SalaryInflation)
	salaryGrowth := one

	for year := 1; year <= cfg.Years; year++ {
		salaryGrowth = salaryGrowth.Mul(growthStep)

		p := yearPlan{
			monthlyExpenses: schedules.expenses.at(year - 1),
			monthlyMortgage: schedules.mortgage.at(year - 1),
			monthlyRental:   schedules.rental.at(year - 1),
			passiveIncome:   passiveIncomeForYear(cfg, year),
		}

		p.primary, p.spouse = householdIncome(cfg, year, salaryGrowth)
		p.pensionContribution = p.primary.PensionContribution.Add(p.spouse.PensionContribution)

		// Organic updates.
		p.propertyValue = plans[year-1].propertyValue.Mul(one.Add(cfg.PropertyAppreciation))
		annualMortgagePayment := p.monthlyMortgage.Mul(twelve)
		p.mortgageBalance = amortizeAnnual(plans[year-1].mortgageBalance, cfg.MortgageInterestRate, annualMortgagePayment)

		// Events scheduled for exactly this year.
		p.liquidEventDelta = decimal.Zero
		for _, ev := range eventsByYear[year] {
			if err := applyEventToPlan(cfg, ev, year, &p, schedules); err != nil {
				return nil, nil, err
			}
		}

		plans[year] = p
	}
	return plans, schedules, nil
}

// applyEventToPlan applies a single event's effects on the deterministic
// state: one-off cash deltas accumulate into liquidEventDelta, schedule
// changes take effect from this year forward. The switch is exhaustive over
// the event variants; an unknown tag is a programming error surfaced as
// such.
func applyEventToPlan(cfg *domain.SimulationConfig, ev domain.Event, year int, p *yearPlan, schedules *scheduleSet) error {
	switch ev.Type {
	case domain.EventPropertyPurchase:
		p.liquidEventDelta = p.liquidEventDelta.Sub(ev.DownPayment)
		p.propertyValue = p.propertyValue.Add(ev.PropertyPrice)
		p.mortgageBalance = p.mortgageBalance.Add(ev.MortgageAmount)
		schedules.mortgage.addFrom(year, purchasePayment(cfg, ev))

	case domain.EventPropertySale:
		proceeds := ev.SalePrice.Sub(ev.MortgagePayoff).Sub(ev.SellingCosts)
		p.liquidEventDelta = p.liquidEventDelta.Add(proceeds)
		p.propertyValue = decimal.Zero
		p.mortgageBalance = p.mortgageBalance.Sub(ev.MortgagePayoff)
		if p.mortgageBalance.IsNegative() {
			p.mortgageBalance = decimal.Zero
		}
		// A payoff covering the remaining balance retires the payment
		// schedule from here on.
		if ev.MortgagePayoff.GreaterThanOrEqual(p.mortgageBalance) {
			schedules.mortgage.zeroFrom(year)
		}

	case domain.EventOneTimeExpense:
		p.liquidEventDelta = p.liquidEventDelta.Sub(ev.Amount)

	case domain.EventExpenseChange:
		schedules.expenses.addFrom(year, ev.MonthlyChange)

	case domain.EventRentalIncome:
		schedules.rental.addFrom(year, ev.MonthlyRental)

	case domain.EventWindfall:
		p.liquidEventDelta = p.liquidEventDelta.Add(ev.Amount)

	default:
		return fmt.Errorf("unhandled event type %q", ev.Type)
	}
	return nil
}
