package calculation

import (
	"fmt"

	"github.com/finsim/wealthpath/internal/domain"
)

// DefaultCashflowYears is the explanatory horizon of the projection table
// when the caller does not ask for a specific one.
const DefaultCashflowYears = 10

// BuildCashflowTable runs the deterministic single-path projector: the same
// yearly recurrence as the stochastic engine but without randomness, capped
// to a short horizon and exposed as a table. All figures are annual and
// nominal. The table spans years 0 through min(years, maxYears); year 0 is
// the baseline (un-grown income, initial schedules, no events). Unlike the
// stochastic engine, a later year's row already reflects the events
// scheduled for that year.
func BuildCashflowTable(cfg *domain.SimulationConfig, maxYears int) (*domain.CashflowTable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if maxYears <= 0 {
		maxYears = DefaultCashflowYears
	}
	horizon := cfg.Years
	if horizon > maxYears {
		horizon = maxYears
	}

	schedules := newScheduleSet(cfg)
	eventsByYear := domain.GroupEventsByYear(cfg.Events)

	table := &domain.CashflowTable{Rows: make([]domain.CashflowRow, 0, horizon+1)}

	growthStep := one.Add(cfg.SalaryInflation)
	salaryGrowth := one

	for year := 0; year <= horizon; year++ {
		var notes []string
		if year > 0 {
			salaryGrowth = salaryGrowth.Mul(growthStep)
			for _, ev := range eventsByYear[year] {
				if err := applyEventToProjection(cfg, ev, year, schedules); err != nil {
					return nil, err
				}
				notes = append(notes, ev.Name)
			}
		}

		primary, spouse := householdIncome(cfg, year, salaryGrowth)
		takeHome := primary.TakeHome.Add(spouse.TakeHome)
		contribution := primary.PensionContribution.Add(spouse.PensionContribution)
		passive := passiveIncomeForYear(cfg, year)

		livingExpenses := schedules.expenses.at(year).Mul(twelve)
		mortgage := schedules.mortgage.at(year).Mul(twelve)
		rental := schedules.rental.at(year).Mul(twelve)

		available := takeHome.Add(passive).Add(rental).Sub(livingExpenses).Sub(mortgage)

		table.Rows = append(table.Rows, domain.CashflowRow{
			Year:                year,
			Age:                 cfg.StartingAge + year,
			Retired:             primary.Retired,
			TakeHome:            takeHome,
			PensionContribution: contribution,
			PassiveIncome:       passive,
			RentalIncome:        rental,
			LivingExpenses:      livingExpenses,
			Mortgage:            mortgage,
			AvailableSavings:    available,
			MonthlySavings:      available.Div(twelve),
			Events:              notes,
		})
	}

	table.Year1 = buildYear1Breakdown(cfg, table.Rows[1])
	return table, nil
}

// applyEventToProjection is the projector's side of event dispatch. Only the
// recurring-schedule effects matter here; one-off cash movements (down
// payments, sale proceeds, windfalls, one-time expenses) touch wealth, not
// the yearly cash flow, so they surface solely as row annotations. The
// switch is exhaustive over the event variants.
func applyEventToProjection(cfg *domain.SimulationConfig, ev domain.Event, year int, schedules *scheduleSet) error {
	switch ev.Type {
	case domain.EventPropertyPurchase:
		schedules.mortgage.addFrom(year, purchasePayment(cfg, ev))

	case domain.EventPropertySale:
		schedules.mortgage.zeroFrom(year)

	case domain.EventExpenseChange:
		schedules.expenses.addFrom(year, ev.MonthlyChange)

	case domain.EventRentalIncome:
		schedules.rental.addFrom(year, ev.MonthlyRental)

	case domain.EventOneTimeExpense, domain.EventWindfall:
		// Annotation only.

	default:
		return fmt.Errorf("unhandled event type %q", ev.Type)
	}
	return nil
}

// buildYear1Breakdown walks the first projection year from gross household
// income down to the amount available for investment, as ordered labeled
// line items. Deductions carry negative amounts so the list sums naturally.
func buildYear1Breakdown(cfg *domain.SimulationConfig, row domain.CashflowRow) domain.Year1Breakdown {
	// Validation guarantees retirement age exceeds starting age, so year 1
	// is always a working year for both members.
	primary, spouse := householdIncome(cfg, 1, one.Add(cfg.SalaryInflation))
	gross := primary.Gross.Add(spouse.Gross)
	tax := gross.Mul(cfg.EffectiveTaxRate)

	items := []domain.LineItem{
		{Label: "Gross Income", Amount: gross},
		{Label: "Pension Contribution", Amount: row.PensionContribution.Neg()},
		{Label: "Tax", Amount: tax.Neg()},
		{Label: "Take-Home Income", Amount: row.TakeHome},
	}
	if row.PassiveIncome.IsPositive() {
		items = append(items, domain.LineItem{Label: "Passive Income", Amount: row.PassiveIncome})
	}
	if row.RentalIncome.IsPositive() {
		items = append(items, domain.LineItem{Label: "Rental Income", Amount: row.RentalIncome})
	}
	items = append(items,
		domain.LineItem{Label: "Living Expenses", Amount: row.LivingExpenses.Neg()},
		domain.LineItem{Label: "Mortgage", Amount: row.Mortgage.Neg()},
	)

	status := domain.StatusSurplus
	if row.AvailableSavings.IsNegative() {
		status = domain.StatusDeficit
	}
	return domain.Year1Breakdown{
		Items:     items,
		Available: row.AvailableSavings,
		Status:    status,
	}
}
