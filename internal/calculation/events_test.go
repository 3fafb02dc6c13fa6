package calculation

import (
	"testing"

	"github.com/finsim/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func planConfig() *domain.SimulationConfig {
	return &domain.SimulationConfig{
		InitialLiquidWealth:    decimal.NewFromInt(100000),
		InitialPropertyValue:   decimal.NewFromInt(500000),
		InitialMortgage:        decimal.NewFromInt(400000),
		GrossAnnualIncome:      decimal.NewFromInt(75000),
		MonthlyExpenses:        decimal.NewFromInt(3000),
		MonthlyMortgagePayment: decimal.NewFromInt(2000),
		Years:                  10,
		Paths:                  1,
		StartingAge:            30,
		RetirementAge:          65,
	}
}

func TestSchedule_AddFromIsForwardOnly(t *testing.T) {
	s := newSchedule(decimal.NewFromInt(3000), 10)
	s.addFrom(4, decimal.NewFromInt(500))

	for y := 0; y < 4; y++ {
		assert.True(t, s.at(y).Equal(decimal.NewFromInt(3000)), "Year %d should be untouched", y)
	}
	for y := 4; y <= 10; y++ {
		assert.True(t, s.at(y).Equal(decimal.NewFromInt(3500)), "Year %d should carry the delta", y)
	}
}

func TestSchedule_AddFromAccumulates(t *testing.T) {
	s := newSchedule(decimal.Zero, 10)
	s.addFrom(2, decimal.NewFromInt(100))
	s.addFrom(5, decimal.NewFromInt(-30))

	assert.True(t, s.at(4).Equal(decimal.NewFromInt(100)), "Before the second change only the first applies")
	assert.True(t, s.at(5).Equal(decimal.NewFromInt(70)), "Deltas accumulate from their effective years")
}

func TestSchedule_ZeroFrom(t *testing.T) {
	s := newSchedule(decimal.NewFromInt(2000), 10)
	s.zeroFrom(6)

	assert.True(t, s.at(5).Equal(decimal.NewFromInt(2000)), "Years before the cut keep their value")
	assert.True(t, s.at(6).IsZero(), "The cut year is zeroed")
	assert.True(t, s.at(10).IsZero(), "All later years are zeroed")
}

func TestPlanYears_OrganicUpdates(t *testing.T) {
	cfg := planConfig()
	cfg.PropertyAppreciation = decimal.NewFromFloat(0.03)

	plans, _, err := planYears(cfg)
	assert.NoError(t, err)

	assert.True(t, plans[1].propertyValue.Equal(decimal.NewFromInt(500000).Mul(decimal.NewFromFloat(1.03))),
		"Property appreciates from year 0, got %s", plans[1].propertyValue)
	assert.True(t, plans[1].mortgageBalance.Equal(decimal.NewFromInt(376000)),
		"Zero-rate mortgage amortizes by the annual payment, got %s", plans[1].mortgageBalance)
}

func TestPlanYears_Windfall(t *testing.T) {
	cfg := planConfig()
	cfg.Events = []domain.Event{
		{Type: domain.EventWindfall, Year: 3, Name: "inheritance", Amount: decimal.NewFromInt(50000)},
	}

	plans, _, err := planYears(cfg)
	assert.NoError(t, err)

	assert.True(t, plans[3].liquidEventDelta.Equal(decimal.NewFromInt(50000)), "Windfall lands as positive cash in its year")
	assert.True(t, plans[2].liquidEventDelta.IsZero(), "No cash effect before the event year")
	assert.True(t, plans[4].liquidEventDelta.IsZero(), "One-off cash does not repeat")
}

func TestPlanYears_PropertyPurchase(t *testing.T) {
	cfg := planConfig()
	cfg.MortgageInterestRate = decimal.NewFromFloat(0.04)
	cfg.Events = []domain.Event{
		{
			Type:              domain.EventPropertyPurchase,
			Year:              2,
			Name:              "buy flat",
			PropertyPrice:     decimal.NewFromInt(300000),
			DownPayment:       decimal.NewFromInt(60000),
			MortgageAmount:    decimal.NewFromInt(240000),
			MortgageTermYears: 25,
		},
	}

	plans, schedules, err := planYears(cfg)
	assert.NoError(t, err)

	assert.True(t, plans[2].liquidEventDelta.Equal(decimal.NewFromInt(-60000)), "Down payment leaves liquid wealth")
	assert.True(t, plans[2].propertyValue.GreaterThan(decimal.NewFromInt(790000)), "Purchase adds the full property price, got %s", plans[2].propertyValue)

	derived := MonthlyMortgagePayment(decimal.NewFromInt(240000), decimal.NewFromFloat(0.04), 300)
	assert.True(t, schedules.mortgage.at(2).Equal(decimal.NewFromInt(2000).Add(derived)),
		"New payment layers onto the existing schedule, got %s", schedules.mortgage.at(2))
	assert.True(t, schedules.mortgage.at(1).Equal(decimal.NewFromInt(2000)), "Schedule before the purchase is untouched")
}

func TestPlanYears_DoublePurchaseIsAdditive(t *testing.T) {
	cfg := planConfig()
	payment := decimal.NewFromInt(1200)
	cfg.Events = []domain.Event{
		{Type: domain.EventPropertyPurchase, Year: 2, Name: "first", PropertyPrice: decimal.NewFromInt(200000), NewMortgagePayment: payment},
		{Type: domain.EventPropertyPurchase, Year: 4, Name: "second", PropertyPrice: decimal.NewFromInt(250000), NewMortgagePayment: payment},
	}

	_, schedules, err := planYears(cfg)
	assert.NoError(t, err)

	assert.True(t, schedules.mortgage.at(3).Equal(decimal.NewFromInt(3200)), "One extra payment after the first purchase")
	assert.True(t, schedules.mortgage.at(4).Equal(decimal.NewFromInt(4400)), "Both extra payments stack, got %s", schedules.mortgage.at(4))
}

func TestPlanYears_PropertySale(t *testing.T) {
	cfg := planConfig()
	cfg.Events = []domain.Event{
		{
			Type:           domain.EventPropertySale,
			Year:           5,
			Name:           "sell house",
			SalePrice:      decimal.NewFromInt(550000),
			MortgagePayoff: decimal.NewFromInt(320000),
			SellingCosts:   decimal.NewFromInt(10000),
		},
	}

	plans, schedules, err := planYears(cfg)
	assert.NoError(t, err)

	assert.True(t, plans[5].liquidEventDelta.Equal(decimal.NewFromInt(220000)), "Net proceeds are price minus payoff minus costs, got %s", plans[5].liquidEventDelta)
	assert.True(t, plans[5].propertyValue.IsZero(), "Sold property drops out of the balance sheet")
	assert.True(t, plans[5].mortgageBalance.IsZero(), "Payoff covering the balance clears the loan, got %s", plans[5].mortgageBalance)
	assert.True(t, schedules.mortgage.at(5).IsZero(), "Payment schedule is retired from the sale year")
	assert.True(t, schedules.mortgage.at(4).Equal(decimal.NewFromInt(2000)), "Payments before the sale stand")
}

func TestPlanYears_ExpenseChangeAndRental(t *testing.T) {
	cfg := planConfig()
	cfg.Events = []domain.Event{
		{Type: domain.EventExpenseChange, Year: 3, Name: "childcare", MonthlyChange: decimal.NewFromInt(800)},
		{Type: domain.EventRentalIncome, Year: 4, Name: "let spare room", MonthlyRental: decimal.NewFromInt(600)},
	}

	plans, _, err := planYears(cfg)
	assert.NoError(t, err)

	// Schedule changes land in the event year but the stochastic recurrence
	// reads the prior year's schedule, so the plan picks them up one year on.
	assert.True(t, plans[3].monthlyExpenses.Equal(decimal.NewFromInt(3000)), "Event-year plan still sees the entering schedule")
	assert.True(t, plans[4].monthlyExpenses.Equal(decimal.NewFromInt(3800)), "Expense change visible the following year, got %s", plans[4].monthlyExpenses)
	assert.True(t, plans[5].monthlyRental.Equal(decimal.NewFromInt(600)), "Rental income visible the year after its event")
}

func TestPlanYears_UnknownEventType(t *testing.T) {
	cfg := planConfig()
	cfg.Events = []domain.Event{{Type: "lottery", Year: 1, Name: "bogus"}}

	_, _, err := planYears(cfg)
	assert.Error(t, err, "Unknown event type is a hard error")
	assert.Contains(t, err.Error(), "unhandled event type")
}

func TestPurchasePayment_ExplicitWins(t *testing.T) {
	cfg := planConfig()
	cfg.MortgageInterestRate = decimal.NewFromFloat(0.04)

	ev := domain.Event{
		Type:               domain.EventPropertyPurchase,
		NewMortgagePayment: decimal.NewFromInt(1750),
		MortgageAmount:     decimal.NewFromInt(240000),
		MortgageTermYears:  25,
	}
	assert.True(t, purchasePayment(cfg, ev).Equal(decimal.NewFromInt(1750)), "Explicit payment takes precedence over derivation")

	ev.NewMortgagePayment = decimal.Zero
	derived := purchasePayment(cfg, ev)
	assert.True(t, derived.GreaterThan(decimal.NewFromInt(1200)), "Derived payment should be plausible, got %s", derived)
	assert.True(t, derived.LessThan(decimal.NewFromInt(1350)), "Derived payment should be plausible, got %s", derived)
}
