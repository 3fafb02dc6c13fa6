package domain

import "github.com/shopspring/decimal"

// CashflowRow is one year of the deterministic projection table. Amounts
// are annual, nominal (no inflation adjustment) and unformatted; callers
// render them through an injected currency formatter.
type CashflowRow struct {
	Year                int             `json:"year"`
	Age                 int             `json:"age"`
	Retired             bool            `json:"retired"`
	TakeHome            decimal.Decimal `json:"take_home"`
	PensionContribution decimal.Decimal `json:"pension_contribution"`
	PassiveIncome       decimal.Decimal `json:"passive_income"`
	RentalIncome        decimal.Decimal `json:"rental_income"`
	LivingExpenses      decimal.Decimal `json:"living_expenses"`
	Mortgage            decimal.Decimal `json:"mortgage"`
	AvailableSavings    decimal.Decimal `json:"available_savings"`
	MonthlySavings      decimal.Decimal `json:"monthly_savings"`
	Events              []string        `json:"events,omitempty"`
}

// CashflowStatus classifies the Year-1 bottom line.
type CashflowStatus string

const (
	StatusSurplus CashflowStatus = "surplus"
	StatusDeficit CashflowStatus = "deficit"
)

// LineItem is one labeled entry in the Year-1 breakdown.
type LineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Year1Breakdown walks the first projection year from gross income to the
// amount available for investment, in presentation order.
type Year1Breakdown struct {
	Items     []LineItem      `json:"items"`
	Available decimal.Decimal `json:"available"`
	Status    CashflowStatus  `json:"status"`
}

// CashflowTable is the deterministic projector's full output: the per-year
// rows plus the Year-1 line-item breakdown.
type CashflowTable struct {
	Rows  []CashflowRow  `json:"rows"`
	Year1 Year1Breakdown `json:"year1"`
}
