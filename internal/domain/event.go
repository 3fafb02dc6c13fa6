package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EventType discriminates the closed set of financial event variants.
type EventType string

const (
	EventPropertyPurchase EventType = "property_purchase"
	EventPropertySale     EventType = "property_sale"
	EventOneTimeExpense   EventType = "one_time_expense"
	EventExpenseChange    EventType = "expense_change"
	EventRentalIncome     EventType = "rental_income"
	EventWindfall         EventType = "windfall"
)

// Event is a discrete financial intervention applied in a single year, on
// top of the organic updates for that year. Which payload fields are
// meaningful depends on Type; Validate enforces the pairing.
//
// Events that touch the monthly mortgage payment are additive to the
// scheduled payment (a second purchase layers a second mortgage), except
// that a sale clearing the tracked balance zeroes the schedule forward.
type Event struct {
	Type EventType `yaml:"type" toml:"type" json:"type"`
	Year int       `yaml:"year" toml:"year" json:"year"`
	Name string    `yaml:"name" toml:"name" json:"name"`

	// property_purchase
	PropertyPrice      decimal.Decimal `yaml:"property_price,omitempty" toml:"property_price,omitempty" json:"property_price,omitempty"`
	DownPayment        decimal.Decimal `yaml:"down_payment,omitempty" toml:"down_payment,omitempty" json:"down_payment,omitempty"`
	MortgageAmount     decimal.Decimal `yaml:"mortgage_amount,omitempty" toml:"mortgage_amount,omitempty" json:"mortgage_amount,omitempty"`
	NewMortgagePayment decimal.Decimal `yaml:"new_mortgage_payment,omitempty" toml:"new_mortgage_payment,omitempty" json:"new_mortgage_payment,omitempty"`
	MortgageTermYears  int             `yaml:"mortgage_term,omitempty" toml:"mortgage_term,omitempty" json:"mortgage_term,omitempty"`

	// property_sale
	SalePrice      decimal.Decimal `yaml:"sale_price,omitempty" toml:"sale_price,omitempty" json:"sale_price,omitempty"`
	MortgagePayoff decimal.Decimal `yaml:"mortgage_payoff,omitempty" toml:"mortgage_payoff,omitempty" json:"mortgage_payoff,omitempty"`
	SellingCosts   decimal.Decimal `yaml:"selling_costs,omitempty" toml:"selling_costs,omitempty" json:"selling_costs,omitempty"`

	// one_time_expense, windfall
	Amount decimal.Decimal `yaml:"amount,omitempty" toml:"amount,omitempty" json:"amount,omitempty"`

	// expense_change; may be negative (expenses falling)
	MonthlyChange decimal.Decimal `yaml:"monthly_change,omitempty" toml:"monthly_change,omitempty" json:"monthly_change,omitempty"`

	// rental_income
	MonthlyRental decimal.Decimal `yaml:"monthly_rental,omitempty" toml:"monthly_rental,omitempty" json:"monthly_rental,omitempty"`
}

// Validate checks the variant tag and its payload.
func (e Event) Validate() error {
	if e.Year < 0 {
		return fmt.Errorf("year cannot be negative")
	}
	switch e.Type {
	case EventPropertyPurchase:
		for _, v := range []struct {
			name string
			val  decimal.Decimal
		}{
			{"property_price", e.PropertyPrice},
			{"down_payment", e.DownPayment},
			{"mortgage_amount", e.MortgageAmount},
			{"new_mortgage_payment", e.NewMortgagePayment},
		} {
			if v.val.IsNegative() {
				return fmt.Errorf("%s cannot be negative", v.name)
			}
		}
		if e.MortgageTermYears < 0 {
			return fmt.Errorf("mortgage_term cannot be negative")
		}
		if e.MortgageAmount.IsPositive() && e.NewMortgagePayment.IsZero() && e.MortgageTermYears == 0 {
			return fmt.Errorf("a mortgage amount requires either new_mortgage_payment or mortgage_term")
		}
	case EventPropertySale:
		if e.SalePrice.IsNegative() || e.MortgagePayoff.IsNegative() || e.SellingCosts.IsNegative() {
			return fmt.Errorf("sale_price, mortgage_payoff and selling_costs cannot be negative")
		}
	case EventOneTimeExpense, EventWindfall:
		if e.Amount.IsNegative() {
			return fmt.Errorf("amount cannot be negative")
		}
	case EventExpenseChange:
		// MonthlyChange is allowed to be negative.
	case EventRentalIncome:
		if e.MonthlyRental.IsNegative() {
			return fmt.Errorf("monthly_rental cannot be negative")
		}
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	return nil
}

// GroupEventsByYear indexes events for O(1) lookup inside the year loop.
func GroupEventsByYear(events []Event) map[int][]Event {
	byYear := make(map[int][]Event, len(events))
	for _, ev := range events {
		byYear[ev.Year] = append(byYear[ev.Year], ev)
	}
	return byYear
}
