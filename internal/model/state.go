package model

import "errors"

// FinancialState defines the household's monthly cash-flow position.
// Units:
// - MonthlyIncome: $/month take-home
// - EmergencyFundBalance: $ starting balance
// - EssentialExpenses, DiscretionaryExpenses: $/month
// - HorizonMonths: number of months to simulate
//
// FinancialState is a value; simulations never mutate it. Hypothetical
// variants (lever candidates) are constructed as fresh copies.
type FinancialState struct {
	MonthlyIncome         float64
	EmergencyFundBalance  float64
	EssentialExpenses     float64
	DiscretionaryExpenses float64
	HorizonMonths         int
}

// TotalMonthlyExpenses is essential + discretionary before any scenario
// adjustment.
func (s FinancialState) TotalMonthlyExpenses() float64 {
	return s.EssentialExpenses + s.DiscretionaryExpenses
}

// Validate checks the state before it is handed to the simulation engine.
// The engine itself trusts its input; callers (API handlers, CLI) are
// expected to reject malformed states up front.
func (s FinancialState) Validate() error {
	if s.MonthlyIncome < 0 {
		return errors.New("MonthlyIncome must be >= 0")
	}
	if s.EmergencyFundBalance < 0 {
		return errors.New("EmergencyFundBalance must be >= 0")
	}
	if s.EssentialExpenses < 0 {
		return errors.New("EssentialExpenses must be >= 0")
	}
	if s.DiscretionaryExpenses < 0 {
		return errors.New("DiscretionaryExpenses must be >= 0")
	}
	if s.HorizonMonths <= 0 {
		return errors.New("HorizonMonths must be > 0")
	}
	return nil
}
