package financing

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
)

// DefaultTermMonths is the term used when a request does not name one.
const DefaultTermMonths = 72

const divisionPrecision = 28

var (
	one             = decimal.NewFromInt(1)
	percentPerMonth = decimal.NewFromInt(1200) // 12 months * 100
)

// Amortize applies the fixed-rate amortization formula. It only rejects
// inputs for which the formula is undefined: a non-positive rate or term.
// The financed amount is not clamped and may be zero or negative.
func Amortize(input domain.LoanInput) (domain.LoanResult, error) {
	if !input.AnnualRatePercent.IsPositive() {
		return domain.LoanResult{}, NewFinanceError(ErrInvalidInput, apiErrors.ErrInvalidLoanInput, "annual_rate_percent", "annual rate must be greater than zero")
	}
	if input.TermMonths <= 0 {
		return domain.LoanResult{}, NewFinanceError(ErrInvalidInput, apiErrors.ErrInvalidLoanInput, "term_months", "term must be greater than zero")
	}

	term := decimal.NewFromInt(int64(input.TermMonths))
	loanAmount := input.Principal.Sub(input.DownPayment).Sub(input.TradeInValue)
	monthlyRate := input.AnnualRatePercent.DivRound(percentPerMonth, divisionPrecision)

	var monthlyPayment decimal.Decimal
	growth := one.Add(monthlyRate).Pow(term).Round(divisionPrecision)
	denominator := one.Sub(one.DivRound(growth, divisionPrecision))
	if denominator.IsZero() {
		// rate too small to register at this precision: zero-interest limit
		monthlyPayment = loanAmount.DivRound(term, divisionPrecision)
	} else {
		monthlyPayment = loanAmount.Mul(monthlyRate).DivRound(denominator, divisionPrecision)
	}

	totalCost := monthlyPayment.Mul(term).Add(input.DownPayment).Add(input.TradeInValue)

	return domain.LoanResult{
		MonthlyPayment: monthlyPayment,
		TotalCost:      totalCost,
		TotalInterest:  totalCost.Sub(input.Principal),
	}, nil
}

// ComputeLoan validates a deal before amortizing it: the price must be
// positive and neither the down payment nor the trade-in may be negative.
func ComputeLoan(input domain.LoanInput) (domain.LoanResult, error) {
	if !input.Principal.IsPositive() {
		return domain.LoanResult{}, NewFinanceError(ErrInvalidInput, apiErrors.ErrInvalidLoanInput, "principal", "car price must be greater than zero")
	}
	if input.DownPayment.IsNegative() {
		return domain.LoanResult{}, NewFinanceError(ErrInvalidInput, apiErrors.ErrInvalidLoanInput, "down_payment", "down payment cannot be negative")
	}
	if input.TradeInValue.IsNegative() {
		return domain.LoanResult{}, NewFinanceError(ErrInvalidInput, apiErrors.ErrInvalidLoanInput, "trade_in_value", "trade-in value cannot be negative")
	}

	return Amortize(input)
}

// ToCalculation rounds a result to cents for storage.
func ToCalculation(input domain.LoanInput, result domain.LoanResult) domain.FinanceCalculation {
	return domain.FinanceCalculation{
		CarPrice:        input.Principal.InexactFloat64(),
		DownPayment:     input.DownPayment.InexactFloat64(),
		TradeInValue:    input.TradeInValue.InexactFloat64(),
		InterestRate:    input.AnnualRatePercent.InexactFloat64(),
		TermMonths:      input.TermMonths,
		MonthlyPayments: result.MonthlyPayment.Round(2).InexactFloat64(),
		TotalCost:       result.TotalCost.Round(2).InexactFloat64(),
		TotalInterest:   result.TotalInterest.Round(2).InexactFloat64(),
	}
}
