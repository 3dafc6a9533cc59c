package domain

import "github.com/shopspring/decimal"

// FinanceCalculation is a persisted deal calculation as stored in the
// Finance Calculator table.
type FinanceCalculation struct {
	CarPrice        float64 `json:"Car price"`
	DownPayment     float64 `json:"Down Payment"`
	TradeInValue    float64 `json:"Trade in value"`
	InterestRate    float64 `json:"Interest Rate"`
	TermMonths      int     `json:"Term Months"`
	MonthlyPayments float64 `json:"Monthly Payments"`
	TotalCost       float64 `json:"Total Cost"`
	TotalInterest   float64 `json:"Total Interest"`
}

type FinanceRecord = Record[FinanceCalculation]

type LoanInput struct {
	Principal         decimal.Decimal `json:"principal"`
	DownPayment       decimal.Decimal `json:"down_payment"`
	TradeInValue      decimal.Decimal `json:"trade_in_value"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermMonths        int             `json:"term_months"`
}

type LoanResult struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

// Rounded returns the result rounded to cents for display.
func (r LoanResult) Rounded() LoanResult {
	return LoanResult{
		MonthlyPayment: r.MonthlyPayment.Round(2),
		TotalCost:      r.TotalCost.Round(2),
		TotalInterest:  r.TotalInterest.Round(2),
	}
}
