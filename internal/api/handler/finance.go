package handler

import (
	"net/http"

	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/financing"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
)

type FinanceQuoteResponse struct {
	Input  domain.LoanInput  `json:"input"`
	Result domain.LoanResult `json:"result"`
}

type FinanceCalculationResponse struct {
	Record *domain.FinanceRecord `json:"record"`
	Result domain.LoanResult     `json:"result"`
}

// decodeLoanInput reads a loan input. The default term applies only when
// term_months is absent; an explicit zero is left for validation to reject.
func decodeLoanInput(w http.ResponseWriter, r *http.Request) (domain.LoanInput, bool) {
	input := domain.LoanInput{TermMonths: financing.DefaultTermMonths}
	if err := decodeBody(r, &input); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
		return input, false
	}

	return input, true
}

// QuoteFinance prices a deal without saving it.
func QuoteFinance(service financing.Financer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, ok := decodeLoanInput(w, r)
		if !ok {
			return
		}

		result, err := service.Quote(input)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, FinanceQuoteResponse{Input: input, Result: result.Rounded()})
	}
}

func CreateFinanceCalculation(service financing.Financer, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		input, ok := decodeLoanInput(w, r)
		if !ok {
			return
		}

		record, result, err := service.Calculate(r.Context(), baseID, input)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, FinanceCalculationResponse{Record: record, Result: result.Rounded()})
	}
}

func ListFinanceCalculations(service financing.Financer, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		calculations, err := service.ListCalculations(r.Context(), baseID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, calculations)
	}
}

func DeleteFinanceCalculation(service financing.Financer, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		if err := service.DeleteCalculation(r.Context(), baseID, pathParam(r, "record_id")); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
