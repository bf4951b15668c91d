package loans

import (
	"math"
	"time"

	"github.com/iwvelando/loan-amortizer/pkg/constants"
)

// Terms holds the inputs of one loan.
type Terms struct {
	Principal           float64
	AnnualRate          float64 // percent
	TermMonths          int
	AnnualInsuranceRate float64 // percent
	StartDate           time.Time
}

// Validate checks the terms in the order a user fills them in and reports
// the first problem found.
func (t Terms) Validate() error {
	if math.IsNaN(t.Principal) || math.IsInf(t.Principal, 0) || t.Principal <= 0 {
		return newValidationError("principal", AdvisoryPrincipal)
	}
	if math.IsNaN(t.AnnualRate) || math.IsInf(t.AnnualRate, 0) || t.AnnualRate <= 0 {
		return newValidationError("annualRate", AdvisoryRate)
	}
	if t.TermMonths <= 0 || t.TermMonths > constants.MaxTermMonths {
		return newValidationError("termMonths", AdvisoryTerm)
	}
	if math.IsNaN(t.AnnualInsuranceRate) || math.IsInf(t.AnnualInsuranceRate, 0) || t.AnnualInsuranceRate < 0 {
		return newValidationError("annualInsuranceRate", AdvisoryInsuranceRate)
	}

	// Extreme rates over long terms overflow the annuity formula.
	payment := t.MonthlyPayment()
	if !isFinite(payment) {
		return newValidationError("annualRate", AdvisoryRate)
	}
	insurance := CalculateInsurancePayment(t.Principal, t.AnnualInsuranceRate)
	if !isFinite(insurance) || !isFinite((payment+insurance)*float64(t.TermMonths)) {
		return newValidationError("annualInsuranceRate", AdvisoryInsuranceRate)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MonthlyPayment returns the annuity payment for the terms, excluding
// insurance.
func (t Terms) MonthlyPayment() float64 {
	return CalculateMonthlyPayment(t.Principal, t.AnnualRate, t.TermMonths)
}
