// Package loans computes amortization schedules for a single loan with a
// declining-balance insurance premium ("desgravamen") and re-amortizes them
// under user-supplied monthly payments.
package loans

import (
	"math"

	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
)

// CalculateMonthlyPayment calculates the fixed monthly payment for a loan
// using the standard annuity formula. It returns 0 when the principal, rate
// or term is not positive.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if !(principal > 0) || !(annualInterestRate > 0) || termMonths <= 0 {
		return 0
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	return principal * (periodicInterestRate * power) / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInterestRate)
}

// CalculateInsurancePayment calculates the desgravamen premium charged on the
// remaining balance for one month.
func CalculateInsurancePayment(remainingPrincipal, annualInsuranceRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInsuranceRate)
}
