package loans

import (
	"fmt"

	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
	"go.uber.org/zap"
)

// Totals aggregates one re-amortization pass.
type Totals struct {
	TotalPaid        float64
	TotalInterest    float64
	TotalInsurance   float64
	TotalExtraPaid   float64
	MonthsUsed       int
	RemainingBalance float64
}

// PaidOffEarly reports whether the pass retired the loan before its term.
func (t Totals) PaidOffEarly(terms Terms) bool {
	return t.MonthsUsed < terms.TermMonths && !mathutil.IsPositive(t.RemainingBalance)
}

// Reamortize walks rows in order applying each row's UserPayment to the
// running balance. Rows are rewritten in place and the returned slice is
// truncated to the months actually used.
//
// A UserPayment below the month's minimum (annuity payment plus insurance)
// is raised to that minimum. Every payment retires at least one cent of
// principal. When a payment would overshoot the remaining balance the row is
// corrected to the exact payoff amount.
func (e *AmortizationEngine) Reamortize(rows []Row, terms Terms) ([]Row, Totals, error) {
	if err := terms.Validate(); err != nil {
		return nil, Totals{}, err
	}

	monthlyPayment := terms.MonthlyPayment()
	balance := terms.Principal
	var totals Totals

	for i := 0; i < len(rows) && mathutil.IsPositive(balance); i++ {
		row := &rows[i]

		insurance := CalculateInsurancePayment(balance, terms.AnnualInsuranceRate)
		minPayment := monthlyPayment + insurance

		userPayment := row.UserPayment
		if userPayment < minPayment {
			e.logger.Debug(fmt.Sprintf("raising installment %d payment %.2f to minimum %.2f",
				row.Index, userPayment, minPayment),
				zap.String("op", "loans.Reamortize"),
			)
			userPayment = minPayment
			row.UserPayment = minPayment
		}

		interest := CalculateInterestPayment(balance, terms.AnnualRate)
		effectivePayment := mathutil.Max(userPayment, interest+insurance+constants.MinimumProgress)
		available := effectivePayment - interest - insurance
		principalPaid := mathutil.Min(available, balance)
		extra := mathutil.Max(0, effectivePayment-minPayment)

		balance -= principalPaid
		totals.TotalPaid += effectivePayment
		totals.TotalInterest += interest
		totals.TotalInsurance += insurance
		totals.TotalExtraPaid += extra
		totals.MonthsUsed++

		row.MinPayment = minPayment
		row.Interest = interest
		row.Insurance = insurance
		row.PrincipalPaid = principalPaid
		row.ExtraPayment = extra
		row.RemainingBalance = mathutil.Max(0, balance)

		if mathutil.IsZero(balance) && principalPaid < available {
			exactPayoff := interest + insurance + (balance + principalPaid)
			exactExtra := mathutil.Max(0, exactPayoff-minPayment)
			e.logger.Debug(fmt.Sprintf("installment %d pays off the loan with %.2f instead of %.2f",
				row.Index, exactPayoff, effectivePayment),
				zap.String("op", "loans.Reamortize"),
			)
			row.UserPayment = exactPayoff
			row.ExtraPayment = exactExtra
			totals.TotalPaid += exactPayoff - effectivePayment
			totals.TotalExtraPaid += exactExtra - extra
			balance = 0
		}
	}

	totals.RemainingBalance = mathutil.Max(0, balance)
	if mathutil.IsPositive(totals.RemainingBalance) {
		e.logger.Warn(fmt.Sprintf("schedule ran out of installments with %.2f outstanding",
			totals.RemainingBalance),
			zap.String("op", "loans.Reamortize"),
			zap.Int("installments", len(rows)),
		)
	}

	return rows[:totals.MonthsUsed], totals, nil
}
