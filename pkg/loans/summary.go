package loans

// Summary compares the actual outcome of a schedule against the loan's
// original terms.
type Summary struct {
	TotalPaid      float64
	TotalInterest  float64
	TotalInsurance float64
	ActualMonths   int
	InterestSaved  float64
	MonthsSaved    int
	TotalExtraPaid float64
}

// BaselineInterest is the interest the loan accrues when every month pays
// exactly the annuity payment.
func BaselineInterest(terms Terms) float64 {
	payment := terms.MonthlyPayment()
	if payment == 0 {
		return 0
	}
	return payment*float64(terms.TermMonths) - terms.Principal
}

// Summarize builds the Summary for the totals of a re-amortization pass.
func Summarize(totals Totals, terms Terms) Summary {
	return Summary{
		TotalPaid:      totals.TotalPaid,
		TotalInterest:  totals.TotalInterest,
		TotalInsurance: totals.TotalInsurance,
		ActualMonths:   totals.MonthsUsed,
		InterestSaved:  BaselineInterest(terms) - totals.TotalInterest,
		MonthsSaved:    terms.TermMonths - totals.MonthsUsed,
		TotalExtraPaid: totals.TotalExtraPaid,
	}
}
