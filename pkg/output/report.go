package output

import (
	"math"

	"github.com/iwvelando/loan-amortizer/internal/schedule"
	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/iwvelando/loan-amortizer/pkg/loans"
	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
	"github.com/iwvelando/loan-amortizer/pkg/optimization"
	"github.com/shopspring/decimal"
)

// Report is the serialized form of a schedule. Money values are decimals
// rounded to cents and marshal as JSON strings. Row payments are rounded to
// whole units.
type Report struct {
	Terms          TermsReport     `json:"terms"`
	MinimumPayment decimal.Decimal `json:"minimumPayment"`
	Rows           []RowReport     `json:"rows"`
	Summary        SummaryReport   `json:"summary"`
	Plan           *PlanReport     `json:"plan,omitempty"`
	Alert          string          `json:"alert,omitempty"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// TermsReport echoes the loan terms used.
type TermsReport struct {
	Principal           decimal.Decimal `json:"principal"`
	AnnualRate          float64         `json:"annualRate"`
	TermMonths          int             `json:"termMonths"`
	AnnualInsuranceRate float64         `json:"annualInsuranceRate"`
	StartDate           string          `json:"startDate"`
}

// RowReport is one installment.
type RowReport struct {
	Index            int             `json:"cuota"`
	Date             string          `json:"fecha"`
	UserPayment      decimal.Decimal `json:"tuPago"`
	MinPayment       decimal.Decimal `json:"cuotaMinima"`
	Interest         decimal.Decimal `json:"intereses"`
	PrincipalPaid    decimal.Decimal `json:"aCapital"`
	ExtraPayment     decimal.Decimal `json:"pagoExtra"`
	Insurance        decimal.Decimal `json:"seguroDesgravamen"`
	RemainingBalance decimal.Decimal `json:"saldo"`
}

// SummaryReport compares the schedule against the original terms.
type SummaryReport struct {
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	TotalInsurance decimal.Decimal `json:"totalInsurance"`
	ActualMonths   int             `json:"actualMonths"`
	InterestSaved  decimal.Decimal `json:"interestSaved"`
	MonthsSaved    int             `json:"monthsSaved"`
	TotalExtraPaid decimal.Decimal `json:"totalExtraPaid"`
}

// PlanReport is the payoff plan for a target term.
type PlanReport struct {
	TargetMonths  int             `json:"targetMonths"`
	Original      decimal.Decimal `json:"original"`
	Payment       decimal.Decimal `json:"payment"`
	Months        int             `json:"months"`
	InterestSaved decimal.Decimal `json:"interestSaved"`
	Iterations    int             `json:"iterations"`
	Converged     bool            `json:"converged"`
	Notes         []string        `json:"notes,omitempty"`
}

// NewReport converts a schedule result into its serialized form.
func NewReport(result schedule.Result) Report {
	report := Report{
		Terms: TermsReport{
			Principal:           money(result.Terms.Principal),
			AnnualRate:          result.Terms.AnnualRate,
			TermMonths:          result.Terms.TermMonths,
			AnnualInsuranceRate: result.Terms.AnnualInsuranceRate,
			StartDate:           result.Terms.StartDate.Format(constants.DateLayout),
		},
		MinimumPayment: money(result.MinimumPayment),
		Rows:           make([]RowReport, 0, len(result.Rows)),
		Summary:        NewSummaryReport(result.Summary),
		Alert:          result.Alert,
		Warnings:       result.Warnings,
	}
	for _, row := range result.Rows {
		report.Rows = append(report.Rows, NewRowReport(row))
	}
	if result.Plan != nil {
		plan := NewPlanReport(*result.Plan)
		report.Plan = &plan
	}
	return report
}

// NewRowReport converts one installment.
func NewRowReport(row loans.Row) RowReport {
	return RowReport{
		Index:            row.Index,
		Date:             row.Date,
		UserPayment:      wholeMoney(row.UserPayment),
		MinPayment:       money(row.MinPayment),
		Interest:         money(row.Interest),
		PrincipalPaid:    money(row.PrincipalPaid),
		ExtraPayment:     money(row.ExtraPayment),
		Insurance:        money(row.Insurance),
		RemainingBalance: money(row.RemainingBalance),
	}
}

// NewSummaryReport converts a summary.
func NewSummaryReport(s loans.Summary) SummaryReport {
	return SummaryReport{
		TotalPaid:      money(s.TotalPaid),
		TotalInterest:  money(s.TotalInterest),
		TotalInsurance: money(s.TotalInsurance),
		ActualMonths:   s.ActualMonths,
		InterestSaved:  money(s.InterestSaved),
		MonthsSaved:    s.MonthsSaved,
		TotalExtraPaid: money(s.TotalExtraPaid),
	}
}

// NewPlanReport converts a payoff plan.
func NewPlanReport(plan optimization.Summary) PlanReport {
	return PlanReport{
		TargetMonths:  plan.TargetMonths,
		Original:      money(plan.Original),
		Payment:       money(plan.Payment),
		Months:        plan.Months,
		InterestSaved: money(plan.InterestSaved),
		Iterations:    plan.Iterations,
		Converged:     plan.Converged,
		Notes:         plan.Notes,
	}
}

// money rounds to cents. Non-finite values render as zero since decimal
// cannot represent them.
func money(amount float64) decimal.Decimal {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(amount).Round(2)
}

// wholeMoney rounds to whole units, the way payments are typed in.
func wholeMoney(amount float64) decimal.Decimal {
	return money(mathutil.RoundWhole(amount)).Round(0)
}
