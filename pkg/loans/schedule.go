package loans

import (
	"fmt"

	"github.com/iwvelando/loan-amortizer/pkg/datetime"
	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
	"go.uber.org/zap"
)

// Row holds the values of one installment.
type Row struct {
	Index            int
	Date             string
	UserPayment      float64
	MinPayment       float64
	Interest         float64
	PrincipalPaid    float64
	ExtraPayment     float64
	Insurance        float64
	RemainingBalance float64
}

// AmortizationEngine generates and re-amortizes schedules.
type AmortizationEngine struct {
	logger *zap.Logger
}

// NewAmortizationEngine creates a new engine instance
func NewAmortizationEngine(logger *zap.Logger) *AmortizationEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationEngine{logger: logger}
}

// GenerateBaseline creates the schedule the loan follows when every month
// pays exactly the annuity payment plus insurance.
func (e *AmortizationEngine) GenerateBaseline(terms Terms) ([]Row, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	monthlyPayment := terms.MonthlyPayment()
	rows := make([]Row, 0, terms.TermMonths)
	balance := terms.Principal

	for month := 1; month <= terms.TermMonths; month++ {
		interest := CalculateInterestPayment(balance, terms.AnnualRate)
		insurance := CalculateInsurancePayment(balance, terms.AnnualInsuranceRate)
		principalPaid := mathutil.Min(monthlyPayment-interest, balance)

		rows = append(rows, Row{
			Index:            month,
			Date:             datetime.InstallmentLabel(terms.StartDate, month),
			UserPayment:      mathutil.RoundWhole(monthlyPayment + insurance),
			MinPayment:       monthlyPayment + insurance,
			Interest:         interest,
			PrincipalPaid:    principalPaid,
			Insurance:        insurance,
			RemainingBalance: balance - principalPaid,
		})
		balance -= principalPaid
	}

	e.logger.Debug(fmt.Sprintf("generated baseline of %d installments with monthly payment %.2f",
		len(rows), monthlyPayment),
		zap.String("op", "loans.GenerateBaseline"),
		zap.Float64("residual", balance),
	)

	return rows, nil
}
