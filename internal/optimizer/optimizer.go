// Package optimizer searches for the uniform monthly payment that pays a
// loan off within a target number of months.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-amortizer/pkg/format"
	"github.com/iwvelando/loan-amortizer/pkg/loans"
	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
	"github.com/iwvelando/loan-amortizer/pkg/optimization"
	"go.uber.org/zap"
)

const (
	defaultMaxIterations = 100
	defaultTolerance     = 0.01
)

type Runner struct {
	logger        *zap.Logger
	terms         loans.Terms
	maxIterations int
	tolerance     float64
}

type evaluation struct {
	payment  float64
	months   int
	interest float64
	target   int
}

func (e evaluation) feasible() bool {
	return e.months <= e.target
}

// NewRunner constructs a Runner for terms. Invalid terms are rejected with
// the engine's validation error.
func NewRunner(logger *zap.Logger, terms loans.Terms) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		logger:        logger,
		terms:         terms,
		maxIterations: defaultMaxIterations,
		tolerance:     defaultTolerance,
	}, nil
}

// Run bisects between the first month's minimum payment and the single
// payment that retires the loan at once. The returned payment is rounded up
// to whole units.
func (r *Runner) Run(targetMonths int) (optimization.Summary, error) {
	if targetMonths < 1 {
		return optimization.Summary{}, fmt.Errorf("target months must be at least 1, got %d", targetMonths)
	}

	minPayment := r.terms.MonthlyPayment() +
		loans.CalculateInsurancePayment(r.terms.Principal, r.terms.AnnualInsuranceRate)
	payoffAtOnce := r.terms.Principal +
		loans.CalculateInterestPayment(r.terms.Principal, r.terms.AnnualRate) +
		loans.CalculateInsurancePayment(r.terms.Principal, r.terms.AnnualInsuranceRate)

	summary := optimization.Summary{
		TargetMonths: targetMonths,
		Original:     minPayment,
	}

	if targetMonths >= r.terms.TermMonths {
		eval, err := r.evaluate(minPayment, targetMonths)
		if err != nil {
			return optimization.Summary{}, err
		}
		summary.Payment = minPayment
		summary.Months = eval.months
		summary.InterestSaved = loans.BaselineInterest(r.terms) - eval.interest
		summary.Converged = true
		summary.Notes = []string{fmt.Sprintf(
			"target of %d months is not shorter than the %d month term; the minimum payment already meets it",
			targetMonths, r.terms.TermMonths)}
		return summary, nil
	}

	lower := minPayment
	upper := math.Ceil(payoffAtOnce)
	iterations := 0
	for iterations < r.maxIterations && !mathutil.WithinTolerance(upper, lower, r.tolerance) {
		mid := lower + (upper-lower)/2
		eval, err := r.evaluate(mid, targetMonths)
		if err != nil {
			return optimization.Summary{}, err
		}
		iterations++
		if eval.feasible() {
			upper = mid
		} else {
			lower = mid
		}
	}

	final, err := r.evaluate(math.Ceil(upper), targetMonths)
	if err != nil {
		return optimization.Summary{}, err
	}

	summary.Payment = final.payment
	summary.Months = final.months
	summary.InterestSaved = loans.BaselineInterest(r.terms) - final.interest
	summary.Iterations = iterations
	summary.Converged = final.feasible()
	if !summary.Converged {
		summary.Notes = []string{fmt.Sprintf("unable to pay off within %d months with payments up to %s",
			targetMonths, format.Currency(final.payment))}
	}

	r.logger.Info("payoff plan computed",
		zap.String("op", "optimizer.Run"),
		zap.Int("targetMonths", targetMonths),
		zap.Float64("payment", summary.Payment),
		zap.Float64("interestSaved", mathutil.Round(summary.InterestSaved)),
		zap.Int("months", summary.Months),
		zap.Int("iterations", iterations),
		zap.Bool("converged", summary.Converged),
	)

	return summary, nil
}

func (r *Runner) evaluate(payment float64, targetMonths int) (evaluation, error) {
	calc := loans.NewCalculator(r.logger)
	if err := calc.SetTerms(r.terms); err != nil {
		return evaluation{}, err
	}
	if err := calc.FillPayments(payment); err != nil {
		return evaluation{}, err
	}
	s := calc.Summary()
	return evaluation{
		payment:  payment,
		months:   s.ActualMonths,
		interest: s.TotalInterest,
		target:   targetMonths,
	}, nil
}
