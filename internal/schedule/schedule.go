// Package schedule applies a loan configuration to the amortization engine
// and collects the resulting schedule.
package schedule

import (
	"fmt"
	"time"

	"github.com/iwvelando/loan-amortizer/internal/config"
	"github.com/iwvelando/loan-amortizer/internal/optimizer"
	"github.com/iwvelando/loan-amortizer/pkg/loans"
	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
	"github.com/iwvelando/loan-amortizer/pkg/optimization"
	"go.uber.org/zap"
)

// Result holds everything a caller displays or exports for one loan.
type Result struct {
	Terms          loans.Terms
	MinimumPayment float64
	Rows           []loans.Row
	Summary        loans.Summary
	Alert          string
	Warnings       []string
	Plan           *optimization.Summary // set when a target payoff term was requested
}

// Run builds a Calculator from conf, applies the configured payments and
// returns the recalculated schedule.
func Run(logger *zap.Logger, conf config.Configuration, opts ...loans.Option) (Result, error) {
	return RunAt(logger, conf, time.Now(), opts...)
}

// RunAt is Run with an injectable current time for the default start date.
func RunAt(logger *zap.Logger, conf config.Configuration, now time.Time, opts ...loans.Option) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var result Result
	result.Warnings = conf.ValidateConfiguration()

	terms, err := conf.Loan.Terms(now)
	if err != nil {
		return result, fmt.Errorf("failed to parse loan terms: %w", err)
	}

	calc := loans.NewCalculator(logger, opts...)
	if err := calc.SetTerms(terms); err != nil {
		return result, err
	}

	switch {
	case conf.Payments.TargetMonths > 0:
		runner, err := optimizer.NewRunner(logger, terms)
		if err != nil {
			return result, err
		}
		plan, err := runner.Run(conf.Payments.TargetMonths)
		if err != nil {
			return result, fmt.Errorf("failed to plan payoff: %w", err)
		}
		result.Plan = &plan
		if err := calc.FillPayments(plan.Payment); err != nil {
			return result, err
		}
	case conf.Payments.FillAll > 0:
		if err := calc.FillPayments(conf.Payments.FillAll); err != nil {
			return result, err
		}
	}

	for _, override := range conf.Payments.SortedOverrides() {
		if override.Month < 1 || override.Month > terms.TermMonths || override.Amount < 0 {
			logger.Debug(fmt.Sprintf("skipping payment override for month %d", override.Month),
				zap.String("op", "schedule.Run"),
			)
			continue
		}
		if err := calc.SetPayment(override.Month, override.Amount); err != nil {
			return result, err
		}
	}

	result.Terms = calc.Terms()
	result.MinimumPayment = calc.MinimumPayment()
	result.Rows = calc.Rows()
	result.Summary = calc.Summary()
	result.Alert = calc.Alert()

	logger.Info("schedule computed",
		zap.String("op", "schedule.Run"),
		zap.Int("months", result.Summary.ActualMonths),
		zap.Int("monthsSaved", result.Summary.MonthsSaved),
		zap.Float64("interestSaved", mathutil.Round(result.Summary.InterestSaved)),
	)

	return result, nil
}
