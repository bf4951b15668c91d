package loans

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/iwvelando/loan-amortizer/pkg/datetime"
	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
	"go.uber.org/zap"
)

// Calculator owns one editable schedule. Every mutation recomputes the rows,
// the summary and the alert before returning. A Calculator is not safe for
// concurrent use.
type Calculator struct {
	logger     *zap.Logger
	engine     *AmortizationEngine
	now        func() time.Time
	alertDelay time.Duration

	terms    Terms
	ready    bool
	baseline []Row
	ledger   []float64 // user payment per month of the full term
	rows     []Row
	summary  Summary
	alert    Alert
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock replaces time.Now, used for alert expiry and default start dates.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithAlertDelay sets how long alerts stay visible.
func WithAlertDelay(d time.Duration) Option {
	return func(c *Calculator) {
		if d > 0 {
			c.alertDelay = d
		}
	}
}

// NewCalculator creates a Calculator with no terms.
func NewCalculator(logger *zap.Logger, opts ...Option) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Calculator{
		logger:     logger,
		engine:     NewAmortizationEngine(logger),
		now:        time.Now,
		alertDelay: constants.DefaultAlertDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTerms validates terms, regenerates the baseline, restores the default
// payments and recalculates. Invalid terms leave the previous schedule in
// place and raise the advisory as an alert.
func (c *Calculator) SetTerms(terms Terms) error {
	if terms.StartDate.IsZero() {
		terms.StartDate = datetime.Midnight(c.now())
	}

	baseline, err := c.engine.GenerateBaseline(terms)
	if err != nil {
		c.showAlert(Advisory(err))
		return err
	}

	c.terms = terms
	c.baseline = baseline
	c.ready = true
	c.resetLedger()

	c.logger.Debug("loan terms updated",
		zap.String("op", "loans.SetTerms"),
		zap.Float64("principal", terms.Principal),
		zap.Float64("annualRate", terms.AnnualRate),
		zap.Int("termMonths", terms.TermMonths),
		zap.Float64("annualInsuranceRate", terms.AnnualInsuranceRate),
	)

	return c.Recalculate()
}

// SetPayment sets the payment of one installment (1-based) and recalculates.
func (c *Calculator) SetPayment(index int, amount float64) error {
	if !c.ready {
		return ErrNoTerms
	}
	if index < 1 || index > len(c.ledger) {
		err := newValidationError("installment", AdvisoryInstallment)
		c.showAlert(Advisory(err))
		return fmt.Errorf("installment %d outside 1..%d: %w", index, len(c.ledger), err)
	}
	if err := validatePayment(amount); err != nil {
		c.showAlert(Advisory(err))
		return err
	}

	c.ledger[index-1] = amount
	return c.Recalculate()
}

// FillPayments sets every installment to amount and recalculates.
func (c *Calculator) FillPayments(amount float64) error {
	if !c.ready {
		return ErrNoTerms
	}
	if err := validatePayment(amount); err != nil {
		c.showAlert(Advisory(err))
		return err
	}

	for i := range c.ledger {
		c.ledger[i] = amount
	}
	return c.Recalculate()
}

// Reset restores the default payments, recalculates and clears the alert.
func (c *Calculator) Reset() error {
	if !c.ready {
		return ErrNoTerms
	}
	c.resetLedger()
	err := c.Recalculate()
	c.hideAlert()
	return err
}

// Recalculate re-amortizes the baseline under the current payments.
// Calling it again without changing any input yields the same result.
func (c *Calculator) Recalculate() error {
	if !c.ready {
		return ErrNoTerms
	}

	rows := make([]Row, len(c.baseline))
	copy(rows, c.baseline)
	for i := range rows {
		rows[i].UserPayment = c.ledger[i]
	}

	rows, totals, err := c.engine.Reamortize(rows, c.terms)
	if err != nil {
		c.showAlert(Advisory(err))
		return err
	}

	// Raised minimums stick to the ledger; the final-row payoff correction
	// stays on the row only.
	for i := range rows {
		if c.ledger[i] < rows[i].MinPayment {
			c.ledger[i] = rows[i].MinPayment
		}
	}

	c.rows = rows
	c.summary = Summarize(totals, c.terms)

	if totals.PaidOffEarly(c.terms) {
		c.showAlert(EarlyPayoffMessage(totals.MonthsUsed, c.terms.TermMonths))
	} else {
		c.hideAlert()
	}

	c.logger.Debug("schedule recalculated",
		zap.String("op", "loans.Recalculate"),
		zap.Int("months", c.summary.ActualMonths),
		zap.Float64("totalPaid", mathutil.Round(c.summary.TotalPaid)),
		zap.Float64("interestSaved", mathutil.Round(c.summary.InterestSaved)),
	)
	return nil
}

// Terms returns the current loan terms.
func (c *Calculator) Terms() Terms {
	return c.terms
}

// MinimumPayment returns the annuity payment without insurance, or 0 before
// terms are set.
func (c *Calculator) MinimumPayment() float64 {
	if !c.ready {
		return 0
	}
	return c.terms.MonthlyPayment()
}

// Rows returns a copy of the current schedule.
func (c *Calculator) Rows() []Row {
	rows := make([]Row, len(c.rows))
	copy(rows, c.rows)
	return rows
}

// Payments returns a copy of the per-month payments of the full term.
func (c *Calculator) Payments() []float64 {
	payments := make([]float64, len(c.ledger))
	copy(payments, c.ledger)
	return payments
}

// Summary returns the summary of the last recalculation.
func (c *Calculator) Summary() Summary {
	return c.summary
}

// Alert returns the advisory message, or "" once it has expired.
func (c *Calculator) Alert() string {
	if c.alert.Active(c.now()) {
		return c.alert.Message
	}
	return ""
}

func (c *Calculator) resetLedger() {
	c.ledger = make([]float64, len(c.baseline))
	for i, row := range c.baseline {
		c.ledger[i] = row.UserPayment
	}
}

func (c *Calculator) showAlert(message string) {
	c.alert = Alert{Message: message, ExpiresAt: c.now().Add(c.alertDelay)}
}

func (c *Calculator) hideAlert() {
	c.alert = Alert{}
}

func validatePayment(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return newValidationError("payment", AdvisoryPayment)
	}
	return nil
}
