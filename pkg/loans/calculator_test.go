package loans

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCalculator(t *testing.T) (*Calculator, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)}
	calc := NewCalculator(zap.NewNop(), WithClock(clock.Now), WithAlertDelay(8*time.Second))
	if err := calc.SetTerms(referenceTerms()); err != nil {
		t.Fatalf("SetTerms() error = %v", err)
	}
	return calc, clock
}

func TestCalculatorBeforeTerms(t *testing.T) {
	calc := NewCalculator(nil)

	if err := calc.Recalculate(); !errors.Is(err, ErrNoTerms) {
		t.Errorf("Recalculate() error = %v, expected ErrNoTerms", err)
	}
	if err := calc.SetPayment(1, 100); !errors.Is(err, ErrNoTerms) {
		t.Errorf("SetPayment() error = %v, expected ErrNoTerms", err)
	}
	if err := calc.FillPayments(100); !errors.Is(err, ErrNoTerms) {
		t.Errorf("FillPayments() error = %v, expected ErrNoTerms", err)
	}
	if err := calc.Reset(); !errors.Is(err, ErrNoTerms) {
		t.Errorf("Reset() error = %v, expected ErrNoTerms", err)
	}
	if calc.MinimumPayment() != 0 {
		t.Errorf("MinimumPayment() = %.2f, expected 0", calc.MinimumPayment())
	}
	if len(calc.Rows()) != 0 {
		t.Errorf("expected no rows before terms are set")
	}
}

func TestCalculatorInitialSchedule(t *testing.T) {
	calc, _ := newTestCalculator(t)

	rows := calc.Rows()
	if len(rows) != 60 {
		t.Fatalf("expected 60 rows, got %d", len(rows))
	}
	if calc.Alert() != "" {
		t.Errorf("no alert expected for a full-term schedule, got %q", calc.Alert())
	}
	if math.Abs(calc.MinimumPayment()-3102.92) > 0.01 {
		t.Errorf("MinimumPayment() = %.2f, expected 3102.92", calc.MinimumPayment())
	}

	summary := calc.Summary()
	if summary.ActualMonths != 60 || summary.MonthsSaved != 0 {
		t.Errorf("summary months = %d saved %d, expected 60 saved 0", summary.ActualMonths, summary.MonthsSaved)
	}
	if len(calc.Payments()) != 60 {
		t.Errorf("expected a payment per month of the term, got %d", len(calc.Payments()))
	}
}

func TestCalculatorDefaultStartDate(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.October, 16, 15, 45, 0, 0, time.UTC)}
	calc := NewCalculator(nil, WithClock(clock.Now))

	terms := referenceTerms()
	terms.StartDate = time.Time{}
	if err := calc.SetTerms(terms); err != nil {
		t.Fatalf("SetTerms() error = %v", err)
	}

	start := calc.Terms().StartDate
	if start.Format("2006-01-02") != "2026-10-16" || start.Hour() != 0 {
		t.Errorf("start date = %s, expected midnight of 2026-10-16", start)
	}
	if calc.Rows()[0].Date != "nov 2026" {
		t.Errorf("first installment = %s, expected nov 2026", calc.Rows()[0].Date)
	}
}

func TestCalculatorSetPaymentEarlyPayoff(t *testing.T) {
	calc, clock := newTestCalculator(t)

	if err := calc.SetPayment(1, 50000); err != nil {
		t.Fatalf("SetPayment() error = %v", err)
	}

	summary := calc.Summary()
	if summary.ActualMonths != 35 || summary.MonthsSaved != 25 {
		t.Errorf("summary months = %d saved %d, expected 35 saved 25", summary.ActualMonths, summary.MonthsSaved)
	}
	if summary.InterestSaved <= 0 {
		t.Errorf("expected interest savings, got %.2f", summary.InterestSaved)
	}

	want := "¡Felicidades! Terminarás de pagar tu préstamo en 35 meses en lugar de 60 meses."
	if calc.Alert() != want {
		t.Errorf("Alert() = %q, expected %q", calc.Alert(), want)
	}

	clock.Advance(7 * time.Second)
	if calc.Alert() == "" {
		t.Errorf("alert should still be visible before the delay")
	}
	clock.Advance(2 * time.Second)
	if calc.Alert() != "" {
		t.Errorf("alert should clear after the delay, got %q", calc.Alert())
	}
}

func TestCalculatorRecalculateIsIdempotent(t *testing.T) {
	calc, _ := newTestCalculator(t)

	if err := calc.SetPayment(3, 100); err != nil {
		t.Fatalf("SetPayment() error = %v", err)
	}
	if err := calc.SetPayment(10, 25000); err != nil {
		t.Fatalf("SetPayment() error = %v", err)
	}

	firstRows, firstSummary := calc.Rows(), calc.Summary()
	for i := 0; i < 3; i++ {
		if err := calc.Recalculate(); err != nil {
			t.Fatalf("Recalculate() error = %v", err)
		}
	}
	secondRows, secondSummary := calc.Rows(), calc.Summary()

	if firstSummary != secondSummary {
		t.Errorf("summary changed: %+v vs %+v", firstSummary, secondSummary)
	}
	if len(firstRows) != len(secondRows) {
		t.Fatalf("row count changed: %d vs %d", len(firstRows), len(secondRows))
	}
	for i := range firstRows {
		if firstRows[i] != secondRows[i] {
			t.Fatalf("installment %d changed: %+v vs %+v", i+1, firstRows[i], secondRows[i])
		}
	}
}

func TestCalculatorRaisedPaymentSticks(t *testing.T) {
	calc, _ := newTestCalculator(t)

	if err := calc.SetPayment(3, 100); err != nil {
		t.Fatalf("SetPayment() error = %v", err)
	}

	row := calc.Rows()[2]
	if row.UserPayment != row.MinPayment {
		t.Errorf("installment 3 payment = %.2f, expected raised to %.2f", row.UserPayment, row.MinPayment)
	}
	if calc.Payments()[2] != row.MinPayment {
		t.Errorf("stored payment = %.2f, expected %.2f", calc.Payments()[2], row.MinPayment)
	}
}

func TestCalculatorFillPayments(t *testing.T) {
	calc, _ := newTestCalculator(t)

	if err := calc.FillPayments(10000); err != nil {
		t.Fatalf("FillPayments() error = %v", err)
	}
	if got := calc.Summary().ActualMonths; got != 16 {
		t.Errorf("months = %d, expected 16", got)
	}
	if !strings.Contains(calc.Alert(), "16 meses") {
		t.Errorf("Alert() = %q, expected early payoff in 16 months", calc.Alert())
	}

	// Lowering every payment again brings back months the first fill removed.
	if err := calc.FillPayments(0); err != nil {
		t.Fatalf("FillPayments() error = %v", err)
	}
	if got := calc.Summary().ActualMonths; got != 60 {
		t.Errorf("months = %d, expected 60", got)
	}
	if calc.Alert() != "" {
		t.Errorf("Alert() = %q, expected none for a full-term schedule", calc.Alert())
	}
}

func TestCalculatorReset(t *testing.T) {
	calc, _ := newTestCalculator(t)
	initial := calc.Rows()

	if err := calc.SetPayment(1, 50000); err != nil {
		t.Fatalf("SetPayment() error = %v", err)
	}
	if err := calc.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if calc.Alert() != "" {
		t.Errorf("Reset() should clear the alert, got %q", calc.Alert())
	}
	rows := calc.Rows()
	if len(rows) != len(initial) {
		t.Fatalf("expected %d rows after reset, got %d", len(initial), len(rows))
	}
	for i := range rows {
		if rows[i] != initial[i] {
			t.Fatalf("installment %d differs after reset: %+v vs %+v", i+1, rows[i], initial[i])
		}
	}
}

func TestCalculatorValidation(t *testing.T) {
	calc, clock := newTestCalculator(t)

	bad := referenceTerms()
	bad.AnnualRate = math.NaN()
	err := calc.SetTerms(bad)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("SetTerms() error = %v, expected ErrValidation", err)
	}
	if calc.Alert() != AdvisoryRate {
		t.Errorf("Alert() = %q, expected %q", calc.Alert(), AdvisoryRate)
	}
	if len(calc.Rows()) != 60 {
		t.Errorf("invalid terms must keep the previous schedule, got %d rows", len(calc.Rows()))
	}
	clock.Advance(9 * time.Second)
	if calc.Alert() != "" {
		t.Errorf("validation alert should clear after the delay")
	}

	if err := calc.SetPayment(61, 1000); !errors.Is(err, ErrValidation) {
		t.Errorf("SetPayment(61) error = %v, expected ErrValidation", err)
	}
	if err := calc.SetPayment(0, 1000); !errors.Is(err, ErrValidation) {
		t.Errorf("SetPayment(0) error = %v, expected ErrValidation", err)
	}
	if err := calc.SetPayment(1, -5); !errors.Is(err, ErrValidation) {
		t.Errorf("SetPayment(-5) error = %v, expected ErrValidation", err)
	}
	if err := calc.FillPayments(math.Inf(1)); !errors.Is(err, ErrValidation) {
		t.Errorf("FillPayments(+Inf) error = %v, expected ErrValidation", err)
	}
}

func TestCalculatorNewTermsRegenerate(t *testing.T) {
	calc, _ := newTestCalculator(t)
	if err := calc.SetPayment(1, 50000); err != nil {
		t.Fatalf("SetPayment() error = %v", err)
	}

	terms := referenceTerms()
	terms.Principal = 107770
	terms.AnnualRate = 14
	terms.TermMonths = 48
	terms.AnnualInsuranceRate = 1.998
	if err := calc.SetTerms(terms); err != nil {
		t.Fatalf("SetTerms() error = %v", err)
	}

	if got := len(calc.Rows()); got != 48 {
		t.Errorf("expected 48 rows, got %d", got)
	}
	if got := len(calc.Payments()); got != 48 {
		t.Errorf("expected 48 payments, got %d", got)
	}
	if sum := sumPrincipal(calc.Rows()); math.Abs(sum-terms.Principal) > 0.01 {
		t.Errorf("principal paid sums to %.2f, expected %.2f", sum, terms.Principal)
	}
}
