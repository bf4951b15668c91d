package loans

import (
	"fmt"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"
)

// referenceInstallment is one row of a published amortization schedule.
type referenceInstallment struct {
	Month            int
	Payment          float64
	PrincipalPayment float64
	Interest         float64
	LoanBalance      float64
}

// referenceSchedule is a 175,000 loan at 4.5% over 360 months with no
// insurance, as published by an independent amortization calculator.
func referenceSchedule() []referenceInstallment {
	return []referenceInstallment{
		{1, 886.70, 230.45, 656.25, 174769.55},
		{2, 886.70, 231.31, 655.39, 174538.24},
		{3, 886.70, 232.18, 654.52, 174306.06},
		{12, 886.70, 240.14, 646.56, 172176.85},
		{24, 886.70, 251.17, 635.53, 169224.01},
		{36, 886.70, 262.71, 623.99, 166135.52},
		{60, 886.70, 287.40, 599.30, 159526.36},
		{120, 886.70, 359.76, 526.94, 140156.51},
		{180, 886.70, 450.35, 436.35, 115909.42},
		{240, 886.70, 563.75, 322.95, 85557.02},
		{300, 886.70, 705.70, 181.00, 47562.00},
		{359, 886.70, 880.09, 6.61, 883.39},
		{360, 886.70, 883.39, 3.31, 0.00},
	}
}

func referenceLoanTerms() Terms {
	return Terms{
		Principal:           175000,
		AnnualRate:          4.5,
		TermMonths:          360,
		AnnualInsuranceRate: 0,
		StartDate:           time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBaselineAgainstReferenceSchedule(t *testing.T) {
	engine := NewAmortizationEngine(zap.NewNop())

	rows, err := engine.GenerateBaseline(referenceLoanTerms())
	if err != nil {
		t.Fatalf("GenerateBaseline() error = %v", err)
	}
	if len(rows) != 360 {
		t.Fatalf("expected 360 rows, got %d", len(rows))
	}

	// The published schedule rounds to cents.
	tolerance := 0.01

	for _, ref := range referenceSchedule() {
		row := rows[ref.Month-1]

		t.Run(fmt.Sprintf("Month_%d", ref.Month), func(t *testing.T) {
			if row.Index != ref.Month {
				t.Fatalf("row index = %d, expected %d", row.Index, ref.Month)
			}
			if math.Abs(row.MinPayment-ref.Payment) > tolerance {
				t.Errorf("payment mismatch: got %.4f, expected %.2f", row.MinPayment, ref.Payment)
			}
			if math.Abs(row.PrincipalPaid-ref.PrincipalPayment) > tolerance {
				t.Errorf("principal mismatch: got %.4f, expected %.2f", row.PrincipalPaid, ref.PrincipalPayment)
			}
			if math.Abs(row.Interest-ref.Interest) > tolerance {
				t.Errorf("interest mismatch: got %.4f, expected %.2f", row.Interest, ref.Interest)
			}
			if math.Abs(row.RemainingBalance-ref.LoanBalance) > tolerance {
				t.Errorf("balance mismatch: got %.4f, expected %.2f", row.RemainingBalance, ref.LoanBalance)
			}
			if row.Insurance != 0 {
				t.Errorf("expected no insurance, got %.4f", row.Insurance)
			}
		})
	}
}

func TestReamortizeMatchesReferenceWithMinimumPayments(t *testing.T) {
	engine := NewAmortizationEngine(zap.NewNop())
	terms := referenceLoanTerms()

	rows, err := engine.GenerateBaseline(terms)
	if err != nil {
		t.Fatalf("GenerateBaseline() error = %v", err)
	}
	for i := range rows {
		rows[i].UserPayment = 0
	}

	rows, totals, err := engine.Reamortize(rows, terms)
	if err != nil {
		t.Fatalf("Reamortize() error = %v", err)
	}
	if totals.MonthsUsed != 360 {
		t.Fatalf("expected all 360 months, got %d", totals.MonthsUsed)
	}

	for _, ref := range referenceSchedule() {
		row := rows[ref.Month-1]
		if math.Abs(row.RemainingBalance-ref.LoanBalance) > 0.01 {
			t.Errorf("month %d balance = %.4f, expected %.2f", ref.Month, row.RemainingBalance, ref.LoanBalance)
		}
	}

	// Annuity payment times 360 less the principal.
	if math.Abs(totals.TotalInterest-144211.74) > 0.50 {
		t.Errorf("total interest = %.2f, expected about 144211.74", totals.TotalInterest)
	}
}

func TestReferenceScheduleDataIntegrity(t *testing.T) {
	referenceData := referenceSchedule()

	for i, payment := range referenceData {
		t.Run(fmt.Sprintf("RefData_Month_%d", payment.Month), func(t *testing.T) {
			calculatedPayment := payment.PrincipalPayment + payment.Interest
			if math.Abs(calculatedPayment-payment.Payment) > 0.01 {
				t.Errorf("reference data inconsistent: principal %.2f + interest %.2f = %.2f, but payment = %.2f",
					payment.PrincipalPayment, payment.Interest, calculatedPayment, payment.Payment)
			}

			if i > 0 && payment.LoanBalance >= referenceData[i-1].LoanBalance {
				t.Errorf("reference balance should decrease: month %d balance %.2f >= month %d balance %.2f",
					payment.Month, payment.LoanBalance, referenceData[i-1].Month, referenceData[i-1].LoanBalance)
			}
		})
	}
}
