package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/iwvelando/loan-amortizer/pkg/datetime"
	"github.com/iwvelando/loan-amortizer/pkg/loans"
)

// Loan holds the terms of the loan as written in the configuration file.
type Loan struct {
	Principal           float64
	AnnualRate          float64 // percent
	TermMonths          int
	AnnualInsuranceRate float64 // percent
	StartDate           string  // YYYY-MM-DD, defaults to today
}

// Payments holds the user's payment edits.
type Payments struct {
	FillAll      float64 // every installment pays this amount when > 0
	TargetMonths int     // plan a uniform payment that finishes within this many months
	Overrides    []PaymentOverride
}

// PaymentOverride sets the payment of one installment.
type PaymentOverride struct {
	Month  int // 1-based installment number
	Amount float64
}

// Terms converts the configured loan into engine terms. now supplies the
// default start date.
func (loan Loan) Terms(now time.Time) (loans.Terms, error) {
	start, err := datetime.ParseStartDate(loan.StartDate, now)
	if err != nil {
		return loans.Terms{}, err
	}
	return loans.Terms{
		Principal:           loan.Principal,
		AnnualRate:          loan.AnnualRate,
		TermMonths:          loan.TermMonths,
		AnnualInsuranceRate: loan.AnnualInsuranceRate,
		StartDate:           start,
	}, nil
}

// SortedOverrides returns the overrides ordered by month. Later entries for
// the same month win.
func (p Payments) SortedOverrides() []PaymentOverride {
	byMonth := make(map[int]float64, len(p.Overrides))
	for _, override := range p.Overrides {
		byMonth[override.Month] = override.Amount
	}
	months := make([]int, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Ints(months)

	sorted := make([]PaymentOverride, 0, len(months))
	for _, month := range months {
		sorted = append(sorted, PaymentOverride{Month: month, Amount: byMonth[month]})
	}
	return sorted
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings. Problems that block computation are reported by the
// engine itself.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	payment := loans.CalculateMonthlyPayment(c.Loan.Principal, c.Loan.AnnualRate, c.Loan.TermMonths)

	if c.Payments.FillAll > 0 && c.Payments.FillAll < payment {
		warnings = append(warnings, fmt.Sprintf(
			"fillAll payment %.2f is below the monthly payment %.2f and will be raised to the minimum",
			c.Payments.FillAll, payment))
	}

	if c.Payments.TargetMonths < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"targetMonths %d is negative and will be ignored", c.Payments.TargetMonths))
	} else if c.Payments.TargetMonths > 0 && c.Payments.FillAll > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"targetMonths %d takes precedence over fillAll %.2f", c.Payments.TargetMonths, c.Payments.FillAll))
	}

	seen := make(map[int]int)
	for _, override := range c.Payments.Overrides {
		seen[override.Month]++
		if override.Month < 1 || (c.Loan.TermMonths > 0 && override.Month > c.Loan.TermMonths) {
			warnings = append(warnings, fmt.Sprintf(
				"payment override for month %d is outside the term of %d months and will be ignored",
				override.Month, c.Loan.TermMonths))
			continue
		}
		if override.Amount < 0 {
			warnings = append(warnings, fmt.Sprintf(
				"payment override for month %d is negative (%.2f) and will be ignored",
				override.Month, override.Amount))
			continue
		}
		if payment > 0 && override.Amount < payment {
			warnings = append(warnings, fmt.Sprintf(
				"payment override for month %d (%.2f) is below the monthly payment %.2f and will be raised to the minimum",
				override.Month, override.Amount, payment))
		}
	}

	months := make([]int, 0, len(seen))
	for month, count := range seen {
		if count > 1 {
			months = append(months, month)
		}
	}
	sort.Ints(months)
	for _, month := range months {
		warnings = append(warnings, fmt.Sprintf(
			"month %d has %d payment overrides; the last one wins", month, seen[month]))
	}

	return warnings
}
