// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/loan-amortizer/pkg/datetime"
	"github.com/iwvelando/loan-amortizer/pkg/loans"
)

// ReferenceStartDate is the start date of ReferenceTerms.
var ReferenceStartDate = datetime.MustParseTime(datetime.DateLayout, "2026-10-16")

// ReferenceTerms returns the 140000 Bs, 11.84%, 60 month loan with 2.35%
// desgravamen insurance used throughout the tests.
func ReferenceTerms() loans.Terms {
	return loans.Terms{
		Principal:           140000,
		AnnualRate:          11.84,
		TermMonths:          60,
		AnnualInsuranceRate: 2.35,
		StartDate:           ReferenceStartDate,
	}
}

// FindRow finds an installment by its 1-based index in rows.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(rows []loans.Row, index int) *loans.Row {
	for i := range rows {
		if rows[i].Index == index {
			return &rows[i]
		}
	}
	return nil
}
