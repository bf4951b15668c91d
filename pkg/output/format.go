// Package output provides utilities for formatting and exporting schedules.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/iwvelando/loan-amortizer/internal/schedule"
	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/iwvelando/loan-amortizer/pkg/format"
	"github.com/iwvelando/loan-amortizer/pkg/loans"
)

type summaryLine struct {
	label string
	value string
}

// PrettyFormat writes a human-readable table followed by the summary.
func PrettyFormat(w io.Writer, result schedule.Result) error {
	if result.Alert != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", result.Alert); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, strings.Join(constants.CSVHeader, "\t")+"\t"); err != nil {
		return err
	}
	for _, row := range result.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(rowFields(row), "\t")+"\t"); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := result.Summary
	lines := []summaryLine{
		{"Cuota Minima (sin seguro)", format.Currency(result.MinimumPayment)},
		{"Total Pagado", format.Currency(s.TotalPaid)},
		{"Total Intereses", format.Currency(s.TotalInterest)},
		{"Total Seguro Desgravamen", format.Currency(s.TotalInsurance)},
		{"Total Pagos Extra", format.Currency(s.TotalExtraPaid)},
		{"Tiempo Final", fmt.Sprintf("%d meses", s.ActualMonths)},
		{"Tiempo Ahorrado", fmt.Sprintf("%d meses", s.MonthsSaved)},
		{"Ahorro en Intereses", format.Currency(s.InterestSaved)},
	}

	if plan := result.Plan; plan != nil {
		lines = append(lines, summaryLine{
			label: fmt.Sprintf("Pago para %d meses", plan.TargetMonths),
			value: format.Currency(plan.Payment),
		})
		for _, note := range plan.Notes {
			lines = append(lines, summaryLine{label: "Nota", value: note})
		}
	}

	if _, err := fmt.Fprintln(w, "\n--- Resumen ---"); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, line := range lines {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", line.label, line.value); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteCSV writes the schedule in the fixed export column order.
func WriteCSV(w io.Writer, rows []loans.Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(constants.CSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(rowFields(row)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV export as a string.
func CsvString(rows []loans.Row) string {
	var sb strings.Builder
	// strings.Builder never fails to write.
	_ = WriteCSV(&sb, rows)
	return sb.String()
}

// WriteJSON writes the report form of result.
func WriteJSON(w io.Writer, result schedule.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewReport(result))
}

func rowFields(row loans.Row) []string {
	return []string{
		strconv.Itoa(row.Index),
		row.Date,
		format.Plain(row.UserPayment),
		format.Currency(row.MinPayment),
		format.Currency(row.Interest),
		format.Currency(row.PrincipalPaid),
		format.Currency(row.ExtraPayment),
		format.Currency(row.Insurance),
		format.Currency(row.RemainingBalance),
	}
}
