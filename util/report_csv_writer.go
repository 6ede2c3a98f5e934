package util

import (
	"encoding/csv"
	"fmt"
	"io"

	"dam-dash/models/report"
)

// WriteReportCSV writes the tabular columns of rows, header first.
func WriteReportCSV(w io.Writer, rows []report.DisplayRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(report.TableColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.TableRecord()); err != nil {
			return fmt.Errorf("failed to write CSV row for %q: %w", row.DamName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
