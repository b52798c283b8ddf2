package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/i18n"
)

// Sheet names of the comparison workbook.
const (
	ComparisonSheet = "Comparison"
	BreakdownSheet  = "Breakdown"
)

// WriteComparisonXLSX writes the saved plants as a workbook with a totals
// sheet and a per-source breakdown sheet.
func WriteComparisonXLSX(w io.Writer, plants []scenario.Snapshot, tr *i18n.Translator) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ComparisonSheet); err != nil {
		return err
	}
	headers := []string{tr.T(i18n.Plant), tr.T(i18n.Region), tr.T(i18n.Baseline), tr.T(i18n.PostAction), tr.T(i18n.Reduction)}
	if err := writeRow(f, ComparisonSheet, 1, toAny(headers)); err != nil {
		return err
	}
	for i, s := range plants {
		row := []any{s.Plant, s.Region, round1(s.Baseline), round1(s.PostTotal), round1(s.Reduction)}
		if err := writeRow(f, ComparisonSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(BreakdownSheet); err != nil {
		return err
	}
	headers = []string{tr.T(i18n.Plant)}
	for _, src := range emissions.Sources {
		headers = append(headers, tr.Source(src))
	}
	headers = append(headers, tr.T(i18n.Total))
	if err := writeRow(f, BreakdownSheet, 1, toAny(headers)); err != nil {
		return err
	}
	for i, s := range plants {
		row := []any{s.Plant}
		for _, e := range s.Breakdown.Entries() {
			row = append(row, round1(e.Value))
		}
		row = append(row, round1(s.Breakdown.Sum()))
		if err := writeRow(f, BreakdownSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if row == 1 {
			if err := f.SetColWidth(sheet, colName(i+1), colName(i+1), 18); err != nil {
				return err
			}
		}
	}
	return nil
}

func colName(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
