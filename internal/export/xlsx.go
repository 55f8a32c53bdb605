package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"bizdoc/internal/classifier"
	"bizdoc/internal/domain"
)

// SummarySheet is the name of the first workbook sheet.
const SummarySheet = "Summary"

const maxSheetName = 31

// WriteXLSX writes a workbook with a Summary sheet followed by one sheet per
// financial table. Cells of data columns that parse as numbers are written
// as numbers.
func WriteXLSX(w io.Writer, doc *domain.ParsedDocument) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	used := map[string]bool{strings.ToLower(SummarySheet): true}
	sheets := make([]string, len(doc.FinancialData))
	for i, fd := range doc.FinancialData {
		name := uniqueSheetName(fd.Title, i+1, used)
		sheets[i] = name
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx: sheet %q: %w", name, err)
		}
		if err := writeTableSheet(f, name, fd, chartFor(doc, i), bold); err != nil {
			return err
		}
	}

	if err := writeSummarySheet(f, doc, sheets, bold); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func writeTableSheet(f *excelize.File, sheet string, fd domain.FinancialData, chart domain.ChartAnalysis, headerStyle int) error {
	numeric := map[int]bool{}
	for _, c := range chart.DataColumns {
		numeric[c] = true
	}

	for r, row := range fd.TableData {
		values := make([]interface{}, len(row))
		for c, cell := range row {
			values[c] = cell
			if r == 0 || !numeric[c] {
				continue
			}
			if v, ok := classifier.ParseNumber(cell); ok {
				values[c] = v
			}
		}
		if err := setRow(f, sheet, r+1, values); err != nil {
			return err
		}
	}
	if len(fd.TableData) > 0 {
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, doc *domain.ParsedDocument, sheets []string, headerStyle int) error {
	meta := doc.Metadata
	rows := [][]interface{}{
		{"Title", meta.Title},
		{"Company", meta.Company},
		{"Document Type", meta.DocumentType},
		{"Industry", meta.Industry},
		{"Status", meta.Status},
		{},
		{"Table", "Sheet", "Category", "Min", "Max", "Average", "Total", "Growth %"},
	}
	headerRow := len(rows)

	for i, fd := range doc.FinancialData {
		chart := chartFor(doc, i)
		row := []interface{}{fd.Title, sheets[i], string(chart.Category)}
		for _, key := range statKeys {
			if v, ok := chart.Stats[key]; ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	for i, row := range rows {
		if err := setRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(SummarySheet, headerRow, headerRow, headerStyle); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: row %d of %q: %w", row, sheet, err)
	}
	return nil
}

// uniqueSheetName derives a valid, unused sheet name from title. Excel limits
// names to 31 characters, forbids []:*?/\ and compares case-insensitively.
func uniqueSheetName(title string, n int, used map[string]bool) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return ' '
		}
		return r
	}, title)
	base = strings.Trim(strings.TrimSpace(base), "'")
	if base == "" {
		base = fmt.Sprintf("Table %d", n)
	}

	name := truncateRunes(base, maxSheetName)
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return strings.TrimSpace(string(r[:n]))
	}
	return s
}
