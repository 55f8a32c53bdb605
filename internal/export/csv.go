package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"bizdoc/internal/classifier"
	"bizdoc/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// statColumns is the header of the statistics block.
var statColumns = []string{"Table", "Category", "Min", "Max", "Average", "Total", "Growth %"}

// statKeys lists the SummaryStats keys in statColumns order.
var statKeys = []string{classifier.StatMin, classifier.StatMax, classifier.StatAvg, classifier.StatTotal, classifier.StatGrowth}

// CSVWriter wraps csv.Writer for exporting financial tables.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteTable writes one titled block: a caption row, the table rows, and a
// blank separator row.
func (w *CSVWriter) WriteTable(fd domain.FinancialData) error {
	caption := []string{fd.Title, "Currency: " + fd.Currency, "Period: " + fd.Period}
	if err := w.csv.Write(caption); err != nil {
		return err
	}
	for _, row := range fd.TableData {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return w.csv.Write([]string{""})
}

// WriteStats writes the statistics block for every financial table of doc.
func (w *CSVWriter) WriteStats(doc *domain.ParsedDocument) error {
	if err := w.csv.Write(statColumns); err != nil {
		return err
	}
	for i, fd := range doc.FinancialData {
		chart := chartFor(doc, i)
		row := []string{fd.Title, string(chart.Category)}
		for _, key := range statKeys {
			row = append(row, formatStat(chart.Stats, key))
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, every financial table of doc, and the statistics
// block.
func WriteCSV(w io.Writer, doc *domain.ParsedDocument) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := NewCSVWriter(w)
	for _, fd := range doc.FinancialData {
		if err := cw.WriteTable(fd); err != nil {
			return err
		}
	}
	if err := cw.WriteStats(doc); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func formatStat(stats map[string]float64, key string) string {
	v, ok := stats[key]
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
