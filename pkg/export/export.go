// Package export renders tables for download.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
)

// Format names a download format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

var ErrNoColumns = errors.New("export requires at least one column")

// Table is a titled grid of cells. Every row is aligned with Columns; short rows are padded.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// ContentType returns the MIME type served for f, or "" when f is unknown.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return ""
	}
}

// Write renders t in format f.
func Write(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatPDF:
		return WritePDF(w, t)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteCSV writes a header line followed by one record per row.
func WriteCSV(w io.Writer, t Table) error {
	if len(t.Columns) == 0 {
		return ErrNoColumns
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(t.align(row)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WritePDF lays the table out on landscape A4 pages, sizing columns by their longest cell.
func WritePDF(w io.Writer, t Table) error {
	if len(t.Columns) == 0 {
		return ErrNoColumns
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	widths := t.columnWidths(277)

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, col := range t.Columns {
			pdf.CellFormat(widths[i], 7, tr(col), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})

	pdf.AddPage()
	if t.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	header()
	for _, row := range t.Rows {
		for i, cell := range t.align(row) {
			pdf.CellFormat(widths[i], 6, tr(truncate(pdf, cell, widths[i]-2)), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func (t Table) align(row []string) []string {
	if len(row) == len(t.Columns) {
		return row
	}
	out := make([]string, len(t.Columns))
	copy(out, row)
	return out
}

func (t Table) columnWidths(total float64) []float64 {
	weights := make([]float64, len(t.Columns))
	var sum float64
	for i, col := range t.Columns {
		longest := utf8.RuneCountInString(col)
		for _, row := range t.Rows {
			if i < len(row) {
				if n := utf8.RuneCountInString(row[i]); n > longest {
					longest = n
				}
			}
		}
		weights[i] = float64(min(max(longest, 6), 40))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] = total * weights[i] / sum
	}
	return weights
}

func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
