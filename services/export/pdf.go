// Package export renders tabular reports as paginated PDF documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Table is a document with a title block, an optional header row and body rows.
type Table struct {
	Title    string
	Subtitle string
	Columns  []string
	// Widths in millimetres per column; zero entries share the remaining page width.
	Widths          []float64
	Rows            [][]string
	Footer          string
	FontSize        float64
	BoldFirstColumn bool
}

const (
	margin      = 14.0
	bottomLimit = 15.0
	lineHeight  = 4.5
	cellPadding = 1.5
)

var headerFill = [3]int{22, 160, 133}

// Render writes t as an A4 portrait PDF. The header row is repeated on every page.
func Render(w io.Writer, t Table) error {
	cols := len(t.Columns)
	if cols == 0 && len(t.Rows) > 0 {
		cols = len(t.Rows[0])
	}
	if cols == 0 {
		return fmt.Errorf("export: table %q has no columns", t.Title)
	}
	if t.FontSize == 0 {
		t.FontSize = 8
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	widths := columnWidths(t.Widths, cols, pageW-2*margin)

	if t.Footer != "" {
		pdf.SetFooterFunc(func() {
			pdf.SetY(-12)
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(0, 5, tr(t.Footer), "", 0, "L", false, 0, "")
		})
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(margin, 22, tr(t.Title))
	y := 26.0
	if t.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(100, 100, 100)
		pdf.Text(margin, 30, tr(t.Subtitle))
		pdf.SetTextColor(0, 0, 0)
		y = 35
	}
	pdf.SetY(y)

	header := func() {
		if len(t.Columns) == 0 {
			return
		}
		pdf.SetFont("Helvetica", "B", t.FontSize)
		pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
		pdf.SetTextColor(255, 255, 255)
		writeRow(pdf, tr, t.Columns, widths, true, false, t.FontSize)
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	for _, row := range t.Rows {
		pdf.SetFont("Helvetica", "", t.FontSize)
		h := rowHeight(pdf, tr, row, widths)
		if pdf.GetY()+h > pageH-bottomLimit {
			pdf.AddPage()
			pdf.SetY(margin)
			header()
			pdf.SetFont("Helvetica", "", t.FontSize)
		}
		writeRow(pdf, tr, row, widths, false, t.BoldFirstColumn, t.FontSize)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return pdf.Output(w)
}

func columnWidths(given []float64, cols int, usable float64) []float64 {
	out := make([]float64, cols)
	fixed, auto := 0.0, 0
	for i := 0; i < cols; i++ {
		if i < len(given) && given[i] > 0 {
			out[i] = given[i]
			fixed += given[i]
		} else {
			auto++
		}
	}
	if auto == 0 {
		return out
	}
	share := (usable - fixed) / float64(auto)
	if share < 10 {
		share = 10
	}
	for i := range out {
		if out[i] == 0 {
			out[i] = share
		}
	}
	return out
}

func cellLines(pdf *fpdf.Fpdf, tr func(string) string, text string, width float64) []string {
	var lines []string
	for _, part := range strings.Split(text, "\n") {
		split := pdf.SplitText(tr(part), width-2*cellPadding)
		if len(split) == 0 {
			split = []string{""}
		}
		lines = append(lines, split...)
	}
	return lines
}

func rowHeight(pdf *fpdf.Fpdf, tr func(string) string, row []string, widths []float64) float64 {
	maxLines := 1
	for i, w := range widths {
		if i >= len(row) {
			break
		}
		if n := len(cellLines(pdf, tr, row[i], w)); n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines)*lineHeight + cellPadding
}

func writeRow(pdf *fpdf.Fpdf, tr func(string) string, row []string, widths []float64, fill, boldFirst bool, size float64) {
	h := rowHeight(pdf, tr, row, widths)
	x0, y := margin, pdf.GetY()
	x := x0
	style := "D"
	if fill {
		style = "FD"
	}
	for i, w := range widths {
		text := ""
		if i < len(row) {
			text = row[i]
		}
		if boldFirst {
			if i == 0 {
				pdf.SetFont("Helvetica", "B", size)
			} else {
				pdf.SetFont("Helvetica", "", size)
			}
		}
		pdf.Rect(x, y, w, h, style)
		for j, line := range cellLines(pdf, tr, text, w) {
			pdf.Text(x+cellPadding, y+lineHeight*float64(j+1), line)
		}
		x += w
	}
	pdf.SetXY(x0, y+h)
}
