// Package render turns matched contribution rows into downloadable reports.
package render

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/a3tai/esic-ip-extractor/internal/esic"
)

// Page geometry in points
const (
	marginLeft   = 2.0
	marginRight  = 2.0
	marginTop    = 20.0
	marginBottom = 20.0

	// rows stop short of the footer lines
	tableBottom = 44.0

	logoWidth  = 80.0
	logoHeight = 70.0

	fontFamily   = "Helvetica"
	cellFontSize = 8.0
	lineHeight   = 10.0
	cellPadding  = 3.0
	maxCellLines = 8
	ellipsis     = "..."
)

// HeaderLabels are the report column titles, in esic.Columns order
var HeaderLabels = []string{
	"SNo",
	"Is Disable",
	"IP Number",
	"IP Name",
	"No. Of Days",
	"Total Wages",
	"IP Contribution",
	"Reason",
}

// Options carries the statement metadata printed around the table
type Options struct {
	Headings esic.Headings
	Footer   esic.Footer
	// LogoPath is drawn beside the headings when the file exists
	LogoPath string
}

// PDF renders the table as a landscape A4 report
func PDF(table esic.StructuredTable, opts Options) ([]byte, error) {
	doc := fpdf.New("L", "pt", "A4", "")
	doc.SetMargins(marginLeft, marginTop, marginRight)
	doc.SetAutoPageBreak(false, marginBottom)

	r := &pdfReport{
		doc:  doc,
		tr:   doc.UnicodeTranslatorFromDescriptor(""),
		opts: opts,
	}
	doc.SetFooterFunc(r.footer)
	doc.AddPage()

	r.heading()
	r.table(renumber(table))

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfReport struct {
	doc  *fpdf.Fpdf
	tr   func(string) string
	opts Options
}

func (r *pdfReport) heading() {
	left, top, right, _ := r.doc.GetMargins()
	pageW, _ := r.doc.GetPageSize()

	textX := left
	bottom := top
	if hasFile(r.opts.LogoPath) {
		r.doc.Image(r.opts.LogoPath, left, top, logoWidth, logoHeight, false, "", 0, "")
		if r.doc.Ok() {
			textX = left + logoWidth
			bottom = top + logoHeight
		} else {
			// unreadable logo, the report goes out without it
			r.doc.ClearError()
		}
	}
	textW := pageW - right - textX

	r.doc.SetXY(textX, top)
	if r.opts.Headings.Main != "" {
		r.doc.SetFont(fontFamily, "BU", 13)
		r.doc.CellFormat(textW, 18, r.tr(r.opts.Headings.Main), "", 2, "C", false, 0, "")
	}
	if r.opts.Headings.Sub != "" {
		r.doc.SetX(textX)
		r.doc.SetFont(fontFamily, "", 9)
		r.doc.MultiCell(textW, 11, r.tr(r.opts.Headings.Sub), "", "C", false)
	}

	y := r.doc.GetY()
	if bottom > y {
		y = bottom
	}
	if y == top {
		y += 50
	}
	r.doc.SetXY(left, y+12)
}

func (r *pdfReport) table(rows [][]string) {
	widths := r.columnWidths(rows)

	r.headerRow(widths)
	r.doc.SetFont(fontFamily, "", cellFontSize)
	for _, row := range rows {
		lines := make([][]string, len(row))
		height := 0
		for i, cell := range row {
			lines[i] = r.wrap(cell, widths[i]-2*cellPadding)
			if len(lines[i]) > height {
				height = len(lines[i])
			}
		}
		rowH := float64(height)*lineHeight + 2*cellPadding

		_, pageH := r.doc.GetPageSize()
		if r.doc.GetY()+rowH > pageH-tableBottom {
			r.doc.AddPage()
			r.headerRow(widths)
			r.doc.SetFont(fontFamily, "", cellFontSize)
		}
		r.drawRow(lines, widths, rowH)
	}
}

func (r *pdfReport) headerRow(widths []float64) {
	r.doc.SetFont(fontFamily, "B", cellFontSize)
	lines := make([][]string, len(HeaderLabels))
	for i, label := range HeaderLabels {
		lines[i] = []string{label}
	}
	r.drawRow(lines, widths, lineHeight+4*cellPadding)
}

func (r *pdfReport) drawRow(lines [][]string, widths []float64, rowH float64) {
	left, _, _, _ := r.doc.GetMargins()
	x, y := left, r.doc.GetY()
	for i, cell := range lines {
		r.doc.Rect(x, y, widths[i], rowH, "D")
		ty := y + (rowH-float64(len(cell))*lineHeight)/2
		for _, line := range cell {
			r.doc.SetXY(x+cellPadding, ty)
			r.doc.CellFormat(widths[i]-2*cellPadding, lineHeight, line, "", 0, "L", false, 0, "")
			ty += lineHeight
		}
		x += widths[i]
	}
	r.doc.SetXY(left, y+rowH)
}

// wrap splits a cell into lines that fit w, capped at maxCellLines. A cut
// cell ends in an ellipsis.
func (r *pdfReport) wrap(text string, w float64) []string {
	text = r.tr(text)
	if text == "" {
		return []string{""}
	}
	lines := r.doc.SplitText(text, w)
	if len(lines) == 0 {
		return []string{""}
	}
	if len(lines) > maxCellLines {
		lines = lines[:maxCellLines]
		last := strings.TrimRight(lines[maxCellLines-1], " ")
		for last != "" && r.doc.GetStringWidth(last+ellipsis) > w {
			last = last[:len(last)-1] // translated text is single-byte
		}
		lines[maxCellLines-1] = last + ellipsis
	}
	return lines
}

// columnWidths sizes columns to their widest cell and shrinks them
// proportionally when the total exceeds the printable width
func (r *pdfReport) columnWidths(rows [][]string) []float64 {
	left, _, right, _ := r.doc.GetMargins()
	pageW, _ := r.doc.GetPageSize()
	avail := pageW - left - right

	widths := make([]float64, len(HeaderLabels))
	r.doc.SetFont(fontFamily, "B", cellFontSize)
	for i, label := range HeaderLabels {
		widths[i] = r.doc.GetStringWidth(label) + 2*cellPadding
	}
	r.doc.SetFont(fontFamily, "", cellFontSize)
	for _, row := range rows {
		for i, cell := range row {
			if w := r.doc.GetStringWidth(r.tr(cell)) + 2*cellPadding; w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total > avail {
		scale := avail / total
		for i := range widths {
			widths[i] *= scale
		}
	}
	return widths
}

func (r *pdfReport) footer() {
	left, _, right, _ := r.doc.GetMargins()
	pageW, pageH := r.doc.GetPageSize()
	edge := pageW - right - 28

	r.doc.SetFont(fontFamily, "", 8)
	r.doc.Text(left+28, pageH-15, "Page "+strconv.Itoa(r.doc.PageNo()))

	printed := "Printed On: " + r.opts.Footer.PrintedOn
	r.doc.Text(edge-r.doc.GetStringWidth(printed), pageH-15, r.tr(printed))
	if clock := r.opts.Footer.PrintedTime; clock != "" {
		r.doc.Text(edge-r.doc.GetStringWidth(clock), pageH-38, r.tr(clock))
	}
}

// renumber lays rows out in report order with serials 1..n
func renumber(table esic.StructuredTable) [][]string {
	rows := make([][]string, 0, table.Len())
	for i, row := range table.Rows {
		values := row.Values()
		values[0] = strconv.Itoa(i + 1)
		rows = append(rows, values)
	}
	return rows
}

func hasFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
