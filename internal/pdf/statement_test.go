package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

// statement column x positions in points
var statementColumns = []float64{30, 70, 130, 210, 360, 420, 500, 590}

// statementPage is the content of one generated contribution statement page
type statementPage struct {
	Headings []string
	Rows     [][]string
	Footer   []string
}

// buildStatement renders pages in the layout of a monthly contribution
// statement. Every word is placed separately so word gaps survive
// extraction.
func buildStatement(t *testing.T, pages ...statementPage) []byte {
	t.Helper()

	doc := fpdf.New("L", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 9)
	for _, page := range pages {
		doc.AddPage()
		y := 40.0
		for _, line := range page.Headings {
			placeWords(doc, 250, y, line)
			y += 16
		}

		y = 150
		header := []string{"SNo", "Disabled", "IPNumber", "IPName", "Days", "Wages", "Contribution", "Reason"}
		for i, cell := range header {
			doc.Text(statementColumns[i], y, cell)
		}
		for _, row := range page.Rows {
			y += 15
			for i, cell := range row {
				if i < len(statementColumns) {
					placeWords(doc, statementColumns[i], y, cell)
				}
			}
		}

		y = 540
		for _, line := range page.Footer {
			placeWords(doc, 30, y, line)
			y += 14
		}
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

// placeWords draws the words of text left to right, each well clear of the
// join tolerance
func placeWords(doc *fpdf.Fpdf, x, y float64, text string) {
	for _, w := range strings.Fields(text) {
		doc.Text(x, y, w)
		x += doc.GetStringWidth(w) + 8
	}
}

func sampleStatement(t *testing.T) []byte {
	t.Helper()
	return buildStatement(t,
		statementPage{
			Headings: []string{"Employees State Insurance", "Contribution History March 2024"},
			Rows: [][]string{
				{"1", "No", "3100000001", "RAMESH", "26", "15000.00", "112.50", "-"},
				{"2", "No", "3100000002", "SITA", "0", "0", "0", "Left"},
				{"3", "Yes", "3100000003", "MOHAN", "30", "18000.00", "135.00", "-"},
				{"4", "No", "3100000004", "GEETA", "12", "6000.00", "45.00", "-"},
			},
			Footer: []string{"Page 1 of 2", "Printed On: 05/04/2024 10:15:30AM"},
		},
		statementPage{
			Rows: [][]string{
				{"5", "No", "3100000005", "ARJUN", "26", "16000.00", "120.00", "-"},
				{"6", "No", "3100000006", "KAVYA", "20", "11000.00", "82.50", "-"},
				{"7", "No", "3100000007", "VIKRAM", "25", "14000.00", "105.00", "-"},
			},
			Footer: []string{"Page 2 of 2"},
		},
	)
}

func writeStatement(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// buildPrintedStatement draws every line as a single string with ordinary
// spaces, the way statement generators print rows
func buildPrintedStatement(t *testing.T, headings, rows, footer []string) []byte {
	t.Helper()

	doc := fpdf.New("L", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 9)
	doc.AddPage()

	y := 40.0
	for _, line := range headings {
		doc.Text(250, y, line)
		y += 16
	}
	y = 150
	for _, line := range rows {
		doc.Text(30, y, line)
		y += 15
	}
	y = 540
	for _, line := range footer {
		doc.Text(30, y, line)
		y += 14
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func printedStatement(t *testing.T) []byte {
	t.Helper()
	return buildPrintedStatement(t,
		[]string{"Employees State Insurance Corporation", "Contribution History For April 2024"},
		[]string{
			"SNo Is Disable IP Number IP Name No. Of Days Total Wages IP Contribution Reason",
			"1 N 1234567890 JOHN DOE on leave 25 2000.00 180.00",
			"2 N 1234567891 MARY ANN absent 20 1000.00 90.00",
			"3 Y 1234567892 RAVI KUMAR SHARMA - 26 15000.00 112.50",
		},
		[]string{"Page 1 of 1", "Printed On: 06/05/2024 09:41:12AM"},
	)
}
