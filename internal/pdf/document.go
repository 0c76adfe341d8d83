package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/a3tai/esic-ip-extractor/internal/esic"
	pdferrors "github.com/a3tai/esic-ip-extractor/internal/pdf/errors"
)

// Document exposes the raw tables and text of a PDF page by page. It is
// owned by a single request.
type Document struct {
	reader   *pdf.Reader
	settings TableSettings
	lines    map[int][]textLine
}

var _ esic.Source = (*Document)(nil)

// OpenBytes parses an in-memory PDF
func OpenBytes(data []byte, settings TableSettings) (doc *Document, err error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	defer pdferrors.Recover(&err, pdferrors.ErrorTypeInvalidDocument, "open pdf", 0)

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, pdferrors.New(pdferrors.ErrorTypeInvalidDocument, "open pdf", err)
	}

	return &Document{
		reader:   reader,
		settings: settings,
		lines:    make(map[int][]textLine),
	}, nil
}

// OpenFile reads and parses a PDF from disk
func OpenFile(path string, settings TableSettings) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	return OpenBytes(data, settings)
}

// NumPages returns the number of pages
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// Tables returns the raw table grids found on a page
func (d *Document) Tables(page int) ([]esic.RawTable, error) {
	lines, err := d.pageLines(page)
	if err != nil {
		return nil, err
	}
	return tablesFromLines(lines, d.settings), nil
}

// PageText returns the page text as lines, top to bottom
func (d *Document) PageText(page int) (string, error) {
	lines, err := d.pageLines(page)
	if err != nil {
		return "", err
	}
	return linesText(lines), nil
}

func (d *Document) pageLines(page int) ([]textLine, error) {
	if lines, ok := d.lines[page]; ok {
		return lines, nil
	}
	texts, err := d.pageGlyphs(page)
	if err != nil {
		return nil, err
	}
	lines := groupLines(texts, d.settings.SnapTolerance, d.settings.JoinTolerance)
	d.lines[page] = lines
	return lines, nil
}

// pageGlyphs reads the positioned text runs of a page. ledongthuc/pdf panics
// on some malformed content streams.
func (d *Document) pageGlyphs(page int) (texts []pdf.Text, err error) {
	if page < 1 || page > d.reader.NumPage() {
		return nil, pdferrors.NewPageError(pdferrors.ErrorTypeExtraction, "read page", page,
			fmt.Errorf("invalid page number (document has %d pages)", d.reader.NumPage()))
	}
	defer pdferrors.Recover(&err, pdferrors.ErrorTypeExtraction, "read page", page)

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}
	return p.Content().Text, nil
}
