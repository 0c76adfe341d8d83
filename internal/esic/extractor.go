// Package esic reconstructs ESIC contribution rows from flattened PDF table
// text and filters them by insured person number or name.
package esic

import (
	"context"
	"errors"
	"fmt"

	"github.com/phuslu/log"

	"github.com/a3tai/esic-ip-extractor/internal/logging"
)

// ErrNoMatches is returned when no row matched any search term.
var ErrNoMatches = errors.New("no matching records found")

// Source yields raw tables and page text for one document. Pages are
// numbered from 1.
type Source interface {
	NumPages() int
	Tables(page int) ([]RawTable, error)
	PageText(page int) (string, error)
}

// Result is everything one extraction request produces.
type Result struct {
	Pages    int          `json:"pages"`
	Tables   int          `json:"tables"`
	Rows     int          `json:"rows"`
	Headings Headings     `json:"headings"`
	Footer   Footer       `json:"footer"`
	Search   SearchResult `json:"search"`
}

// Extractor runs the reconstruction pipeline. It holds no per-request state
// and is safe for concurrent use.
type Extractor struct {
	logger *log.Logger
}

// NewExtractor creates an extractor. A nil logger discards output.
func NewExtractor(logger *log.Logger) *Extractor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Extractor{logger: logger}
}

// ParseRow parses one flat text row.
func (e *Extractor) ParseRow(line string) (StructuredRow, bool) {
	return ParseLine(line)
}

// BuildTables reconstructs structured tables from raw grids.
func (e *Extractor) BuildTables(raws []RawTable) []StructuredTable {
	return BuildTables(raws)
}

// Search filters tables by terms.
func (e *Extractor) Search(tables []StructuredTable, terms []string) SearchResult {
	return Search(tables, terms)
}

// Metadata reads headings from page 1 and footer fields from the first page
// that has them.
func (e *Extractor) Metadata(ctx context.Context, src Source) (Headings, Footer, error) {
	texts := make([]string, 0, src.NumPages())
	for page := 1; page <= src.NumPages(); page++ {
		if err := ctx.Err(); err != nil {
			return Headings{}, Footer{}, err
		}
		text, err := src.PageText(page)
		if err != nil {
			return Headings{}, Footer{}, fmt.Errorf("read text of page %d: %w", page, err)
		}
		texts = append(texts, text)
	}

	var headings Headings
	if len(texts) > 0 {
		headings = ExtractHeadings(texts[0])
	}
	return headings, ExtractFooter(texts), nil
}

// Extract runs the whole pipeline over src. When nothing matches, the
// partial result is returned together with ErrNoMatches.
func (e *Extractor) Extract(ctx context.Context, src Source, terms []string) (*Result, error) {
	headings, footer, err := e.Metadata(ctx, src)
	if err != nil {
		return nil, err
	}

	var tables []StructuredTable
	rows := 0
	for page := 1; page <= src.NumPages(); page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raws, err := src.Tables(page)
		if err != nil {
			return nil, fmt.Errorf("extract tables of page %d: %w", page, err)
		}
		built := BuildTables(raws)
		for _, t := range built {
			rows += t.Len()
		}
		e.logger.Debug().
			Int("page", page).
			Int("raw_tables", len(raws)).
			Int("tables", len(built)).
			Msg("page processed")
		tables = append(tables, built...)
	}

	search := Search(tables, terms)
	result := &Result{
		Pages:    src.NumPages(),
		Tables:   len(tables),
		Rows:     rows,
		Headings: headings,
		Footer:   footer,
		Search:   search,
	}

	e.logger.Info().
		Int("pages", result.Pages).
		Int("tables", result.Tables).
		Int("rows", result.Rows).
		Int("matches", search.Matches.Len()).
		Strs("not_found", search.NotFound).
		Msg("extraction complete")

	if search.Matches.Len() == 0 {
		return result, ErrNoMatches
	}
	return result, nil
}
