package pdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/a3tai/esic-ip-extractor/internal/esic"
)

// Table detection strategies
const (
	StrategyText = "text"
)

// tableGapFactor is how many median line pitches of empty space end a table
const tableGapFactor = 3.0

// TableSettings controls how page text is cut into table grids
type TableSettings struct {
	VerticalStrategy   string  `json:"vertical_strategy"`
	HorizontalStrategy string  `json:"horizontal_strategy"`
	SnapTolerance      float64 `json:"snap_tolerance"`
	JoinTolerance      float64 `json:"join_tolerance"`
	MinWordsVertical   int     `json:"min_words_vertical"`
	MinWordsHorizontal int     `json:"min_words_horizontal"`
}

// DefaultTableSettings returns the settings contribution statements are
// extracted with. The tolerances decide which glyphs share a cell.
func DefaultTableSettings() TableSettings {
	return TableSettings{
		VerticalStrategy:   StrategyText,
		HorizontalStrategy: StrategyText,
		SnapTolerance:      3,
		JoinTolerance:      3,
		MinWordsVertical:   3,
		MinWordsHorizontal: 1,
	}
}

// Validate checks the settings are usable
func (s TableSettings) Validate() error {
	if s.VerticalStrategy != StrategyText || s.HorizontalStrategy != StrategyText {
		return fmt.Errorf("unsupported table strategy %q/%q: only %q is supported",
			s.VerticalStrategy, s.HorizontalStrategy, StrategyText)
	}
	if s.SnapTolerance < 0 || s.JoinTolerance < 0 {
		return fmt.Errorf("tolerances must not be negative")
	}
	if s.MinWordsVertical < 1 || s.MinWordsHorizontal < 1 {
		return fmt.Errorf("minimum word counts must be at least 1")
	}
	return nil
}

// tablesFromLines cuts the grouped lines of one page into raw table grids
func tablesFromLines(lines []textLine, settings TableSettings) []esic.RawTable {
	var tables []esic.RawTable
	for _, block := range splitBlocks(lines) {
		rows := make([]textLine, 0, len(block))
		for _, l := range block {
			if len(l.Words) >= settings.MinWordsHorizontal {
				rows = append(rows, l)
			}
		}
		if len(rows) == 0 {
			continue
		}

		edges := columnEdges(rows, settings)
		table := make(esic.RawTable, 0, len(rows))
		for _, l := range rows {
			table = append(table, cellsForLine(l, edges, settings.SnapTolerance))
		}
		tables = append(tables, table)
	}
	return tables
}

// splitBlocks separates runs of lines divided by an unusually large gap
func splitBlocks(lines []textLine) [][]textLine {
	if len(lines) < 3 {
		if len(lines) == 0 {
			return nil
		}
		return [][]textLine{lines}
	}

	pitches := make([]float64, 0, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		pitches = append(pitches, lines[i-1].Y-lines[i].Y)
	}
	sorted := append([]float64(nil), pitches...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]

	var blocks [][]textLine
	start := 0
	for i, p := range pitches {
		if median > 0 && p > median*tableGapFactor {
			blocks = append(blocks, lines[start:i+1])
			start = i + 1
		}
	}
	return append(blocks, lines[start:])
}

// columnEdges clusters word left edges; a cluster becomes a column edge when
// enough words start there
func columnEdges(lines []textLine, settings TableSettings) []float64 {
	var xs []float64
	for _, l := range lines {
		for _, w := range l.Words {
			xs = append(xs, w.X0)
		}
	}
	if len(xs) == 0 {
		return nil
	}
	sort.Float64s(xs)

	var edges []float64
	clusterStart, count := xs[0], 1
	prev := xs[0]
	flush := func() {
		if count >= settings.MinWordsVertical {
			edges = append(edges, clusterStart)
		}
	}
	for _, x := range xs[1:] {
		if x-prev <= settings.JoinTolerance {
			count++
		} else {
			flush()
			clusterStart, count = x, 1
		}
		prev = x
	}
	flush()

	if len(edges) == 0 {
		edges = []float64{xs[0]}
	}
	return edges
}

// cellsForLine places each word in the right-most column starting at or
// before it
func cellsForLine(l textLine, edges []float64, snap float64) esic.RawRow {
	cells := make([][]string, len(edges))
	for _, w := range l.Words {
		col := 0
		for i, edge := range edges {
			if edge <= w.X0+snap {
				col = i
			}
		}
		cells[col] = append(cells[col], w.Text)
	}

	row := make(esic.RawRow, len(edges))
	for i, c := range cells {
		row[i] = strings.Join(c, " ")
	}
	return row
}
