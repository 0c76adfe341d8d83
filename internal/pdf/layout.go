package pdf

import (
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// word is a run of glyphs with no visible gap between them. Space glyphs
// are kept as separator pieces until words are merged.
type word struct {
	X0, X1 float64
	Y      float64
	Text   string
	space  bool
	seq    int
}

// textLine is a set of words sharing a baseline, ordered left to right
type textLine struct {
	Y     float64
	Words []word
}

// String joins the words of the line with single spaces
func (l textLine) String() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// splitGlyphs breaks text runs into word pieces and space separators, in
// content stream order. Positions inside a run are interpolated from the run
// width; fonts without a widths table report zero and stack their glyphs.
func splitGlyphs(texts []pdf.Text) []word {
	pieces := make([]word, 0, len(texts))
	for _, t := range texts {
		runes := []rune(t.S)
		if len(runes) == 0 {
			continue
		}
		charW := t.W / float64(len(runes))
		at := func(i int) float64 { return t.X + charW*float64(i) }

		var b strings.Builder
		start := 0
		flush := func(end int) {
			if b.Len() == 0 {
				return
			}
			pieces = append(pieces, word{X0: at(start), X1: at(end), Y: t.Y, Text: b.String(), seq: len(pieces)})
			b.Reset()
		}
		for i, r := range runes {
			if unicode.IsSpace(r) {
				flush(i)
				pieces = append(pieces, word{X0: at(i), X1: at(i + 1), Y: t.Y, space: true, seq: len(pieces)})
				continue
			}
			if b.Len() == 0 {
				start = i
			}
			b.WriteRune(r)
		}
		flush(len(runes))
	}
	return pieces
}

// groupLines clusters glyphs into lines, top of the page first, and merges
// adjacent glyphs into words. Baselines within snap belong to the same line;
// glyphs closer than join are part of the same word unless a space glyph
// separates them.
func groupLines(texts []pdf.Text, snap, join float64) []textLine {
	pieces := splitGlyphs(texts)
	if len(pieces) == 0 {
		return nil
	}

	sort.SliceStable(pieces, func(i, j int) bool {
		if pieces[i].Y != pieces[j].Y {
			return pieces[i].Y > pieces[j].Y
		}
		return pieces[i].X0 < pieces[j].X0
	})

	var lines []textLine
	current := textLine{Y: pieces[0].Y}
	var members []word
	closeLine := func() {
		if current.Words = mergeWords(members, join); len(current.Words) > 0 {
			lines = append(lines, current)
		}
	}
	for _, p := range pieces {
		if current.Y-p.Y > snap {
			closeLine()
			current = textLine{Y: p.Y}
			members = nil
		}
		members = append(members, p)
	}
	closeLine()

	return lines
}

// mergeWords orders pieces by x, then stream order, and joins touching ones.
// A space piece always ends the word before it.
func mergeWords(pieces []word, join float64) []word {
	sort.SliceStable(pieces, func(i, j int) bool {
		if pieces[i].X0 != pieces[j].X0 {
			return pieces[i].X0 < pieces[j].X0
		}
		return pieces[i].seq < pieces[j].seq
	})

	var words []word
	separated := true
	for _, p := range pieces {
		if p.space {
			separated = true
			continue
		}
		if n := len(words); n > 0 && !separated {
			last := &words[n-1]
			if gap := p.X0 - last.X1; gap <= join && gap >= -join {
				last.Text += p.Text
				if p.X1 > last.X1 {
					last.X1 = p.X1
				}
				continue
			}
		}
		words = append(words, p)
		separated = false
	}
	return words
}

// linesText renders lines as newline separated text
func linesText(lines []textLine) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}
