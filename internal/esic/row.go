package esic

import (
	"strings"
)

// pivotLength is the length of an insured person number.
const pivotLength = 10

// reasonOpeners are the phrases a reason field is known to start with, in
// match priority order. The empty string matches anything and ends the scan.
var reasonOpeners = []string{
	"on leave",
	"absent",
	"joined",
	"resigned",
	"on duty",
	"on training",
	"on tour",
	"left",
	"-",
	"",
}

// FlattenRow joins the trimmed cells of a raw row with single spaces and
// splits the result into tokens. Blank rows yield no tokens.
func FlattenRow(row RawRow) []string {
	cells := make([]string, 0, len(row))
	for _, cell := range row {
		cells = append(cells, strings.TrimSpace(cell))
	}
	return strings.Fields(strings.Join(cells, " "))
}

// IsPivot reports whether token has the shape of an insured person number.
func IsPivot(token string) bool {
	if len(token) != pivotLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}

// FindPivot returns the index of the first pivot token.
func FindPivot(tokens []string) (int, bool) {
	for i, token := range tokens {
		if IsPivot(token) {
			return i, true
		}
	}
	return -1, false
}

// SegmentTokens splits tokens around the first pivot. Rows without a pivot
// are not data rows and report false.
func SegmentTokens(tokens []string) (Segment, bool) {
	idx, ok := FindPivot(tokens)
	if !ok {
		return Segment{}, false
	}
	return Segment{
		Prefix:     tokens[:idx],
		Identifier: tokens[idx],
		Suffix:     tokens[idx+1:],
	}, true
}

// AssignFields maps a segmented row onto the structured fields. Numeric
// suffix values are taken from the tail: contribution first, then wages,
// then days.
func AssignFields(seg Segment) StructuredRow {
	row := StructuredRow{Identifier: seg.Identifier}

	if len(seg.Prefix) > 0 {
		row.Serial = seg.Prefix[0]
	}
	if len(seg.Prefix) > 1 {
		row.Disabled = seg.Prefix[1]
	}
	if len(seg.Prefix) > 2 {
		row.Name = strings.Join(seg.Prefix[2:], " ")
	}

	var numbers, words []string
	for _, token := range seg.Suffix {
		if IsNumber(token) {
			numbers = append(numbers, token)
		} else {
			words = append(words, token)
		}
	}

	n := len(numbers)
	if n >= 3 {
		row.Days = numbers[n-3]
	}
	if n >= 2 {
		row.Wages = numbers[n-2]
	}
	if n >= 1 {
		row.Contribution = numbers[n-1]
	}
	row.Reason = strings.Join(words, " ")

	return row
}

// Disambiguate moves a name fragment that leaked into the reason back onto
// the name. The first opener in priority order found anywhere in the reason
// marks where the reason really starts, even when a lower priority opener
// occurs earlier in the text.
func Disambiguate(name, reason string) (string, string) {
	if reason == "-" {
		return name, reason
	}

	split := -1
	for _, opener := range reasonOpeners {
		if idx := indexFold(reason, opener); idx >= 0 {
			split = idx
			break
		}
	}
	if split <= 0 {
		return name, reason
	}

	fragment := strings.TrimSpace(reason[:split])
	name = strings.TrimSpace(name + " " + fragment)
	return name, strings.TrimSpace(reason[split:])
}

// ParseTokens runs segmentation, field assignment and disambiguation on one
// tokenized row.
func ParseTokens(tokens []string) (StructuredRow, bool) {
	seg, ok := SegmentTokens(tokens)
	if !ok {
		return StructuredRow{}, false
	}
	row := AssignFields(seg)
	row.Name, row.Reason = Disambiguate(row.Name, row.Reason)
	row.Name = strings.TrimSpace(row.Name)
	return row, true
}

// ParseLine parses a single flat text row.
func ParseLine(line string) (StructuredRow, bool) {
	return ParseTokens(strings.Fields(line))
}

// indexFold is a case-insensitive strings.Index for ASCII needles.
func indexFold(s, substr string) int {
	n := len(substr)
	if n == 0 {
		return 0
	}
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}
