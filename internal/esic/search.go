package esic

import (
	"strings"
)

// DefaultTermDelimiter separates search terms in a single input field.
const DefaultTermDelimiter = "|"

// SearchResult is the combined outcome of a search across all tables.
// Found and NotFound partition the normalized term set.
type SearchResult struct {
	Matches  StructuredTable `json:"matches"`
	Found    []string        `json:"found"`
	NotFound []string        `json:"not_found"`
}

// ParseTerms splits a delimited search field into normalized terms.
func ParseTerms(input, delimiter string) []string {
	if delimiter == "" {
		delimiter = DefaultTermDelimiter
	}
	return NormalizeTerms(strings.Split(input, delimiter))
}

// NormalizeTerms trims and lower-cases terms, dropping blanks and
// duplicates while keeping first-occurrence order.
func NormalizeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		normalized = append(normalized, t)
	}
	return normalized
}

// Search returns the rows whose identifier or name equals one of terms,
// case-insensitively. Rows missing either field never match. No matches is
// an empty table, not an error.
func Search(tables []StructuredTable, terms []string) SearchResult {
	normalized := NormalizeTerms(terms)
	wanted := make(map[string]bool, len(normalized))
	for _, t := range normalized {
		wanted[t] = false
	}

	matches := NewTable()
	for _, table := range tables {
		for _, row := range table.Rows {
			if row.Identifier == "" || row.Name == "" {
				continue
			}
			id := strings.ToLower(row.Identifier)
			name := strings.ToLower(row.Name)

			_, idHit := wanted[id]
			_, nameHit := wanted[name]
			if !idHit && !nameHit {
				continue
			}
			if idHit {
				wanted[id] = true
			}
			if nameHit {
				wanted[name] = true
			}
			matches.Rows = append(matches.Rows, row)
		}
	}

	result := SearchResult{
		Matches:  matches,
		Found:    []string{},
		NotFound: []string{},
	}
	for _, t := range normalized {
		if wanted[t] {
			result.Found = append(result.Found, t)
		} else {
			result.NotFound = append(result.NotFound, t)
		}
	}
	return result
}
