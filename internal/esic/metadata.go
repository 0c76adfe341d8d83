package esic

import (
	"regexp"
	"strings"
)

var (
	pageCountPattern = regexp.MustCompile(`Page\s+\d+\s+of\s+(\d+)`)
	printedOnPattern = regexp.MustCompile(`Printed On:\s+(\d{1,2}/\d{1,2}/\d{4})`)
	printTimePattern = regexp.MustCompile(`(\d{1,2}:\d{2}:\d{2}(AM|PM))`)
)

// ExtractHeadings returns the first two trimmed lines of the first page text.
func ExtractHeadings(firstPage string) Headings {
	var h Headings
	if firstPage == "" {
		return h
	}
	lines := strings.Split(firstPage, "\n")
	if len(lines) > 0 {
		h.Main = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 {
		h.Sub = strings.TrimSpace(lines[1])
	}
	return h
}

// ExtractFooter scans page texts in order and returns the print metadata of
// the first page carrying any of it. TotalPages defaults to "1".
func ExtractFooter(pages []string) Footer {
	for _, text := range pages {
		if text == "" {
			continue
		}
		page := pageCountPattern.FindStringSubmatch(text)
		printed := printedOnPattern.FindStringSubmatch(text)
		clock := printTimePattern.FindStringSubmatch(text)
		if page == nil && printed == nil && clock == nil {
			continue
		}

		footer := Footer{TotalPages: "1"}
		if page != nil {
			footer.TotalPages = page[1]
		}
		if printed != nil {
			footer.PrintedOn = printed[1]
		}
		if clock != nil {
			footer.PrintedTime = clock[1]
		}
		return footer
	}
	return Footer{TotalPages: "1"}
}
