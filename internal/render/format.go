package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/a3tai/esic-ip-extractor/internal/esic"
)

// Format is a report output format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// Formats lists the supported formats, default first
var Formats = []Format{FormatPDF, FormatXLSX, FormatJSON}

// ParseFormat maps a user supplied name onto a Format. Blank means PDF.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatPDF, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (expected pdf, xlsx or json)", name)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "application/pdf"
	}
}

// Filename is the attachment name reports are served under
func (f Format) Filename() string {
	return "filtered_combined_table." + string(f)
}

// Report renders table in the given format
func Report(f Format, table esic.StructuredTable, opts Options) ([]byte, error) {
	switch f {
	case FormatPDF:
		return PDF(table, opts)
	case FormatXLSX:
		return XLSX(table, opts)
	case FormatJSON:
		data, err := json.MarshalIndent(table, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode table: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}
