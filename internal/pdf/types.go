package pdf

import (
	"github.com/a3tai/esic-ip-extractor/internal/esic"
)

// FileInfo describes a statement PDF on disk
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Request Types

// ExtractIPRequest asks for the rows of a statement that match the terms.
// Terms is a delimited list of IP numbers or names.
type ExtractIPRequest struct {
	Path       string `json:"path"`
	Terms      string `json:"terms"`
	OutputPath string `json:"output_path,omitempty"`
	Format     string `json:"format,omitempty"`
}

// ParseRowRequest asks for one flat row to be reconstructed
type ParseRowRequest struct {
	Line string `json:"line"`
}

// Result Types

// ExtractIPResult summarizes an extraction
type ExtractIPResult struct {
	Path        string               `json:"path"`
	Pages       int                  `json:"pages"`
	TablesFound int                  `json:"tables_found"`
	RowsParsed  int                  `json:"rows_parsed"`
	Headings    esic.Headings        `json:"headings"`
	Footer      esic.Footer          `json:"footer"`
	Found       []string             `json:"found"`
	NotFound    []string             `json:"not_found"`
	Matches     esic.StructuredTable `json:"matches"`
	OutputPath  string               `json:"output_path,omitempty"`
	Format      string               `json:"format,omitempty"`
	OutputSize  int                  `json:"output_size,omitempty"`
}

// ParseRowResult is the reconstructed row, if the line had a pivot
type ParseRowResult struct {
	Parsed bool                `json:"parsed"`
	Row    *esic.StructuredRow `json:"row,omitempty"`
}

// ServerInfoResult describes the running server and its statement directory
type ServerInfoResult struct {
	ServerName        string        `json:"server_name"`
	Version           string        `json:"version"`
	DefaultDirectory  string        `json:"default_directory"`
	MaxFileSize       int64         `json:"max_file_size"`
	TermDelimiter     string        `json:"term_delimiter"`
	TableSettings     TableSettings `json:"table_settings"`
	AvailableTools    []ToolInfo    `json:"available_tools"`
	DirectoryContents []FileInfo    `json:"directory_contents"`
	Truncated         bool          `json:"truncated,omitempty"`
	SupportedFormats  []string      `json:"supported_formats"`
	UsageGuidance     string        `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  string `json:"parameters"`
}
