package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/a3tai/esic-ip-extractor/internal/descriptions"
	"github.com/a3tai/esic-ip-extractor/internal/render"
)

// Statement listing limits
const (
	listingTTL      = 5 * time.Minute
	listingMaxDepth = 3
	listingMaxFiles = 100
	listingTimeout  = 3 * time.Second
)

// statementListing caches the statement PDFs found under the configured
// directory
type statementListing struct {
	mu        sync.Mutex
	files     []FileInfo
	truncated bool
	updated   time.Time
	ttl       time.Duration
}

func newStatementListing(ttl time.Duration) *statementListing {
	return &statementListing{ttl: ttl}
}

// Files returns the cached listing of root, rescanning once it is stale
func (l *statementListing) Files(ctx context.Context, root string) ([]FileInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.updated.IsZero() && time.Since(l.updated) <= l.ttl {
		return l.files, l.truncated
	}

	scanCtx, cancel := context.WithTimeout(ctx, listingTimeout)
	defer cancel()

	files, truncated := scanStatements(scanCtx, root, listingMaxDepth, listingMaxFiles)
	if ctx.Err() == nil {
		l.files, l.truncated, l.updated = files, truncated, time.Now()
	}
	return files, truncated
}

// Invalidate drops the cached listing
func (l *statementListing) Invalidate() {
	l.mu.Lock()
	l.updated = time.Time{}
	l.mu.Unlock()
}

// scanStatements walks root for PDF files, skipping hidden entries and
// symlinks. It stops at maxFiles or when ctx expires and reports truncation.
func scanStatements(ctx context.Context, root string, maxDepth, maxFiles int) ([]FileInfo, bool) {
	files := []FileInfo{}
	truncated := false

	var walk func(dir string, depth int) bool
	walk = func(dir string, depth int) bool {
		if depth > maxDepth {
			return true
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return true
		}
		for _, entry := range entries {
			if ctx.Err() != nil || len(files) >= maxFiles {
				truncated = true
				return false
			}
			name := entry.Name()
			if strings.HasPrefix(name, ".") || entry.Type()&os.ModeSymlink != 0 {
				continue
			}
			path := filepath.Join(dir, name)
			if entry.IsDir() {
				if !walk(path, depth+1) {
					return false
				}
				continue
			}
			if !strings.EqualFold(filepath.Ext(name), ".pdf") {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			files = append(files, FileInfo{
				Path:         path,
				Name:         name,
				Size:         info.Size(),
				ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
			})
		}
		return true
	}
	walk(root, 0)

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, truncated
}

// ServerInfo reports capabilities and the statements available for extraction
func (s *Service) ServerInfo(ctx context.Context, serverName, version string) (*ServerInfoResult, error) {
	root := s.pathValidator.Root()
	files, truncated := s.listing.Files(ctx, root)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	formats := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		formats[i] = string(f)
	}

	return &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  root,
		MaxFileSize:       s.maxFileSize,
		TermDelimiter:     s.delimiter,
		TableSettings:     s.settings,
		AvailableTools:    availableTools(),
		DirectoryContents: files,
		Truncated:         truncated,
		SupportedFormats:  formats,
		UsageGuidance:     s.usageGuidance(),
	}, nil
}

func availableTools() []ToolInfo {
	return []ToolInfo{
		{
			Name:        descriptions.ToolExtractIP,
			Description: "Find contribution rows for IP numbers or names in an ESIC statement PDF",
			Parameters: "path (required): statement PDF inside the configured directory; " +
				"terms (required): delimited IP numbers or names; " +
				"output_path (optional): where to write the report; " +
				"format (optional): pdf, xlsx or json",
		},
		{
			Name:        descriptions.ToolParseRow,
			Description: "Reconstruct one flattened statement row into its eight fields",
			Parameters:  "line (required): whitespace separated row text containing a 10-digit IP number",
		},
		{
			Name:        descriptions.ToolServerInfo,
			Description: "Get server configuration and the statements available for extraction",
			Parameters:  "none",
		},
	}
}

func (s *Service) usageGuidance() string {
	maxFileSizeMB := s.maxFileSize / (1024 * 1024)

	return fmt.Sprintf(`ESIC IP Extractor Usage Guide:

1. Use 'pdf_server_info' to list the statement PDFs in %s.
2. Call 'esic_extract_ip' with a statement path and the IP numbers or names
   to look for, separated by %q. Matching rows from every page are returned
   along with the terms that were found and not found.
3. Pass 'output_path' to also write the matches as a report. The report keeps
   the statement headings and print date and renumbers serials from 1.
4. Use 'esic_parse_row' to check how a single flattened row is split into
   fields.

IMPORTANT NOTES:
- Paths must stay inside the configured directory
- Statements up to %dMB are accepted
- Scanned statements without a text layer yield no rows`, s.pathValidator.Root(), s.delimiter, maxFileSizeMB)
}
