package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/esic-ip-extractor/internal/config"
	"github.com/a3tai/esic-ip-extractor/internal/esic"
	"github.com/a3tai/esic-ip-extractor/internal/pdf"
)

// writeStatement prints a one-page contribution statement into dir, each
// line as a single string
func writeStatement(t *testing.T, dir, name string) string {
	t.Helper()

	doc := fpdf.New("L", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 9)
	doc.AddPage()
	doc.Text(250, 40, "Employees State Insurance")
	doc.Text(250, 56, "Contribution History March 2024")

	y := 150.0
	for _, row := range []string{
		"SNo Is Disable IP Number IP Name No. Of Days Total Wages IP Contribution Reason",
		"1 No 3100000001 RAMESH 26 15000.00 112.50 -",
		"2 No 3100000002 SITA 0 0 0 Left",
		"3 Yes 3100000003 MOHAN 30 18000.00 135.00 -",
	} {
		doc.Text(30, y, row)
		y += 15
	}
	doc.Text(30, 540, "Page 1 of 1")
	doc.Text(30, 554, "Printed On: 05/04/2024 10:15:30AM")

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func newTestServer(t *testing.T, dir string) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.PDFDirectory = dir
	cfg.ServerName = "test-server"

	svc, err := pdf.NewService(pdf.Options{
		MaxFileSize: cfg.MaxFileSize,
		Directory:   dir,
		Delimiter:   cfg.Delimiter,
		Settings:    pdf.DefaultTableSettings(),
	})
	require.NoError(t, err)

	srv, err := NewServer(cfg, svc, nil)
	require.NoError(t, err)
	return srv
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

// extractTextFromResult returns the first text content of a tool result
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}
	return ""
}

func TestNewServer(t *testing.T) {
	dir := t.TempDir()
	svc, err := pdf.NewService(pdf.Options{MaxFileSize: 1024, Directory: dir, Settings: pdf.DefaultTableSettings()})
	require.NoError(t, err)

	tests := []struct {
		name    string
		cfg     *config.Config
		svc     *pdf.Service
		wantErr string
	}{
		{name: "stdio", cfg: &config.Config{Mode: config.ModeStdio, ServerName: "s", Version: "1"}, svc: svc},
		{name: "server", cfg: &config.Config{Mode: config.ModeServer, ServerName: "s", Version: "1"}, svc: svc},
		{name: "nil config", svc: svc, wantErr: "config cannot be nil"},
		{name: "nil service", cfg: config.DefaultConfig(), wantErr: "pdfService cannot be nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewServer(tt.cfg, tt.svc, nil)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Nil(t, srv)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.cfg, srv.config)
			assert.NotNil(t, srv.mcpServer)
			assert.NotNil(t, srv.logger)
		})
	}
}

func TestServer_HandleExtractIP(t *testing.T) {
	dir := t.TempDir()
	writeStatement(t, dir, "march.pdf")
	srv := newTestServer(t, dir)
	ctx := context.Background()

	result, err := srv.handleExtractIP(ctx, callRequest(map[string]interface{}{
		"path":  "march.pdf",
		"terms": "3100000001 | mohan | 3199999999",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, extractTextFromResult(result))

	text := extractTextFromResult(result)
	assert.Contains(t, text, "Heading: Employees State Insurance")
	assert.Contains(t, text, "Found: 3100000001, mohan")
	assert.Contains(t, text, "Not found: 3199999999")
	assert.Contains(t, text, "Printed On: 05/04/2024 10:15:30AM")
	assert.Contains(t, text, "Matches (2):")
	assert.Contains(t, text, `"ip_name": "MOHAN"`)
	assert.NotContains(t, text, "Report:")
}

func TestServer_HandleExtractIP_WritesReport(t *testing.T) {
	dir := t.TempDir()
	writeStatement(t, dir, "march.pdf")
	srv := newTestServer(t, dir)

	result, err := srv.handleExtractIP(context.Background(), callRequest(map[string]interface{}{
		"path":        "march.pdf",
		"terms":       "sita",
		"output_path": "out/sita.xlsx",
		"format":      "xlsx",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, extractTextFromResult(result))

	assert.Contains(t, extractTextFromResult(result), "Report: "+filepath.Join(dir, "out", "sita.xlsx")+" (xlsx,")
	assert.FileExists(t, filepath.Join(dir, "out", "sita.xlsx"))
}

func TestServer_HandleExtractIP_Errors(t *testing.T) {
	dir := t.TempDir()
	writeStatement(t, dir, "march.pdf")
	srv := newTestServer(t, dir)

	tests := []struct {
		name     string
		args     map[string]interface{}
		contains string
	}{
		{name: "missing path", args: map[string]interface{}{"terms": "x"}, contains: "path"},
		{name: "missing terms", args: map[string]interface{}{"path": "march.pdf"}, contains: "terms"},
		{name: "blank terms", args: map[string]interface{}{"path": "march.pdf", "terms": "|"}, contains: "no valid search terms"},
		{name: "escape", args: map[string]interface{}{"path": "../march.pdf", "terms": "x"}, contains: "outside"},
		{
			name:     "no matches",
			args:     map[string]interface{}{"path": "march.pdf", "terms": "nobody|3199999999"},
			contains: "No matching records found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := srv.handleExtractIP(context.Background(), callRequest(tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, extractTextFromResult(result), tt.contains)
		})
	}

	result, err := srv.handleExtractIP(context.Background(), callRequest(map[string]interface{}{
		"path": "march.pdf", "terms": "nobody|3199999999",
	}))
	require.NoError(t, err)
	assert.Contains(t, extractTextFromResult(result), "Not found: nobody, 3199999999")
}

func TestServer_HandleParseRow(t *testing.T) {
	srv := newTestServer(t, t.TempDir())

	result, err := srv.handleParseRow(context.Background(), callRequest(map[string]interface{}{
		"line": "7 No 3100000007 RAVI KUMAR Left Service 0 0 0",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, extractTextFromResult(result))

	var row esic.StructuredRow
	require.NoError(t, json.Unmarshal([]byte(extractTextFromResult(result)), &row))
	assert.Equal(t, "3100000007", row.Identifier)
	assert.Equal(t, "RAVI KUMAR", row.Name)
	assert.Equal(t, "Left Service", row.Reason)

	result, err = srv.handleParseRow(context.Background(), callRequest(map[string]interface{}{"line": "no identifier here"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "no 10-digit IP number found in row", extractTextFromResult(result))

	result, err = srv.handleParseRow(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestServer_HandleServerInfo(t *testing.T) {
	dir := t.TempDir()
	writeStatement(t, dir, "march.pdf")
	srv := newTestServer(t, dir)

	result, err := srv.handleServerInfo(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := extractTextFromResult(result)
	assert.Contains(t, text, "test-server v1.0.0 - Server Information")
	assert.Contains(t, text, "Statement Directory: "+dir)
	assert.Contains(t, text, "Term Delimiter: \"|\"")
	assert.Contains(t, text, "1. march.pdf")
	for _, tool := range []string{"esic_extract_ip", "esic_parse_row", "pdf_server_info"} {
		assert.Contains(t, text, "- "+tool)
	}
	assert.Contains(t, text, "Report Formats: pdf, xlsx, json")
}

func TestFormatServerInfo_EmptyDirectory(t *testing.T) {
	srv := newTestServer(t, t.TempDir())
	text := srv.formatServerInfoResult(&pdf.ServerInfoResult{
		ServerName: "s", Version: "2", MaxFileSize: 50 * 1024 * 1024, TermDelimiter: ",",
	})
	assert.Contains(t, text, "Max File Size: 50 MB")
	assert.Contains(t, text, "No PDF files found")
}

func TestFormatServerInfo_ManyFiles(t *testing.T) {
	srv := newTestServer(t, t.TempDir())
	files := make([]pdf.FileInfo, 12)
	for i := range files {
		files[i] = pdf.FileInfo{Name: "s.pdf", Size: 10}
	}
	text := srv.formatServerInfoResult(&pdf.ServerInfoResult{DirectoryContents: files, Truncated: true})
	assert.Contains(t, text, "... and 2 more files")
	assert.Contains(t, text, "(listing truncated)")
}

func TestJoinOrNone(t *testing.T) {
	assert.Equal(t, "none", joinOrNone(nil))
	assert.Equal(t, "a, b", joinOrNone([]string{"a", "b"}))
}

func TestServer_RunServerModeCancelled(t *testing.T) {
	srv := newTestServer(t, t.TempDir())
	srv.config.Mode = config.ModeServer
	srv.config.Host = "127.0.0.1"
	srv.config.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, srv.Run(ctx), context.Canceled)
}
