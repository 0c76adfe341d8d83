package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanStatements(t *testing.T) {
	dir := t.TempDir()
	writeStatement(t, dir, "b.pdf", []byte("%PDF-1.4"))
	writeStatement(t, dir, "a.PDF", []byte("%PDF-1.4"))
	writeStatement(t, dir, "notes.txt", []byte("x"))
	writeStatement(t, dir, ".hidden/c.pdf", []byte("%PDF-1.4"))
	writeStatement(t, dir, "2024/march/d.pdf", []byte("%PDF-1.4"))
	writeStatement(t, dir, "1/2/3/4/deep.pdf", []byte("%PDF-1.4"))

	files, truncated := scanStatements(context.Background(), dir, 3, 100)
	assert.False(t, truncated)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
		assert.Equal(t, int64(8), f.Size)
	}
	assert.Equal(t, []string{"d.pdf", "a.PDF", "b.pdf"}, names)
}

func TestScanStatements_Limit(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		writeStatement(t, dir, name, []byte("%PDF-1.4"))
	}

	files, truncated := scanStatements(context.Background(), dir, 3, 2)
	assert.True(t, truncated)
	assert.Len(t, files, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	files, truncated = scanStatements(ctx, dir, 3, 100)
	assert.True(t, truncated)
	assert.Empty(t, files)
}

func TestStatementListing_Cache(t *testing.T) {
	dir := t.TempDir()
	writeStatement(t, dir, "a.pdf", []byte("%PDF-1.4"))

	listing := newStatementListing(time.Hour)
	files, _ := listing.Files(context.Background(), dir)
	require.Len(t, files, 1)

	writeStatement(t, dir, "b.pdf", []byte("%PDF-1.4"))
	files, _ = listing.Files(context.Background(), dir)
	assert.Len(t, files, 1, "served from cache")

	listing.Invalidate()
	files, _ = listing.Files(context.Background(), dir)
	assert.Len(t, files, 2)
}

func TestService_ServerInfo(t *testing.T) {
	dir := t.TempDir()
	writeStatement(t, dir, "march.pdf", sampleStatement(t))
	svc := newTestService(t, dir)

	info, err := svc.ServerInfo(context.Background(), "esic-ip-extractor", "1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "esic-ip-extractor", info.ServerName)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, dir, info.DefaultDirectory)
	assert.Equal(t, "|", info.TermDelimiter)
	assert.Equal(t, DefaultTableSettings(), info.TableSettings)
	assert.Equal(t, []string{"pdf", "xlsx", "json"}, info.SupportedFormats)
	require.Len(t, info.DirectoryContents, 1)
	assert.Equal(t, filepath.Join(dir, "march.pdf"), info.DirectoryContents[0].Path)
	assert.Contains(t, info.UsageGuidance, "esic_extract_ip")

	var tools []string
	for _, tool := range info.AvailableTools {
		tools = append(tools, tool.Name)
	}
	assert.Equal(t, []string{"esic_extract_ip", "esic_parse_row", "pdf_server_info"}, tools)
}

func TestService_ServerInfo_MissingDirectory(t *testing.T) {
	svc := newTestService(t, filepath.Join(os.TempDir(), "esic-missing-statements-dir"))

	info, err := svc.ServerInfo(context.Background(), "esic-ip-extractor", "dev")
	require.NoError(t, err)
	assert.Empty(t, info.DirectoryContents)
}
