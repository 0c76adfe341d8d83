package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/phuslu/log"

	"github.com/a3tai/esic-ip-extractor/internal/config"
	"github.com/a3tai/esic-ip-extractor/internal/descriptions"
	"github.com/a3tai/esic-ip-extractor/internal/esic"
	"github.com/a3tai/esic-ip-extractor/internal/httpapi"
	"github.com/a3tai/esic-ip-extractor/internal/logging"
	"github.com/a3tai/esic-ip-extractor/internal/pdf"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	mcpServer  *server.MCPServer
	logger     *log.Logger
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service, logger *log.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		mcpServer:  mcpServer,
		logger:     logger,
	}
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractTool := mcp.NewTool(
		descriptions.ToolExtractIP,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolExtractIP)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Statement PDF, absolute or relative to the configured directory"),
		),
		mcp.WithString("terms",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("IP numbers or names separated by %q", s.config.Delimiter)),
		),
		mcp.WithString("output_path",
			mcp.Description("Optional report file to write the matches to, inside the configured directory"),
		),
		mcp.WithString("format",
			mcp.Description("Report format: pdf (default), xlsx or json"),
			mcp.Enum("pdf", "xlsx", "json"),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handleExtractIP)

	parseRowTool := mcp.NewTool(
		descriptions.ToolParseRow,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolParseRow)),
		mcp.WithString("line",
			mcp.Required(),
			mcp.Description("Row text with cells separated by whitespace"),
		),
	)
	s.mcpServer.AddTool(parseRowTool, s.handleParseRow)

	serverInfoTool := mcp.NewTool(
		descriptions.ToolServerInfo,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolServerInfo)),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleExtractIP(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	terms, err := request.RequireString("terms")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.ExtractIPRequest{
		Path:       path,
		Terms:      terms,
		OutputPath: request.GetString("output_path", ""),
		Format:     request.GetString("format", ""),
	}
	result, err := s.pdfService.ExtractIP(ctx, req)
	if errors.Is(err, esic.ErrNoMatches) {
		return mcp.NewToolResultError(s.formatNoMatches(result)), nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("extraction failed")
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatExtractIPResult(result)), nil
}

func (s *Server) handleParseRow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	line, err := request.RequireString("line")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.pdfService.ParseRow(pdf.ParseRowRequest{Line: line})
	if !result.Parsed {
		return mcp.NewToolResultError("no 10-digit IP number found in row"), nil
	}

	data, err := json.MarshalIndent(result.Row, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.pdfService.ServerInfo(ctx, s.config.ServerName, s.config.Version)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.formatServerInfoResult(result)), nil
}

// Formatting

func (s *Server) formatExtractIPResult(result *pdf.ExtractIPResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Statement: %s\n", result.Path)
	if result.Headings.Main != "" {
		fmt.Fprintf(&b, "Heading: %s\n", result.Headings.Main)
	}
	if result.Headings.Sub != "" {
		fmt.Fprintf(&b, "Subheading: %s\n", result.Headings.Sub)
	}
	fmt.Fprintf(&b, "Pages: %d, tables: %d, rows parsed: %d\n", result.Pages, result.TablesFound, result.RowsParsed)
	if result.Footer.PrintedOn != "" {
		fmt.Fprintf(&b, "Printed On: %s %s\n", result.Footer.PrintedOn, result.Footer.PrintedTime)
	}
	fmt.Fprintf(&b, "Found: %s\n", joinOrNone(result.Found))
	fmt.Fprintf(&b, "Not found: %s\n", joinOrNone(result.NotFound))
	if result.OutputPath != "" {
		fmt.Fprintf(&b, "Report: %s (%s, %d bytes)\n", result.OutputPath, result.Format, result.OutputSize)
	}

	fmt.Fprintf(&b, "\nMatches (%d):\n", result.Matches.Len())
	data, err := json.MarshalIndent(result.Matches.Rows, "", "  ")
	if err != nil {
		fmt.Fprintf(&b, "failed to encode matches: %v\n", err)
		return b.String()
	}
	b.Write(data)
	return b.String()
}

func (s *Server) formatNoMatches(result *pdf.ExtractIPResult) string {
	text := "No matching records found"
	if result != nil {
		text += fmt.Sprintf(" in %s (%d rows parsed). Not found: %s", result.Path, result.RowsParsed, joinOrNone(result.NotFound))
	}
	return text
}

func (s *Server) formatServerInfoResult(result *pdf.ServerInfoResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s v%s - Server Information\n", result.ServerName, result.Version)
	fmt.Fprintf(&b, "Statement Directory: %s\n", result.DefaultDirectory)
	fmt.Fprintf(&b, "Max File Size: %d MB\n", result.MaxFileSize/(1024*1024))
	fmt.Fprintf(&b, "Term Delimiter: %q\n", result.TermDelimiter)
	fmt.Fprintf(&b, "Table Settings: snap %.1f, join %.1f\n\n", result.TableSettings.SnapTolerance, result.TableSettings.JoinTolerance)

	if len(result.DirectoryContents) > 0 {
		fmt.Fprintf(&b, "Statements (%d PDF files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 {
				fmt.Fprintf(&b, "   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			fmt.Fprintf(&b, "   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		if result.Truncated {
			b.WriteString("   (listing truncated)\n")
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Statements: No PDF files found in the statement directory\n\n")
	}

	b.WriteString("Available Tools:\n")
	for _, tool := range result.AvailableTools {
		fmt.Fprintf(&b, "\n- %s\n", tool.Name)
		fmt.Fprintf(&b, "  Description: %s\n", tool.Description)
		fmt.Fprintf(&b, "  Parameters: %s\n", tool.Parameters)
	}

	fmt.Fprintf(&b, "\nReport Formats: %s\n", strings.Join(result.SupportedFormats, ", "))
	b.WriteString("\n" + result.UsageGuidance)
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// Run starts the server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode serves MCP over stdin/stdout until ctx is done or stdin closes
func (s *Server) runStdioMode(ctx context.Context) error {
	s.logger.Debug().Str("dir", s.config.PDFDirectory).Msg("starting MCP server in stdio mode")

	stdio := server.NewStdioServer(s.mcpServer)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves the HTTP upload API
func (s *Server) runServerMode(ctx context.Context) error {
	api := httpapi.NewServer(s.config.Address(), s.pdfService, s.logger)
	return api.Run(ctx)
}
