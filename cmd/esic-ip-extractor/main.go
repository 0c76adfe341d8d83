package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/phuslu/log"

	"github.com/a3tai/esic-ip-extractor/internal/config"
	"github.com/a3tai/esic-ip-extractor/internal/logging"
	"github.com/a3tai/esic-ip-extractor/internal/mcp"
	"github.com/a3tai/esic-ip-extractor/internal/pdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// tableSettings applies the configured tolerances to the default settings
func tableSettings(cfg *config.Config) pdf.TableSettings {
	settings := pdf.DefaultTableSettings()
	settings.SnapTolerance = cfg.SnapTolerance
	settings.JoinTolerance = cfg.JoinTolerance
	return settings
}

// newServer wires the extraction service into the MCP server
func newServer(cfg *config.Config, logger *log.Logger) (*mcp.Server, error) {
	pdfService, err := pdf.NewService(pdf.Options{
		MaxFileSize: cfg.MaxFileSize,
		Directory:   cfg.PDFDirectory,
		Delimiter:   cfg.Delimiter,
		LogoPath:    cfg.LogoPath,
		Settings:    tableSettings(cfg),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF service: %w", err)
	}

	server, err := mcp.NewServer(cfg, pdfService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}
	return server, nil
}

// run serves until ctx is cancelled. A cancelled context is a clean stop.
func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	server, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.IsServerMode() {
		logger.Info().Str("addr", cfg.Address()).Str("dir", cfg.PDFDirectory).Msg("starting HTTP server")
	}
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion(os.Stdout)
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if version != "dev" {
		cfg.Version = version
	}

	logger := logging.ForMode(cfg.LogLevel, cfg.IsStdioMode())
	if cfg.IsDebug() {
		logger.Debug().Str("config", cfg.String()).Msg("starting with configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server error")
		stop()
		os.Exit(1)
	}
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "ESIC IP Extractor\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
