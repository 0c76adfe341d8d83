package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phuslu/log"

	"github.com/a3tai/esic-ip-extractor/internal/esic"
	"github.com/a3tai/esic-ip-extractor/internal/logging"
	pdferrors "github.com/a3tai/esic-ip-extractor/internal/pdf/errors"
	"github.com/a3tai/esic-ip-extractor/internal/pdf/security"
	"github.com/a3tai/esic-ip-extractor/internal/render"
)

// Options configures a Service
type Options struct {
	MaxFileSize int64
	Directory   string
	Delimiter   string
	LogoPath    string
	Settings    TableSettings
	Logger      *log.Logger
}

// Service validates statements, runs extraction and renders reports. It
// holds no per-request state.
type Service struct {
	maxFileSize   int64
	delimiter     string
	logoPath      string
	settings      TableSettings
	validator     *Validator
	pathValidator *security.PathValidator
	extractor     *esic.Extractor
	listing       *statementListing
	logger        *log.Logger
}

// NewService creates a new extraction service
func NewService(opts Options) (*Service, error) {
	if opts.MaxFileSize <= 0 {
		return nil, fmt.Errorf("max file size must be positive")
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table settings: %w", err)
	}
	pathValidator, err := security.NewPathValidator(opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = esic.DefaultTermDelimiter
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Service{
		maxFileSize:   opts.MaxFileSize,
		delimiter:     delimiter,
		logoPath:      opts.LogoPath,
		settings:      opts.Settings,
		validator:     NewValidator(opts.MaxFileSize),
		pathValidator: pathValidator,
		extractor:     esic.NewExtractor(logger),
		listing:       newStatementListing(listingTTL),
		logger:        logger,
	}, nil
}

// MaxFileSize returns the upload limit in bytes
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// ParseTerms splits raw search input on the configured delimiter
func (s *Service) ParseTerms(input string) []string {
	return esic.ParseTerms(input, s.delimiter)
}

// ExtractBytes validates an in-memory statement and searches it for terms.
// A search with no matches returns the result and esic.ErrNoMatches.
func (s *Service) ExtractBytes(ctx context.Context, data []byte, terms []string) (*esic.Result, error) {
	pages, err := s.validator.ValidateBytes(data)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int("pages", pages).Int("size", len(data)).Msg("statement validated")

	doc, err := OpenBytes(data, s.settings)
	if err != nil {
		return nil, err
	}
	return s.extractor.Extract(ctx, doc, terms)
}

// ExtractIP runs an extraction against a statement inside the configured
// directory and optionally writes the matches as a report
func (s *Service) ExtractIP(ctx context.Context, req ExtractIPRequest) (*ExtractIPResult, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	terms := s.ParseTerms(req.Terms)
	if len(terms) == 0 {
		return nil, fmt.Errorf("no valid search terms provided")
	}

	format, err := render.ParseFormat(req.Format)
	if err != nil {
		return nil, err
	}

	data, err := s.validator.LoadFile(path)
	if err != nil {
		return nil, err
	}

	res, err := s.ExtractBytes(ctx, data, terms)
	if err != nil && !errors.Is(err, esic.ErrNoMatches) {
		return nil, err
	}

	out := &ExtractIPResult{
		Path:        path,
		Pages:       res.Pages,
		TablesFound: res.Tables,
		RowsParsed:  res.Rows,
		Headings:    res.Headings,
		Footer:      res.Footer,
		Found:       res.Search.Found,
		NotFound:    res.Search.NotFound,
		Matches:     res.Search.Matches,
	}

	if req.OutputPath == "" || res.Search.Matches.Len() == 0 {
		return out, err
	}

	report, rerr := s.Report(res, format)
	if rerr != nil {
		return nil, rerr
	}
	target, rerr := s.writeReport(req.OutputPath, report)
	if rerr != nil {
		return nil, rerr
	}
	out.OutputPath = target
	out.Format = string(format)
	out.OutputSize = len(report)
	s.logger.Info().Str("output", target).Str("format", string(format)).Int("size", len(report)).Msg("report written")
	return out, nil
}

// Report renders the matches of an extraction with its statement metadata
func (s *Service) Report(res *esic.Result, format render.Format) (data []byte, err error) {
	defer pdferrors.Recover(&err, pdferrors.ErrorTypeRender, "render report", 0)

	data, err = render.Report(format, res.Search.Matches, render.Options{
		Headings: res.Headings,
		Footer:   res.Footer,
		LogoPath: s.logoPath,
	})
	if err != nil {
		return nil, pdferrors.New(pdferrors.ErrorTypeRender, "render report", err)
	}
	return data, nil
}

// ParseRow reconstructs one flattened row
func (s *Service) ParseRow(req ParseRowRequest) ParseRowResult {
	row, ok := s.extractor.ParseRow(req.Line)
	if !ok {
		return ParseRowResult{}
	}
	return ParseRowResult{Parsed: true, Row: &row}
}

func (s *Service) writeReport(outputPath string, data []byte) (string, error) {
	target, err := s.pathValidator.Resolve(outputPath)
	if err != nil {
		return "", fmt.Errorf("security validation failed: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	s.listing.Invalidate()
	return target, nil
}
