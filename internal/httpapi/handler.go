// Package httpapi serves statement extraction over HTTP uploads.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"

	"github.com/a3tai/esic-ip-extractor/internal/esic"
	"github.com/a3tai/esic-ip-extractor/internal/logging"
	pdferrors "github.com/a3tai/esic-ip-extractor/internal/pdf/errors"
	"github.com/a3tai/esic-ip-extractor/internal/render"
)

// Error messages returned to clients
const (
	msgFileRequired  = "PDF file is required"
	msgTermsRequired = "At least one IP number or name is required"
	msgNoValidTerms  = "No valid search terms provided"
	msgNoMatches     = "No matching records found"
	msgTooLarge      = "PDF file is too large"
	msgBadFormat     = "Format must be one of pdf, xlsx or json"
)

// multipartOverhead is the allowance for form fields and boundaries on top
// of the file size limit
const multipartOverhead = 1 << 20

// Extractor is what the handler needs from the extraction service
type Extractor interface {
	MaxFileSize() int64
	ParseTerms(input string) []string
	ExtractBytes(ctx context.Context, data []byte, terms []string) (*esic.Result, error)
	Report(res *esic.Result, format render.Format) ([]byte, error)
}

// extractForm holds the non-file fields of an extraction upload
type extractForm struct {
	Terms  string `validate:"required"`
	Format string `validate:"omitempty,oneof=pdf xlsx json"`
}

// extractResponse is the JSON body of a successful json-format extraction
type extractResponse struct {
	Pages    int                  `json:"pages"`
	Headings esic.Headings        `json:"headings"`
	Footer   esic.Footer          `json:"footer"`
	Found    []string             `json:"found"`
	NotFound []string             `json:"not_found"`
	Matches  esic.StructuredTable `json:"matches"`
}

// Handler serves the extraction endpoints
type Handler struct {
	extractor Extractor
	validate  *validator.Validate
	logger    *log.Logger
}

// NewHandler creates a handler backed by extractor
func NewHandler(extractor Extractor, logger *log.Logger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		extractor: extractor,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Routes returns the mux with every endpoint registered, wrapped in the
// request ID and access log middleware
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/extract-ip", h.ExtractIP)
	mux.HandleFunc("/healthz", h.Health)
	return withRequestID(withAccessLog(mux, h.logger))
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ExtractIP accepts a multipart upload with the statement in "file", the
// delimited search terms in "ip_number" and an optional "format"
func (h *Handler) ExtractIP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	limit := h.extractor.MaxFileSize()

	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = WriteError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		_ = WriteError(w, http.StatusBadRequest, msgFileRequired)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		_ = WriteError(w, http.StatusBadRequest, msgFileRequired)
		return
	}
	defer file.Close()

	form := extractForm{
		Terms:  strings.TrimSpace(r.FormValue("ip_number")),
		Format: strings.ToLower(strings.TrimSpace(r.FormValue("format"))),
	}
	if msg := h.validateForm(form); msg != "" {
		_ = WriteError(w, http.StatusBadRequest, msg)
		return
	}

	terms := h.extractor.ParseTerms(form.Terms)
	if len(terms) == 0 {
		_ = WriteError(w, http.StatusBadRequest, msgNoValidTerms)
		return
	}
	format, err := render.ParseFormat(form.Format)
	if err != nil {
		_ = WriteError(w, http.StatusBadRequest, msgBadFormat)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		_ = WriteError(w, http.StatusBadRequest, msgFileRequired)
		return
	}
	if int64(len(data)) > limit {
		_ = WriteError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
		return
	}

	res, err := h.extractor.ExtractBytes(r.Context(), data, terms)
	switch {
	case errors.Is(err, esic.ErrNoMatches):
		_ = WriteJSON(w, http.StatusNotFound, map[string]interface{}{
			"status":    "error",
			"error":     msgNoMatches,
			"not_found": res.Search.NotFound,
		})
		return
	case err != nil:
		h.writeExtractError(w, err)
		return
	}

	h.logger.Info().
		Str("request_id", RequestID(r.Context())).
		Str("file", header.Filename).
		Int("matches", res.Search.Matches.Len()).
		Str("format", string(format)).
		Msg("extraction served")

	if format == render.FormatJSON {
		_ = WriteJSON(w, http.StatusOK, extractResponse{
			Pages:    res.Pages,
			Headings: res.Headings,
			Footer:   res.Footer,
			Found:    res.Search.Found,
			NotFound: res.Search.NotFound,
			Matches:  res.Search.Matches,
		})
		return
	}

	report, err := h.extractor.Report(res, format)
	if err != nil {
		h.writeExtractError(w, err)
		return
	}
	_ = WriteAttachment(w, format.ContentType(), format.Filename(), report)
}

// validateForm returns the client message for the first invalid field
func (h *Handler) validateForm(form extractForm) string {
	err := h.validate.Struct(form)
	if err == nil {
		return ""
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Terms":
			return msgTermsRequired
		case "Format":
			return msgBadFormat
		}
	}
	return err.Error()
}

func (h *Handler) writeExtractError(w http.ResponseWriter, err error) {
	switch pdferrors.TypeOf(err) {
	case pdferrors.ErrorTypeTooLarge:
		_ = WriteError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
	case pdferrors.ErrorTypeInvalidDocument:
		_ = WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error().Err(err).Msg("extraction failed")
		_ = WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
