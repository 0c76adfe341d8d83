package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures raised by the document collaborators
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeInvalidDocument
	ErrorTypeTooLarge
	ErrorTypeExtraction
	ErrorTypeRender
)

// String returns a string representation of the ErrorType
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeInvalidDocument:
		return "INVALID_DOCUMENT"
	case ErrorTypeTooLarge:
		return "TOO_LARGE"
	case ErrorTypeExtraction:
		return "EXTRACTION"
	case ErrorTypeRender:
		return "RENDER"
	default:
		return "UNKNOWN"
	}
}

// PDFError wraps a collaborator failure with its category and operation
type PDFError struct {
	Type       ErrorType `json:"type"`
	Op         string    `json:"op"`
	PageNumber int       `json:"page_number,omitempty"`
	Err        error     `json:"-"`
}

// Error implements the error interface
func (e *PDFError) Error() string {
	if e.PageNumber > 0 {
		return fmt.Sprintf("%s (page %d): %v", e.Op, e.PageNumber, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *PDFError) Unwrap() error {
	return e.Err
}

// New creates a PDFError
func New(errType ErrorType, op string, err error) *PDFError {
	return &PDFError{Type: errType, Op: op, Err: err}
}

// NewPageError creates a PDFError tied to a page
func NewPageError(errType ErrorType, op string, page int, err error) *PDFError {
	return &PDFError{Type: errType, Op: op, PageNumber: page, Err: err}
}

// TypeOf returns the category of the first PDFError in err's chain
func TypeOf(err error) ErrorType {
	var pdfErr *PDFError
	if errors.As(err, &pdfErr) {
		return pdfErr.Type
	}
	return ErrorTypeUnknown
}
