package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	pdferrors "github.com/a3tai/esic-ip-extractor/internal/pdf/errors"
)

// pdfMagic starts every PDF file
var pdfMagic = []byte("%PDF-")

// Validator checks uploaded and on-disk documents before extraction
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// LoadFile validates a PDF path and returns the file content
func (v *Validator) LoadFile(filePath string) ([]byte, error) {
	if filePath == "" {
		return nil, pdferrors.New(pdferrors.ErrorTypeInvalidDocument, "load file",
			fmt.Errorf("path cannot be empty"))
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, pdferrors.New(pdferrors.ErrorTypeInvalidDocument, "load file",
			fmt.Errorf("file does not exist: %s", filePath))
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, pdferrors.New(pdferrors.ErrorTypeInvalidDocument, "load file",
			fmt.Errorf("path is a directory, not a file: %s", filePath))
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return nil, pdferrors.New(pdferrors.ErrorTypeInvalidDocument, "load file",
			fmt.Errorf("file is not a PDF: %s", filePath))
	}

	if fileInfo.Size() > v.maxFileSize {
		return nil, pdferrors.New(pdferrors.ErrorTypeTooLarge, "load file",
			fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), v.maxFileSize))
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	return data, nil
}

// ValidateBytes checks that data is a readable PDF within the size limit and
// returns its page count
func (v *Validator) ValidateBytes(data []byte) (pages int, err error) {
	if len(data) == 0 {
		return 0, pdferrors.New(pdferrors.ErrorTypeInvalidDocument, "validate",
			fmt.Errorf("file is empty"))
	}
	if int64(len(data)) > v.maxFileSize {
		return 0, pdferrors.New(pdferrors.ErrorTypeTooLarge, "validate",
			fmt.Errorf("file too large: %d bytes (max: %d bytes)", len(data), v.maxFileSize))
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), pdfMagic) {
		return 0, pdferrors.New(pdferrors.ErrorTypeInvalidDocument, "validate",
			fmt.Errorf("missing PDF header"))
	}

	defer pdferrors.Recover(&err, pdferrors.ErrorTypeInvalidDocument, "validate", 0)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, pdferrors.New(pdferrors.ErrorTypeInvalidDocument, "validate",
			fmt.Errorf("invalid PDF file: %w", err))
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, pdferrors.New(pdferrors.ErrorTypeInvalidDocument, "validate",
			fmt.Errorf("failed to determine page count: %w", err))
	}
	return ctx.PageCount, nil
}
