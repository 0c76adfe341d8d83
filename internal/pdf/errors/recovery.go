package errors

import (
	"fmt"
)

// Recover converts a panic raised by a PDF library into a PDFError stored in
// *errp. Call it deferred:
//
//	defer errors.Recover(&err, ErrorTypeExtraction, "read page", page)
func Recover(errp *error, errType ErrorType, op string, page int) {
	r := recover()
	if r == nil {
		return
	}
	*errp = NewPageError(errType, op, page, fmt.Errorf("panic: %v", r))
}
