package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF pulls the text layer out of a PDF statement and runs the text
// extractor over it. Scanned-image PDFs carry no text layer and fail as
// unrecognized; OCR is out of scope.
func ExtractPDF(data []byte, opts Options) ([]RawMovement, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, plain); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, err)
	}

	if strings.TrimSpace(b.String()) == "" {
		return nil, ErrUnrecognizedFormat
	}

	return Extract([]byte(b.String()), opts)
}
