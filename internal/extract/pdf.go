package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"docqa/internal/domain"
)

// PDF extracts plain text from PDF files, page by page.
type PDF struct{}

func NewPDF() *PDF { return &PDF{} }

// Extract returns the concatenated text of all pages. Files without a
// .pdf extension are rejected; unreadable files surface as extraction
// errors rather than panics.
func (e *PDF) Extract(data []byte, filename string) (text string, err error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return "", fmt.Errorf("%w: only PDF files are supported", domain.ErrExtraction)
	}
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", domain.ErrExtraction, r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}
	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", domain.ErrExtraction, i, err)
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}
