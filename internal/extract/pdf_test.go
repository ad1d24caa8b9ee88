package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docqa/internal/domain"
)

func TestExtractRejectsNonPDFFilename(t *testing.T) {
	_, err := NewPDF().Extract([]byte("hello"), "notes.txt")
	assert.ErrorIs(t, err, domain.ErrExtraction)
	assert.Contains(t, err.Error(), "only PDF files are supported")
}

func TestExtractAcceptsUppercaseExtension(t *testing.T) {
	_, err := NewPDF().Extract([]byte("not a real pdf"), "REPORT.PDF")
	// extension passes, the body is still unreadable
	assert.ErrorIs(t, err, domain.ErrExtraction)
	assert.NotContains(t, err.Error(), "only PDF files are supported")
}

func TestExtractUnreadableBytes(t *testing.T) {
	_, err := NewPDF().Extract([]byte{0x00, 0x01, 0x02}, "broken.pdf")
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractEmptyBytes(t *testing.T) {
	_, err := NewPDF().Extract(nil, "empty.pdf")
	assert.ErrorIs(t, err, domain.ErrExtraction)
}
