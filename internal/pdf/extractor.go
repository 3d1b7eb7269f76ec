package pdf

import (
	"fmt"
	"os"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// Extractor reads page count and text from uploaded PDF books. Pages with an
// embedded text layer skip the OCR round-trip entirely.
type Extractor interface {
	PageCount(path string) (int, error)
	PageText(path string, page int) (string, error)
}

type UniExtractor struct{}

func NewUniExtractor() *UniExtractor {
	return &UniExtractor{}
}

func (e *UniExtractor) PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := model.NewPdfReader(f)
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return reader.GetNumPages()
}

// PageText extracts the embedded text of a 1-based page. An empty result
// means the page is image-only and needs OCR.
func (e *UniExtractor) PageText(path string, page int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := model.NewPdfReader(f)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	p, err := reader.GetPage(page)
	if err != nil {
		return "", fmt.Errorf("get page %d: %w", page, err)
	}
	ex, err := extractor.New(p)
	if err != nil {
		return "", fmt.Errorf("page %d extractor: %w", page, err)
	}
	return ex.ExtractText()
}
