package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akolanti/DocIntakeAPI/internal/docai/ocr"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
)

// Validation failures are rejected before any extraction work starts.
var (
	ErrFileTooLarge = errors.New("file exceeds the 50MB intake ceiling")
	ErrNoPages      = errors.New("pdf contains no pages")
	ErrTooManyPages = errors.New("pdf exceeds the 50 page ceiling")
	ErrEmptyFile    = errors.New("file is empty")
)

var extensionTable = map[string]commonModels.DocType{
	".jpg":  commonModels.IMAGE,
	".jpeg": commonModels.IMAGE,
	".png":  commonModels.IMAGE,
	".pdf":  commonModels.PDF,
	".doc":  commonModels.WORD,
	".docx": commonModels.WORD,
	".rtf":  commonModels.WORD,
	".txt":  commonModels.WORD,
}

// DetectFormat maps a filename/content-type pair to a document type.
// The extension wins when the declared content-type is absent or generic,
// since upload clients routinely send application/octet-stream.
func DetectFormat(filename string, contentType string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(filename))

	if byExt, ok := extensionTable[ext]; ok {
		return byExt
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return commonModels.IMAGE
	case ct == "application/pdf":
		return commonModels.PDF
	case ct == "application/msword",
		strings.Contains(ct, "officedocument.wordprocessingml"),
		ct == "application/rtf", ct == "text/rtf":
		return commonModels.WORD
	}

	return commonModels.UNKNOWN
}

// Extractor dispatches to the format-specific extraction path.
type Extractor struct {
	pdf *pdfProcessor
	ocr ocr.Provider
}

func NewExtractor(provider ocr.Provider) *Extractor {
	return &Extractor{
		pdf: newPDFProcessor(provider),
		ocr: provider,
	}
}

// Extract runs the path matching docType. The returned error is reserved
// for validation failures (unsupported type, oversize, empty, page
// bounds); extraction problems land in the result's Error field.
func (e *Extractor) Extract(ctx context.Context, data []byte, filename string, docType commonModels.DocType, mode ocr.Mode) (commonModels.ExtractionResult, error) {
	switch docType {
	case commonModels.IMAGE:
		return extractImage(ctx, data, mode, e.ocr)
	case commonModels.PDF:
		return e.pdf.Extract(ctx, data)
	case commonModels.WORD:
		return extractWord(data, filename)
	default:
		return commonModels.ExtractionResult{}, fmt.Errorf("unsupported file type for %q", filename)
	}
}
