package ocr

import "context"

type Mode string

const (
	// ModeDocument is optimised for dense structured text (forms, reports).
	ModeDocument Mode = "document"
	// ModeText is basic detection for sparse text (signs, labels).
	ModeText Mode = "text"
)

type Result struct {
	Text       string
	Confidence float64
}

// Provider is the OCR collaborator boundary. Implementations report
// their own confidence; a zero-text success is a valid outcome (blank
// page), the caller decides whether that is fatal.
type Provider interface {
	Extract(ctx context.Context, imageBytes []byte, mode Mode) (Result, error)
}
