package commonModels

import "time"

type DocType string

var (
	IMAGE   DocType = "image"
	PDF     DocType = "pdf"
	WORD    DocType = "word"
	UNKNOWN DocType = "unknown"
)

// extraction methods
const (
	MethodOCRDocument = "document"
	MethodOCRText     = "text"
	MethodPDFDirect   = "pdf-direct"
	MethodPDFOCR      = "pdf-ocr"
	MethodWord        = "word"
)

// ExtractionResult is what every extraction path returns. A failed
// extraction still returns a well-formed result with Error set rather
// than a bare nil.
type ExtractionResult struct {
	Text           string  `json:"text"`
	Confidence     float64 `json:"confidence"`
	Method         string  `json:"method"`
	PagesProcessed int     `json:"pages_processed,omitempty"`
	PagesSkipped   int     `json:"pages_skipped,omitempty"`
	Error          string  `json:"error,omitempty"`
}

type LanguageDetection struct {
	Code       string  `json:"language"`
	Name       string  `json:"language_name"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

type TranslationResult struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	SourceCode     string `json:"source_language"`
	TargetCode     string `json:"target_language"`
	SourceName     string `json:"source_language_name,omitempty"`
	TargetName     string `json:"target_language_name,omitempty"`
	Error          string `json:"error,omitempty"`
}

type CategoryScore struct {
	Category   string   `json:"category"`
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence,omitempty"`
}

type ClassificationResult struct {
	Category       string          `json:"category"`
	Confidence     float64         `json:"confidence"`
	AllCategories  []CategoryScore `json:"all_categories"`
	Method         string          `json:"method"`
	ProcessingTime float64         `json:"processing_time_seconds"`
}

// ProcessingRecord is the unit of correlation across the pipeline: the
// synchronous response and the asynchronous classification both hang off
// the same ProcessingId.
type ProcessingRecord struct {
	ProcessingId      string                `json:"processing_id"`
	Filename          string                `json:"filename"`
	FileType          DocType               `json:"file_type"`
	Extraction        ExtractionResult      `json:"extraction"`
	LanguageDetection LanguageDetection     `json:"language_detection"`
	Translation       *TranslationResult    `json:"translation,omitempty"`
	Classification    *ClassificationResult `json:"classification,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}
