package api

import (
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
)

type RecordExternalStatus string

const (
	RecordStatusError RecordExternalStatus = "Error"
)

// ProcessResponse is the synchronous envelope returned by POST /process.
// Classification arrives later; poll the status URL.
type ProcessResponse struct {
	ProcessingId      string                             `json:"processing_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Filename          string                             `json:"filename" example:"incident_report.pdf"`
	FileType          string                             `json:"file_type" example:"pdf"`
	Extraction        commonModels.ExtractionResult      `json:"extraction"`
	LanguageDetection commonModels.LanguageDetection     `json:"language_detection"`
	Translation       *commonModels.TranslationResult    `json:"translation,omitempty"`
	Classification    *commonModels.ClassificationResult `json:"classification,omitempty"`
	StatusURL         string                             `json:"status_url"`
	CreatedAt         time.Time                          `json:"created_at"`
	Error             *OutgoingError                     `json:"error,omitempty"`
}

type StatusResponse struct {
	ProcessingId   string                             `json:"processing_id"`
	Status         string                             `json:"status"`
	Classification *commonModels.ClassificationResult `json:"classification,omitempty"`
	Record         *ProcessResponse                   `json:"record,omitempty"`
	Error          *OutgoingError                     `json:"error,omitempty"`
}

type ClassifyResponse struct {
	ProcessingId   string                             `json:"processing_id"`
	Classification *commonModels.ClassificationResult `json:"classification,omitempty"`
	Error          *OutgoingError                     `json:"error,omitempty"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"record not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// requests---------------------

type ClassifyRequest struct {
	Text string `json:"text,omitempty"`
}
