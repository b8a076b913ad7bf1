package docai

import (
	"context"
	"net/http"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/docai/extract"
	"github.com/akolanti/DocIntakeAPI/internal/docai/language"
	"github.com/akolanti/DocIntakeAPI/internal/docai/ocr"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
	"github.com/akolanti/DocIntakeAPI/internal/domain/jobModel"
	"github.com/akolanti/DocIntakeAPI/internal/metrics"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (s *service) executeExtractionStep(ctx context.Context, log *logger_i.Logger, data []byte, filename string, docType commonModels.DocType, mode ocr.Mode) (commonModels.ExtractionResult, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	result, err := s.extractor.Extract(ctx, data, filename, docType, mode)
	if err != nil {
		log.Error("extraction rejected", "error", err)
		return result, err
	}
	if result.Error != "" {
		log.Warn("extraction degraded", "method", result.Method, "error", result.Error)
	}
	return result, nil
}

func (s *service) executeLanguageStep(ctx context.Context, log *logger_i.Logger, text string) commonModels.LanguageDetection {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("language_detection", time.Since(start)) }()

	detection := language.DetectWithCollaborator(ctx, text, s.langDetector)
	if detection.Error != "" {
		log.Warn("language collaborator failed, heuristic used", "error", detection.Error)
	}
	log.Debug("language detected", "code", detection.Code, "confidence", detection.Confidence)
	return detection
}

func (s *service) executeTranslationStep(ctx context.Context, log *logger_i.Logger, text string, source string, target string) *commonModels.TranslationResult {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("translation", time.Since(start)) }()

	if target == "" {
		target = defaultTargetLanguage
	}
	result := s.translator.Translate(ctx, text, source, target)
	if result.Error != "" {
		log.Warn("translation degraded", "error", result.Error)
	}
	return &result
}

const defaultTargetLanguage = "en"

// ValidationMessage maps validation sentinels to client-facing text.
func ValidationMessage(err error) string {
	switch err {
	case extract.ErrFileTooLarge:
		return "file exceeds the 50MB limit"
	case extract.ErrTooManyPages:
		return "pdf exceeds the 50 page limit"
	case extract.ErrNoPages:
		return "pdf contains no pages"
	case extract.ErrEmptyFile:
		return "file is empty"
	default:
		return err.Error()
	}
}
