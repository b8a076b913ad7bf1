package docai

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/adapter/utils"
	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/docai/classify"
	"github.com/akolanti/DocIntakeAPI/internal/docai/extract"
	"github.com/akolanti/DocIntakeAPI/internal/docai/language"
	"github.com/akolanti/DocIntakeAPI/internal/docai/ocr"
	"github.com/akolanti/DocIntakeAPI/internal/docai/textclean"
	"github.com/akolanti/DocIntakeAPI/internal/docai/translate"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
	"github.com/akolanti/DocIntakeAPI/internal/domain/jobModel"
	"github.com/akolanti/DocIntakeAPI/internal/metrics"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

type ProcessOptions struct {
	OCRMode            ocr.Mode
	IncludeTranslation bool
	TargetLanguage     string
}

// Service is the pipeline boundary the handlers and the worker see; they
// never touch the extractors or collaborators directly.
type Service interface {
	ProcessDocument(ctx context.Context, data []byte, filename string, contentType string, opts ProcessOptions) (commonModels.ProcessingRecord, error)
	ClassifyText(ctx context.Context, text string) commonModels.ClassificationResult
	ClassifyJob(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	extractor    *extract.Extractor
	translator   *translate.Translator
	engine       *classify.Engine
	langDetector language.Collaborator
	recordStore  jobModel.RecordStore
	logger       *logger_i.Logger
}

// NewService constructor. The language collaborator is optional; the
// heuristic detector carries the pipeline without it.
func NewService(extractor *extract.Extractor, translator *translate.Translator, engine *classify.Engine, langDetector language.Collaborator, store jobModel.RecordStore) Service {
	return &service{
		extractor:    extractor,
		translator:   translator,
		engine:       engine,
		langDetector: langDetector,
		recordStore:  store,
		logger:       logger_i.NewLogger("DocAI Service :"),
	}
}

// ProcessDocument runs the synchronous half of the pipeline: detect,
// extract, clean, detect language, optionally translate, persist the
// record. The returned error is a validation rejection only; extraction
// failures ride inside the record and downstream stages degrade.
func (s *service) ProcessDocument(ctx context.Context, data []byte, filename string, contentType string, opts ProcessOptions) (commonModels.ProcessingRecord, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "filename", filename)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("process_document", time.Since(start)) }()

	docType := extract.DetectFormat(filename, contentType)
	if docType == commonModels.UNKNOWN {
		return commonModels.ProcessingRecord{}, fmt.Errorf("unsupported file type for %q", filename)
	}

	extraction, err := s.executeExtractionStep(ctx, inMethodLogger, data, filename, docType, opts.OCRMode)
	if err != nil {
		return commonModels.ProcessingRecord{}, err
	}

	extraction.Text = textclean.Clean(extraction.Text)

	detection := s.executeLanguageStep(ctx, inMethodLogger, extraction.Text)

	record := commonModels.ProcessingRecord{
		ProcessingId:      utils.GetNewUUID(),
		Filename:          filename,
		FileType:          docType,
		Extraction:        extraction,
		LanguageDetection: detection,
		CreatedAt:         time.Now().UTC(),
	}

	if opts.IncludeTranslation {
		record.Translation = s.executeTranslationStep(ctx, inMethodLogger, extraction.Text, detection.Code, opts.TargetLanguage)
	}

	if err := s.recordStore.SaveRecord(ctx, record); err != nil {
		//the caller still gets the record; only the status lookup suffers
		inMethodLogger.Error("failed to persist processing record", "error", err)
	}

	return record, nil
}

func (s *service) ClassifyText(ctx context.Context, text string) commonModels.ClassificationResult {
	return s.engine.ClassifyDocument(ctx, text)
}

// ClassifyJob is the worker entry point: classify the snapshot captured
// at enqueue time and write the result back into the record. A missing
// record is logged and dropped, never a crash.
func (s *service) ClassifyJob(ctx context.Context, job jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", job.TraceId, "recordId", job.RecordId)
	start := time.Now()
	defer func() { metrics.CaptureJobMetrics("classification_job", time.Since(start)) }()

	job.CurrentStep = jobModel.ExternalNLCall
	result := s.engine.ClassifyDocument(ctx, job.JobPayload.Text)
	if result.Method == classify.MethodKeywordFallback {
		job.CurrentStep = jobModel.KeywordFallback
	}

	job.CurrentStep = jobModel.RecordWriteBack
	record, found := s.recordStore.GetRecord(ctx, job.RecordId)
	if !found {
		inMethodLogger.Warn("processing record gone before classification write-back, dropping result")
		job.Status = jobModel.JobStatusComplete
		job.CurrentStep = jobModel.Complete
		job.EndTime = time.Now().UTC()
		return job
	}

	record.Classification = &result
	if err := s.recordStore.SaveRecord(ctx, record); err != nil {
		return s.jobError(job, err, "RECORD_WRITEBACK_FAILURE", true)
	}

	inMethodLogger.Info("classification written back", "category", result.Category, "method", result.Method)
	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	job.EndTime = time.Now().UTC()
	return job
}
