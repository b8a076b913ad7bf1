package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/docai/ocr"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpulib "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfProcessor runs the two-phase PDF strategy: the text layer is read
// directly first, OCR is reserved for scanned documents whose text layer
// is empty. The function fields exist so tests can substitute the PDF
// parsing without binary fixtures.
type pdfProcessor struct {
	ocr        ocr.Provider
	readPages  func(data []byte) ([]string, error) //direct text layer, one entry per page
	pageImages func(data []byte) ([][]byte, error) //embedded raster per page, nil entry when none
	logger     *logger_i.Logger
}

func newPDFProcessor(provider ocr.Provider) *pdfProcessor {
	return &pdfProcessor{
		ocr:        provider,
		readPages:  readPDFPages,
		pageImages: pdfPageImages,
		logger:     logger_i.NewLogger("pdf extraction"),
	}
}

// Extract returns a validation error only for bounds violations (size,
// page count); every other failure is reported inside the result.
func (p *pdfProcessor) Extract(ctx context.Context, data []byte) (commonModels.ExtractionResult, error) {
	if len(data) == 0 {
		return commonModels.ExtractionResult{}, ErrEmptyFile
	}
	if int64(len(data)) > config.MaxUploadBytes {
		return commonModels.ExtractionResult{}, ErrFileTooLarge
	}

	pages, err := p.readPages(data)
	if err != nil {
		p.logger.Error("direct pdf read failed", "error", err)
		return commonModels.ExtractionResult{
			Method: commonModels.MethodPDFDirect,
			Error:  fmt.Sprintf("failed to read pdf: %v", err),
		}, nil
	}
	if len(pages) == 0 {
		return commonModels.ExtractionResult{}, ErrNoPages
	}
	if len(pages) > config.MaxPDFPages {
		return commonModels.ExtractionResult{}, ErrTooManyPages
	}

	direct, skipped := joinPages(pages)
	if strings.TrimSpace(direct) != "" {
		return commonModels.ExtractionResult{
			Text:           direct,
			Confidence:     1.0,
			Method:         commonModels.MethodPDFDirect,
			PagesProcessed: len(pages) - skipped,
			PagesSkipped:   skipped,
		}, nil
	}

	//no text layer: scanned document, fall back to per-page OCR
	p.logger.Info("pdf has no text layer, falling back to OCR", "pages", len(pages))
	return p.extractViaOCR(ctx, data, len(pages))
}

func (p *pdfProcessor) extractViaOCR(ctx context.Context, data []byte, pageCount int) (commonModels.ExtractionResult, error) {
	if p.ocr == nil {
		return commonModels.ExtractionResult{
			Method: commonModels.MethodPDFOCR,
			Error:  "no text layer and no OCR collaborator configured",
		}, nil
	}

	images, err := p.pageImages(data)
	if err != nil {
		p.logger.Error("page image extraction failed", "error", err)
		return commonModels.ExtractionResult{
			Method: commonModels.MethodPDFOCR,
			Error:  fmt.Sprintf("no text layer and rasterization failed: %v", err),
		}, nil
	}

	texts := make([]string, len(images))
	confidences := make([]float64, len(images))
	succeeded := make([]bool, len(images))

	var wg sync.WaitGroup
	for i, img := range images {
		if img == nil {
			continue
		}
		wg.Add(1)
		go func(pageIdx int, imageBytes []byte) {
			defer wg.Done()
			result, ocrErr := p.ocr.Extract(ctx, imageBytes, ocr.ModeDocument)
			if ocrErr != nil {
				p.logger.Error("OCR failed for page", "page", pageIdx+1, "error", ocrErr)
				return
			}
			texts[pageIdx] = result.Text
			confidences[pageIdx] = result.Confidence
			succeeded[pageIdx] = true
		}(i, img)
	}
	wg.Wait()

	var joined strings.Builder
	var confidenceSum float64
	processed := 0
	for i := range texts { //ascending page order, never completion order
		if !succeeded[i] {
			continue
		}
		processed++
		confidenceSum += confidences[i]
		if joined.Len() > 0 {
			joined.WriteString("\n")
		}
		joined.WriteString(texts[i])
	}

	if processed == 0 || strings.TrimSpace(joined.String()) == "" {
		return commonModels.ExtractionResult{
			Method:       commonModels.MethodPDFOCR,
			PagesSkipped: pageCount,
			Error:        "no text recoverable from any page",
		}, nil
	}

	return commonModels.ExtractionResult{
		Text:           joined.String(),
		Confidence:     confidenceSum / float64(processed),
		Method:         commonModels.MethodPDFOCR,
		PagesProcessed: processed,
		PagesSkipped:   pageCount - processed,
	}, nil
}

func joinPages(pages []string) (string, int) {
	skipped := 0
	var sb strings.Builder
	for _, page := range pages {
		if strings.TrimSpace(page) == "" {
			skipped++
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(page)
	}
	return sb.String(), skipped
}

// readPDFPages extracts the text layer page by page. A single bad page is
// skipped (empty entry), not fatal.
func readPDFPages(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := protectExtract(page)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, content)
	}
	return pages, nil
}

// protectExtract bounds a single page parse; a malformed page must not
// hang the whole document.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("timeout")
	}
}

// pdfPageImages pulls the embedded raster image for each page. Scanned
// PDFs carry one full-page image per page; pages without one get a nil
// entry and are counted as skipped by the caller.
func pdfPageImages(data []byte) ([][]byte, error) {
	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	images := make([][]byte, pdfCtx.PageCount)
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		pageImages, err := pdfcpulib.ExtractPageImages(pdfCtx, pageNr, false)
		if err != nil || len(pageImages) == 0 {
			continue
		}
		for _, img := range pageImages {
			raw, readErr := io.ReadAll(img)
			if readErr != nil || len(raw) == 0 {
				continue
			}
			images[pageNr-1] = raw
			break //one raster per page is enough for OCR
		}
	}
	return images, nil
}
