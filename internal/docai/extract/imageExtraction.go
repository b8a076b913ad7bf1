package extract

import (
	"context"
	"fmt"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/docai/ocr"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
)

// extractImage hands the image to the OCR collaborator. Collaborator
// failure is reported in the result, not raised: downstream stages
// degrade on empty text.
func extractImage(ctx context.Context, data []byte, mode ocr.Mode, provider ocr.Provider) (commonModels.ExtractionResult, error) {
	if len(data) == 0 {
		return commonModels.ExtractionResult{}, ErrEmptyFile
	}
	if int64(len(data)) > config.MaxUploadBytes {
		return commonModels.ExtractionResult{}, ErrFileTooLarge
	}

	if mode != ocr.ModeDocument && mode != ocr.ModeText {
		mode = ocr.ModeDocument
	}

	if provider == nil {
		return commonModels.ExtractionResult{
			Method: string(mode),
			Error:  "no OCR collaborator configured",
		}, nil
	}

	result, err := provider.Extract(ctx, data, mode)
	if err != nil {
		return commonModels.ExtractionResult{
			Method: string(mode),
			Error:  fmt.Sprintf("OCR collaborator failed: %v", err),
		}, nil
	}
	if result.Text == "" {
		return commonModels.ExtractionResult{
			Method: string(mode),
			Error:  "OCR found no text in image",
		}, nil
	}

	return commonModels.ExtractionResult{
		Text:       result.Text,
		Confidence: result.Confidence,
		Method:     string(mode),
	}, nil
}
