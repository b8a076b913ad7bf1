package language

import (
	"context"
	"strings"
	"unicode"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
)

// Collaborator identifies languages beyond the two primaries. Optional;
// the heuristic carries the common case on its own.
type Collaborator interface {
	DetectLanguage(ctx context.Context, text string) (code string, confidence float64, err error)
}

var languageNames = map[string]string{
	"ml": "Malayalam",
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
}

// Detect classifies text as Malayalam or English by the share of runes
// inside the Malayalam Unicode block (U+0D00 - U+0D7F). Only the leading
// sample is inspected; documents do not switch language mid-way often
// enough to matter.
func Detect(text string) commonModels.LanguageDetection {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return commonModels.LanguageDetection{
			Code:       "unknown",
			Name:       "Unknown",
			Confidence: 0.0,
		}
	}

	sample := []rune(trimmed)
	if len(sample) > config.LanguageDetectSampleSize {
		sample = sample[:config.LanguageDetectSampleSize]
	}

	var malayalam, total int
	for _, r := range sample {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if r >= 0x0D00 && r <= 0x0D7F {
			malayalam++
		}
	}

	if total == 0 {
		return commonModels.LanguageDetection{
			Code:       "unknown",
			Name:       "Unknown",
			Confidence: 0.0,
		}
	}

	ratio := float64(malayalam) / float64(total)
	if ratio > config.MalayalamRatioThreshold {
		confidence := 0.5 + ratio
		if confidence > 0.95 {
			confidence = 0.95
		}
		return commonModels.LanguageDetection{
			Code:       "ml",
			Name:       "Malayalam",
			Confidence: confidence,
		}
	}

	return commonModels.LanguageDetection{
		Code:       "en",
		Name:       "English",
		Confidence: 0.95,
	}
}

// DetectWithCollaborator delegates to the external detector for the full
// language set, degrading to the heuristic on any failure.
func DetectWithCollaborator(ctx context.Context, text string, collaborator Collaborator) commonModels.LanguageDetection {
	if collaborator == nil {
		return Detect(text)
	}
	if strings.TrimSpace(text) == "" {
		return Detect(text)
	}

	code, confidence, err := collaborator.DetectLanguage(ctx, text)
	if err != nil {
		fallback := Detect(text)
		fallback.Error = err.Error()
		return fallback
	}

	return commonModels.LanguageDetection{
		Code:       code,
		Name:       Name(code),
		Confidence: confidence,
	}
}

// Name resolves a language code to a display name, echoing the code when
// it is not one we track.
func Name(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
