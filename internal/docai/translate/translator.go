package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/docai/language"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

// Provider is the translation collaborator boundary. DetectLanguage also
// satisfies the language package's Collaborator interface, so one client
// serves both concerns.
type Provider interface {
	DetectLanguage(ctx context.Context, text string) (code string, confidence float64, err error)
	Translate(ctx context.Context, text string, target string, source string) (translated string, detectedSource string, err error)
}

type Translator struct {
	provider Provider
	logger   *logger_i.Logger
}

func New(provider Provider) *Translator {
	return &Translator{
		provider: provider,
		logger:   logger_i.NewLogger("Translator"),
	}
}

// Translate orchestrates one optional translation. Failures never
// propagate: a collaborator error comes back as a result with Error set
// and empty translated text, which callers treat as non-fatal.
func (t *Translator) Translate(ctx context.Context, text string, source string, target string) commonModels.TranslationResult {
	result := commonModels.TranslationResult{
		OriginalText: text,
		SourceCode:   source,
		TargetCode:   target,
		SourceName:   language.Name(source),
		TargetName:   language.Name(target),
	}

	if strings.TrimSpace(text) == "" {
		result.Error = "nothing to translate"
		return result
	}

	//identity case is not an error and needs no external call
	if source == target {
		result.TranslatedText = text
		return result
	}

	if t.provider == nil {
		result.Error = "no translation collaborator configured"
		return result
	}

	input := text
	if len([]rune(input)) > config.TranslateInputLimit {
		input = truncateRunes(input, config.TranslateInputLimit)
		//advisory, not a hard failure: translated text is still returned
		result.Error = fmt.Sprintf("input truncated to %d characters before translation", config.TranslateInputLimit)
		t.logger.Warn("translation input truncated", "limit", config.TranslateInputLimit)
	}

	translated, detectedSource, err := t.provider.Translate(ctx, input, target, source)
	if err != nil {
		t.logger.Error("translation collaborator failed", "error", err)
		result.TranslatedText = ""
		result.Error = fmt.Sprintf("translation failed: %v", err)
		return result
	}

	if detectedSource != "" && detectedSource != source {
		result.SourceCode = detectedSource
		result.SourceName = language.Name(detectedSource)
	}
	result.TranslatedText = translated
	return result
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
