package classify

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
	"github.com/akolanti/DocIntakeAPI/internal/metrics"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

const (
	MethodExternalTaxonomy = "external-taxonomy"
	MethodKeywordFallback  = "keyword-fallback"
	MethodNone             = "none"
)

type ExternalCategory struct {
	Path       string
	Confidence float64
}

// Provider is the external content-classifier boundary: a broad
// general-purpose taxonomy unrelated to ours until mapped.
type Provider interface {
	Classify(ctx context.Context, text string) ([]ExternalCategory, error)
}

type Engine struct {
	provider Provider
	logger   *logger_i.Logger
}

func NewEngine(provider Provider) *Engine {
	return &Engine{
		provider: provider,
		logger:   logger_i.NewLogger("Classification Engine"),
	}
}

// ClassifyDocument never fails: any collaborator problem falls through to
// the keyword scorer, and the worst case is Unknown at confidence 0.
func (e *Engine) ClassifyDocument(ctx context.Context, text string) commonModels.ClassificationResult {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("classification", time.Since(start)) }()

	if strings.TrimSpace(text) == "" {
		return commonModels.ClassificationResult{
			Category:       CategoryUnknown,
			Confidence:     0.0,
			AllCategories:  []commonModels.CategoryScore{},
			Method:         MethodNone,
			ProcessingTime: time.Since(start).Seconds(),
		}
	}

	if len(text) > config.ClassifyInputLimit {
		text = truncateRunes(text, config.ClassifyInputLimit)
	}

	if e.provider != nil && countNonWhitespace(text) > config.MinClassifiableChars {
		input := text
		if len(input) > config.ExternalClassifyLimit {
			input = truncateRunes(input, config.ExternalClassifyLimit)
		}
		result, err := e.classifyExternal(ctx, input, text)
		if err == nil {
			result.ProcessingTime = time.Since(start).Seconds()
			return result
		}
		e.logger.Warn("external classifier failed, falling back to keywords", "error", err)
	}

	result := e.classifyKeywords(text)
	result.ProcessingTime = time.Since(start).Seconds()
	return result
}

func (e *Engine) classifyExternal(ctx context.Context, input string, fullText string) (commonModels.ClassificationResult, error) {
	external, err := e.provider.Classify(ctx, input)
	if err != nil {
		return commonModels.ClassificationResult{}, fmt.Errorf("external classify call: %w", err)
	}

	scores := make(map[string]float64, len(Categories))
	evidence := make(map[string][]string, len(Categories))
	lowerText := strings.ToLower(fullText)

	for _, cat := range external {
		if cat.Path == ambiguousBusinessOps {
			if winner, decided := tiebreakBusinessOps(lowerText); decided {
				scores[winner] += cat.Confidence * tiebreakBoost
				evidence[winner] = append(evidence[winner], cat.Path)
				continue
			}
		}

		for _, entry := range externalMapping {
			if !strings.Contains(cat.Path, entry.fragment) {
				continue
			}
			//longer fragments are more specific and weigh more
			specificityBoost := float64(len(entry.fragment)) / 20
			scores[entry.category] += cat.Confidence * (1 + specificityBoost)
			evidence[entry.category] = append(evidence[entry.category], cat.Path)
		}
	}

	all := normalizeScores(scores, evidence)
	if len(all) == 0 {
		return commonModels.ClassificationResult{
			Category:      CategoryUnknown,
			Confidence:    0.0,
			AllCategories: []commonModels.CategoryScore{},
			Method:        MethodExternalTaxonomy,
		}, nil
	}

	return commonModels.ClassificationResult{
		Category:      all[0].Category,
		Confidence:    all[0].Confidence,
		AllCategories: all,
		Method:        MethodExternalTaxonomy,
	}, nil
}

// tiebreakBusinessOps resolves the external category that is ambiguous
// between HR and Financial by a local keyword vote. Neither or both
// matching means no decision; normal mapping proceeds.
func tiebreakBusinessOps(lowerText string) (string, bool) {
	isHR := containsAny(lowerText, hrTiebreakKeywords)
	isFinancial := containsAny(lowerText, financialTiebreakKeywords)

	switch {
	case isHR && !isFinancial:
		return "HR policies", true
	case isFinancial && !isHR:
		return "Vendor invoices", true
	default:
		return "", false
	}
}

func (e *Engine) classifyKeywords(text string) commonModels.ClassificationResult {
	lowerText := strings.ToLower(text)

	scores := make(map[string]float64, len(categoryKeywords))
	evidence := make(map[string][]string, len(categoryKeywords))

	for _, entry := range categoryKeywords {
		var score float64
		var matches []string
		for _, keyword := range entry.keywords {
			lowerKeyword := strings.ToLower(keyword)
			if !strings.Contains(lowerText, lowerKeyword) {
				continue
			}
			count := countWholeWordMatches(lowerText, lowerKeyword)
			if count == 0 {
				continue
			}
			score += float64(len(keyword) * count)
			matches = append(matches, fmt.Sprintf("%s (%d)", keyword, count))
		}
		if score > 0 {
			scores[entry.category] = score
			evidence[entry.category] = matches
		}
	}

	all := normalizeScores(scores, evidence)
	if len(all) == 0 {
		return commonModels.ClassificationResult{
			Category:      CategoryUnknown,
			Confidence:    0.0,
			AllCategories: []commonModels.CategoryScore{},
			Method:        MethodKeywordFallback,
		}
	}

	return commonModels.ClassificationResult{
		Category:      all[0].Category,
		Confidence:    all[0].Confidence,
		AllCategories: all,
		Method:        MethodKeywordFallback,
	}
}

// normalizeScores converts raw scores into confidences summing to 1,
// sorted descending. Ties keep taxonomy declaration order (stable sort
// over a list built in that order).
func normalizeScores(scores map[string]float64, evidence map[string][]string) []commonModels.CategoryScore {
	var total float64
	for _, s := range scores {
		total += s
	}
	if total <= 0 {
		return nil
	}

	all := make([]commonModels.CategoryScore, 0, len(scores))
	for _, category := range Categories {
		score, ok := scores[category]
		if !ok || score <= 0 {
			continue
		}
		all = append(all, commonModels.CategoryScore{
			Category:   category,
			Confidence: score / total,
			Evidence:   evidence[category],
		})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Confidence > all[j].Confidence
	})
	return all
}

func countWholeWordMatches(text string, keyword string) int {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// truncateRunes cuts on rune boundaries so multi-byte text never ends
// in a broken sequence.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func countNonWhitespace(text string) int {
	count := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}
