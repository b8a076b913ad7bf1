package classify

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/akolanti/DocIntakeAPI/internal/config"
)

type mockClassifier struct {
	classifyFunc func(ctx context.Context, text string) ([]ExternalCategory, error)
	calls        int
}

func (m *mockClassifier) Classify(ctx context.Context, text string) ([]ExternalCategory, error) {
	m.calls++
	return m.classifyFunc(ctx, text)
}

func TestClassifyDocument_EmptyInputShortCircuits(t *testing.T) {
	mock := &mockClassifier{classifyFunc: func(ctx context.Context, text string) ([]ExternalCategory, error) {
		return []ExternalCategory{{Path: "/Finance", Confidence: 0.9}}, nil
	}}
	engine := NewEngine(mock)

	for _, input := range []string{"", "   \n\t  "} {
		result := engine.ClassifyDocument(context.Background(), input)
		if result.Category != CategoryUnknown || result.Confidence != 0.0 {
			t.Errorf("ClassifyDocument(%q) = %s@%v, want Unknown@0.0", input, result.Category, result.Confidence)
		}
		if len(result.AllCategories) != 0 {
			t.Errorf("AllCategories should be empty, got %v", result.AllCategories)
		}
	}
	if mock.calls != 0 {
		t.Errorf("external classifier called %d times for empty input, want 0", mock.calls)
	}
}

func TestClassifyDocument_KeywordFallback_HRPolicies(t *testing.T) {
	engine := NewEngine(nil)

	result := engine.ClassifyDocument(context.Background(), "employee leave policy annual entitlement")
	if result.Category != "HR policies" {
		t.Errorf("Category = %q, want HR policies", result.Category)
	}
	if result.Method != MethodKeywordFallback {
		t.Errorf("Method = %q, want keyword-fallback", result.Method)
	}
}

func TestClassifyDocument_KeywordFallback_VendorInvoices(t *testing.T) {
	engine := NewEngine(nil)

	result := engine.ClassifyDocument(context.Background(), "invoice total amount due payment terms")
	if result.Category != "Vendor invoices" {
		t.Errorf("Category = %q, want Vendor invoices", result.Category)
	}
}

func TestClassifyDocument_CollaboratorErrorFallsBack(t *testing.T) {
	mock := &mockClassifier{classifyFunc: func(ctx context.Context, text string) ([]ExternalCategory, error) {
		return nil, errors.New("SERVICE_DISABLED")
	}}
	engine := NewEngine(mock)

	result := engine.ClassifyDocument(context.Background(), "work order for scheduled maintenance task on escalator unit")
	if result.Method != MethodKeywordFallback {
		t.Errorf("Method = %q, want keyword-fallback after collaborator error", result.Method)
	}
	if result.Category != "Maintenance job cards" {
		t.Errorf("Category = %q, want Maintenance job cards", result.Category)
	}
	if mock.calls != 1 {
		t.Errorf("external classifier called %d times, want 1", mock.calls)
	}
}

func TestClassifyDocument_ShortInputSkipsExternal(t *testing.T) {
	mock := &mockClassifier{classifyFunc: func(ctx context.Context, text string) ([]ExternalCategory, error) {
		return []ExternalCategory{{Path: "/Finance", Confidence: 0.9}}, nil
	}}
	engine := NewEngine(mock)

	// 13 non-whitespace characters: below the informativeness gate.
	result := engine.ClassifyDocument(context.Background(), "short invoice x")
	if mock.calls != 0 {
		t.Errorf("external classifier called %d times for short input, want 0", mock.calls)
	}
	if result.Method != MethodKeywordFallback {
		t.Errorf("Method = %q, want keyword-fallback", result.Method)
	}
}

func TestClassifyDocument_ExternalMapping(t *testing.T) {
	mock := &mockClassifier{classifyFunc: func(ctx context.Context, text string) ([]ExternalCategory, error) {
		return []ExternalCategory{
			{Path: "/Science/Ecology & Environment", Confidence: 0.9},
			{Path: "/Science/Weather", Confidence: 0.4},
		}, nil
	}}
	engine := NewEngine(mock)

	result := engine.ClassifyDocument(context.Background(), "assessment of groundwater impact along the new corridor alignment")
	if result.Method != MethodExternalTaxonomy {
		t.Fatalf("Method = %q, want external-taxonomy", result.Method)
	}
	if result.Category != "Environmental-impact studies" {
		t.Errorf("Category = %q, want Environmental-impact studies", result.Category)
	}
}

func TestClassifyDocument_ManyToManyMapping(t *testing.T) {
	// One external path feeds both Incident reports and Safety circulars.
	mock := &mockClassifier{classifyFunc: func(ctx context.Context, text string) ([]ExternalCategory, error) {
		return []ExternalCategory{{Path: "/Law & Government/Public Safety", Confidence: 0.8}}, nil
	}}
	engine := NewEngine(mock)

	result := engine.ClassifyDocument(context.Background(), "platform door malfunction was reported during the evening peak")
	if len(result.AllCategories) < 2 {
		t.Fatalf("expected at least two categories from one ambiguous path, got %v", result.AllCategories)
	}
	seen := map[string]bool{}
	for _, cs := range result.AllCategories {
		seen[cs.Category] = true
	}
	if !seen["Incident reports"] || !seen["Safety circulars"] {
		t.Errorf("expected both Incident reports and Safety circulars, got %v", result.AllCategories)
	}
}

func TestClassifyDocument_BusinessOpsTiebreak(t *testing.T) {
	mock := &mockClassifier{classifyFunc: func(ctx context.Context, text string) ([]ExternalCategory, error) {
		return []ExternalCategory{{Path: "/Business & Industrial/Business Operations", Confidence: 0.7}}, nil
	}}

	t.Run("HR vote wins", func(t *testing.T) {
		engine := NewEngine(mock)
		result := engine.ClassifyDocument(context.Background(), "circulated to all staff regarding employee leave entitlement rules")
		if result.Category != "HR policies" {
			t.Errorf("Category = %q, want HR policies", result.Category)
		}
	})

	t.Run("financial vote wins", func(t *testing.T) {
		engine := NewEngine(mock)
		result := engine.ClassifyDocument(context.Background(), "quarterly revenue and expense statement with budget variance notes")
		if result.Category != "Vendor invoices" {
			t.Errorf("Category = %q, want Vendor invoices", result.Category)
		}
	})

	t.Run("both votes means normal mapping", func(t *testing.T) {
		engine := NewEngine(mock)
		result := engine.ClassifyDocument(context.Background(), "employee payment records are archived under this operations heading")
		// Undecided vote falls through to the mapping table, which still
		// resolves the path (HR fragment is longer, so HR outweighs the
		// Business & Industrial catch-all).
		if result.Category != "HR policies" {
			t.Errorf("Category = %q, want HR policies via mapping", result.Category)
		}
		if len(result.AllCategories) < 2 {
			t.Errorf("expected catch-all category alongside, got %v", result.AllCategories)
		}
	})
}

func TestClassifyDocument_TruncationKeepsRuneBoundaries(t *testing.T) {
	var received string
	mock := &mockClassifier{classifyFunc: func(ctx context.Context, text string) ([]ExternalCategory, error) {
		received = text
		return []ExternalCategory{{Path: "/Finance/Accounting & Auditing", Confidence: 0.9}}, nil
	}}
	engine := NewEngine(mock)

	// Malayalam runes straddle the external input limit; a byte slice
	// would cut one of them in half.
	text := strings.Repeat("a", config.ExternalClassifyLimit-1) + strings.Repeat("ള", 10)
	engine.ClassifyDocument(context.Background(), text)

	if mock.calls != 1 {
		t.Fatalf("external classifier called %d times, want 1", mock.calls)
	}
	if !utf8.ValidString(received) {
		t.Error("external classifier received invalid UTF-8")
	}
	if got := len([]rune(received)); got != config.ExternalClassifyLimit {
		t.Errorf("external input truncated to %d runes, want %d", got, config.ExternalClassifyLimit)
	}
}

func TestClassifyDocument_ConfidencesNormalizedAndSorted(t *testing.T) {
	engine := NewEngine(nil)

	result := engine.ClassifyDocument(context.Background(),
		"incident investigation report: the accident root cause was a skipped inspection report, invoice attached for repairs payment")

	if len(result.AllCategories) == 0 {
		t.Fatal("expected scored categories")
	}

	var sum float64
	prev := math.Inf(1)
	for _, cs := range result.AllCategories {
		if cs.Confidence < 0 {
			t.Errorf("negative confidence for %s", cs.Category)
		}
		if cs.Confidence > prev {
			t.Errorf("AllCategories not sorted descending at %s", cs.Category)
		}
		prev = cs.Confidence
		sum += cs.Confidence
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("confidences sum to %v, want 1.0", sum)
	}
	if result.Category != result.AllCategories[0].Category {
		t.Errorf("Category %q != top of AllCategories %q", result.Category, result.AllCategories[0].Category)
	}
}
