package language

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name           string
		in             string
		wantCode       string
		wantConfidence float64
	}{
		{"empty", "", "unknown", 0.0},
		{"whitespace only", "   \n\t ", "unknown", 0.0},
		{"english", "Quarterly maintenance schedule for rolling stock", "en", 0.95},
		{"malayalam", "മെട്രോ റെയിൽ അറിയിപ്പ്", "ml", 0.95},
		{"mostly english with a little malayalam", "The station നാമം is recorded here for reference", "en", 0.95},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect(tc.in)
			if got.Code != tc.wantCode {
				t.Errorf("Detect(%q).Code = %q, want %q", tc.in, got.Code, tc.wantCode)
			}
			if math.Abs(got.Confidence-tc.wantConfidence) > 1e-9 {
				t.Errorf("Detect(%q).Confidence = %v, want %v", tc.in, got.Confidence, tc.wantConfidence)
			}
		})
	}
}

func TestDetect_MalayalamConfidenceCapped(t *testing.T) {
	// Pure Malayalam has ratio 1.0, so min(0.95, 0.5+ratio) must cap.
	got := Detect("സുരക്ഷാ")
	if got.Code != "ml" {
		t.Fatalf("expected ml, got %s", got.Code)
	}
	if got.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want capped 0.95", got.Confidence)
	}
}

type mockDetector struct {
	detectFunc func(ctx context.Context, text string) (string, float64, error)
	calls      int
}

func (m *mockDetector) DetectLanguage(ctx context.Context, text string) (string, float64, error) {
	m.calls++
	return m.detectFunc(ctx, text)
}

func TestDetectWithCollaborator(t *testing.T) {
	ctx := context.Background()

	t.Run("collaborator result passed through", func(t *testing.T) {
		mock := &mockDetector{detectFunc: func(ctx context.Context, text string) (string, float64, error) {
			return "hi", 0.88, nil
		}}
		got := DetectWithCollaborator(ctx, "some text", mock)
		if got.Code != "hi" || got.Confidence != 0.88 {
			t.Errorf("got %+v, want hi@0.88", got)
		}
		if got.Name != "Hindi" {
			t.Errorf("Name = %q, want Hindi", got.Name)
		}
	})

	t.Run("collaborator failure degrades to heuristic", func(t *testing.T) {
		mock := &mockDetector{detectFunc: func(ctx context.Context, text string) (string, float64, error) {
			return "", 0, errors.New("quota exceeded")
		}}
		got := DetectWithCollaborator(ctx, "plain english text", mock)
		if got.Code != "en" {
			t.Errorf("Code = %q, want heuristic en", got.Code)
		}
		if got.Error == "" {
			t.Error("expected collaborator error surfaced in result")
		}
	})

	t.Run("empty input skips collaborator", func(t *testing.T) {
		mock := &mockDetector{detectFunc: func(ctx context.Context, text string) (string, float64, error) {
			return "en", 1, nil
		}}
		got := DetectWithCollaborator(ctx, "   ", mock)
		if got.Code != "unknown" || got.Confidence != 0.0 {
			t.Errorf("got %+v, want unknown@0.0", got)
		}
		if mock.calls != 0 {
			t.Errorf("collaborator called %d times for empty input, want 0", mock.calls)
		}
	})
}
