package extract

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/docai/ocr"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

type mockOCR struct {
	mu          sync.Mutex
	calls       int
	extractFunc func(ctx context.Context, imageBytes []byte, mode ocr.Mode) (ocr.Result, error)
}

func (m *mockOCR) Extract(ctx context.Context, imageBytes []byte, mode ocr.Mode) (ocr.Result, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.extractFunc(ctx, imageBytes, mode)
}

func (m *mockOCR) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testProcessor(provider ocr.Provider) *pdfProcessor {
	return &pdfProcessor{
		ocr:    provider,
		logger: logger_i.NewLogger("pdf extraction test"),
	}
}

func TestPDFExtract_TextLayerNeverTriggersOCR(t *testing.T) {
	mock := &mockOCR{extractFunc: func(ctx context.Context, imageBytes []byte, mode ocr.Mode) (ocr.Result, error) {
		t.Error("OCR must not be called for a text-bearing PDF")
		return ocr.Result{}, nil
	}}

	p := testProcessor(mock)
	p.readPages = func(data []byte) ([]string, error) {
		return []string{"Safety circular 42", "Platform inspection notes"}, nil
	}
	p.pageImages = func(data []byte) ([][]byte, error) {
		t.Error("rasterization must not run for a text-bearing PDF")
		return nil, nil
	}

	result, err := p.Extract(context.Background(), []byte("%PDF-fake"))
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if result.Method != "pdf-direct" {
		t.Errorf("Method = %q, want pdf-direct", result.Method)
	}
	if result.Text != "Safety circular 42\nPlatform inspection notes" {
		t.Errorf("unexpected text %q", result.Text)
	}
	if result.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", result.Confidence)
	}
	if mock.callCount() != 0 {
		t.Errorf("OCR called %d times, want 0", mock.callCount())
	}
}

func TestPDFExtract_NoTextLayerOCRsOncePerPage(t *testing.T) {
	pageText := map[string]string{
		"img-1": "first page",
		"img-2": "second page",
		"img-3": "third page",
	}
	mock := &mockOCR{extractFunc: func(ctx context.Context, imageBytes []byte, mode ocr.Mode) (ocr.Result, error) {
		// Finish later pages first to prove reassembly is by page index.
		if string(imageBytes) == "img-1" {
			time.Sleep(20 * time.Millisecond)
		}
		return ocr.Result{Text: pageText[string(imageBytes)], Confidence: 0.8}, nil
	}}

	p := testProcessor(mock)
	p.readPages = func(data []byte) ([]string, error) {
		return []string{"", "  ", ""}, nil
	}
	p.pageImages = func(data []byte) ([][]byte, error) {
		return [][]byte{[]byte("img-1"), []byte("img-2"), []byte("img-3")}, nil
	}

	result, err := p.Extract(context.Background(), []byte("%PDF-fake"))
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if mock.callCount() != 3 {
		t.Errorf("OCR called %d times, want exactly once per page (3)", mock.callCount())
	}
	if result.Method != "pdf-ocr" {
		t.Errorf("Method = %q, want pdf-ocr", result.Method)
	}
	want := "first page\nsecond page\nthird page"
	if result.Text != want {
		t.Errorf("pages out of order: got %q, want %q", result.Text, want)
	}
	if result.PagesProcessed != 3 || result.PagesSkipped != 0 {
		t.Errorf("PagesProcessed=%d PagesSkipped=%d, want 3/0", result.PagesProcessed, result.PagesSkipped)
	}
	if result.Confidence < 0.79 || result.Confidence > 0.81 {
		t.Errorf("Confidence = %v, want averaged 0.8", result.Confidence)
	}
}

func TestPDFExtract_PartialPageFailureTolerated(t *testing.T) {
	mock := &mockOCR{extractFunc: func(ctx context.Context, imageBytes []byte, mode ocr.Mode) (ocr.Result, error) {
		if string(imageBytes) == "img-2" {
			return ocr.Result{}, errors.New("page corrupted")
		}
		return ocr.Result{Text: "page " + string(imageBytes), Confidence: 0.9}, nil
	}}

	p := testProcessor(mock)
	p.readPages = func(data []byte) ([]string, error) { return []string{"", "", ""}, nil }
	p.pageImages = func(data []byte) ([][]byte, error) {
		return [][]byte{[]byte("img-1"), []byte("img-2"), []byte("img-3")}, nil
	}

	result, err := p.Extract(context.Background(), []byte("x"))
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if result.Error != "" {
		t.Errorf("single bad page must not fail the document, got error %q", result.Error)
	}
	if result.PagesProcessed != 2 || result.PagesSkipped != 1 {
		t.Errorf("PagesProcessed=%d PagesSkipped=%d, want 2/1", result.PagesProcessed, result.PagesSkipped)
	}
}

func TestPDFExtract_ZeroPagesSucceedIsTerminal(t *testing.T) {
	mock := &mockOCR{extractFunc: func(ctx context.Context, imageBytes []byte, mode ocr.Mode) (ocr.Result, error) {
		return ocr.Result{}, errors.New("service down")
	}}

	p := testProcessor(mock)
	p.readPages = func(data []byte) ([]string, error) { return []string{"", ""}, nil }
	p.pageImages = func(data []byte) ([][]byte, error) {
		return [][]byte{[]byte("a"), []byte("b")}, nil
	}

	result, err := p.Extract(context.Background(), []byte("x"))
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if result.Error == "" || strings.TrimSpace(result.Text) != "" {
		t.Errorf("want populated error and empty text, got error=%q text=%q", result.Error, result.Text)
	}
}

func TestPDFExtract_Bounds(t *testing.T) {
	p := testProcessor(nil)

	t.Run("empty file", func(t *testing.T) {
		if _, err := p.Extract(context.Background(), nil); !errors.Is(err, ErrEmptyFile) {
			t.Errorf("err = %v, want ErrEmptyFile", err)
		}
	})

	t.Run("zero pages", func(t *testing.T) {
		p.readPages = func(data []byte) ([]string, error) { return nil, nil }
		if _, err := p.Extract(context.Background(), []byte("x")); !errors.Is(err, ErrNoPages) {
			t.Errorf("err = %v, want ErrNoPages", err)
		}
	})

	t.Run("too many pages", func(t *testing.T) {
		p.readPages = func(data []byte) ([]string, error) { return make([]string, 51), nil }
		if _, err := p.Extract(context.Background(), []byte("x")); !errors.Is(err, ErrTooManyPages) {
			t.Errorf("err = %v, want ErrTooManyPages", err)
		}
	})
}
