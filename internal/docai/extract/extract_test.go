package extract

import (
	"context"
	"testing"

	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		contentType string
		want        commonModels.DocType
	}{
		{"jpg extension", "scan.jpg", "", commonModels.IMAGE},
		{"jpeg extension", "scan.JPEG", "", commonModels.IMAGE},
		{"png extension", "diagram.png", "application/octet-stream", commonModels.IMAGE},
		{"pdf extension", "invoice.pdf", "", commonModels.PDF},
		{"docx extension", "policy.docx", "", commonModels.WORD},
		{"doc extension", "memo.doc", "", commonModels.WORD},
		{"extension wins over generic content type", "report.pdf", "application/octet-stream", commonModels.PDF},
		{"content type fallback image", "upload", "image/png", commonModels.IMAGE},
		{"content type fallback pdf", "upload.bin", "application/pdf", commonModels.PDF},
		{"content type fallback word", "upload", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", commonModels.WORD},
		{"unknown", "archive.tar.gz", "application/gzip", commonModels.UNKNOWN},
		{"no hints", "mystery", "", commonModels.UNKNOWN},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectFormat(tc.filename, tc.contentType)
			if got != tc.want {
				t.Errorf("DetectFormat(%q, %q) = %q, want %q", tc.filename, tc.contentType, got, tc.want)
			}
		})
	}
}

func TestExtractor_UnsupportedType(t *testing.T) {
	e := NewExtractor(nil)
	if _, err := e.Extract(context.Background(), []byte("data"), "mystery.xyz", commonModels.UNKNOWN, ""); err == nil {
		t.Error("expected validation error for unknown format")
	}
}
