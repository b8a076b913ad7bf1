package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Leave Policy 2026</w:t></w:r></w:p>
    <w:p><w:r><w:t>All employees must apply </w:t></w:r><w:r><w:t>five days in advance.</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Grade</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Days</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Senior</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>30</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p><w:r><w:t>Issued by HR.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatalf("writing zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractWord_DocxParagraphsAndTables(t *testing.T) {
	data := buildDocx(t, sampleDocumentXML)

	result, err := extractWord(data, "leave_policy.docx")
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if result.Error != "" {
		t.Fatalf("unexpected extraction error: %s", result.Error)
	}
	if result.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", result.Confidence)
	}
	if result.Method != "word" {
		t.Errorf("Method = %q, want word", result.Method)
	}

	wantLines := []string{
		"Leave Policy 2026",
		"All employees must apply five days in advance.",
		"Grade | Days",
		"Senior | 30",
		"Issued by HR.",
	}
	got := strings.Split(result.Text, "\n")
	if len(got) != len(wantLines) {
		t.Fatalf("got %d lines %q, want %d", len(got), got, len(wantLines))
	}
	for i := range wantLines {
		if got[i] != wantLines[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], wantLines[i])
		}
	}
}

func TestExtractWord_EmptyDocx(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0"?><w:document xmlns:w="x"><w:body></w:body></w:document>`)

	result, err := extractWord(data, "blank.docx")
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if result.Error == "" {
		t.Error("expected extraction error for a document with no text")
	}
}

func TestExtractWord_Bounds(t *testing.T) {
	if _, err := extractWord(nil, "x.docx"); err == nil {
		t.Error("expected validation error for empty file")
	}
}

func TestExtractWord_NotAnArchive(t *testing.T) {
	result, err := extractWord([]byte("plainly not a zip"), "broken.docx")
	if err != nil {
		t.Fatalf("corrupt archive must not be a validation error: %v", err)
	}
	if result.Error == "" {
		t.Error("expected extraction error for a corrupt docx")
	}
}
