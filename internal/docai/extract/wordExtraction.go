package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
	"github.com/lu4p/cat"
)

const tableCellDelimiter = " | "

// extractWord pulls paragraph text, then table text row by row with a
// cell delimiter. Deterministic extraction, so confidence is fixed at 1.0.
func extractWord(data []byte, filename string) (commonModels.ExtractionResult, error) {
	if len(data) == 0 {
		return commonModels.ExtractionResult{}, ErrEmptyFile
	}
	if int64(len(data)) > config.MaxUploadBytes {
		return commonModels.ExtractionResult{}, ErrFileTooLarge
	}

	var text string
	var err error
	if strings.EqualFold(filepath.Ext(filename), ".docx") {
		text, err = parseDocx(data)
	} else {
		text, err = catFromBytes(data, filename)
	}

	if err != nil {
		return commonModels.ExtractionResult{
			Method: commonModels.MethodWord,
			Error:  fmt.Sprintf("failed to extract document text: %v", err),
		}, nil
	}
	if strings.TrimSpace(text) == "" {
		return commonModels.ExtractionResult{
			Method: commonModels.MethodWord,
			Error:  "document contains no extractable text",
		}, nil
	}

	return commonModels.ExtractionResult{
		Text:       text,
		Confidence: 1.0,
		Method:     commonModels.MethodWord,
	}, nil
}

// parseDocx walks word/document.xml in document order: top-level
// paragraphs become lines, table rows become one line each with cells
// joined by the delimiter. A malformed block is skipped, not fatal.
func parseDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not a valid docx archive: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("docx missing word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	return walkDocumentXML(rc)
}

func walkDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var blocks []string
	var para, cell strings.Builder
	var row []string
	tableDepth := 0
	inPara := false
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth > 0 {
					row = row[:0]
				}
			case "tc":
				if tableDepth > 0 {
					cell.Reset()
				}
			case "p":
				if tableDepth == 0 {
					para.Reset()
					inPara = true
				}
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if tableDepth == 0 && inPara {
					if line := strings.TrimSpace(para.String()); line != "" {
						blocks = append(blocks, line)
					}
					inPara = false
				}
			case "tc":
				if tableDepth > 0 {
					row = append(row, strings.TrimSpace(cell.String()))
				}
			case "tr":
				if tableDepth > 0 && len(row) > 0 {
					blocks = append(blocks, strings.Join(row, tableCellDelimiter))
				}
			case "tbl":
				tableDepth--
			}
		case xml.CharData:
			if !inText {
				continue
			}
			if tableDepth > 0 {
				cell.Write(t)
			} else if inPara {
				para.Write(t)
			}
		}
	}

	return strings.Join(blocks, "\n"), nil
}

// catFromBytes stages the upload in a temp file for the path-based cat
// reader (.doc, .rtf, .odt, plaintext).
func catFromBytes(data []byte, filename string) (string, error) {
	tmp, err := os.CreateTemp("", "intake-*"+filepath.Ext(filename))
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	return cat.File(tmp.Name())
}
