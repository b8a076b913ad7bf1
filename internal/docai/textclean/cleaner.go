package textclean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	hyphenBreakRe  = regexp.MustCompile(`(\pL)-[ \t]*\n[ \t]*(\pL)`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	multiSpaceRe   = regexp.MustCompile(` {2,}`)

	zeroWidthReplacer = strings.NewReplacer(
		"\u200b", "", //zero-width space
		"\u200c", "", //zero-width non-joiner
		"\u200d", "", //zero-width joiner
		"\ufeff", "", //byte order mark
	)
)

// Clean normalises OCR/extraction output. Idempotent:
// Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)
	text = zeroWidthReplacer.Replace(text)

	//common OCR confusion: vertical bar read for capital I
	text = strings.ReplaceAll(text, "|", "I")

	//rejoin words broken across lines with a trailing hyphen
	text = hyphenBreakRe.ReplaceAllString(text, "$1$2")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	text = multiSpaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
