// Package textnorm strips the markup artifacts the vendor exporter leaves in free-text fields.
//
// Every function is total: any input string yields a result, never an error.
package textnorm

import "strings"

// Vendor markup literals.
const (
	Break          = "</br>"
	ParagraphOpen  = "<p>"
	ParagraphClose = "</p>"
	ParagraphGap   = ParagraphClose + ParagraphOpen
)

var pairReplacer = strings.NewReplacer(
	ParagraphOpen, "",
	ParagraphClose, "",
	Break, "\n",
)

// StripLeadingMarkup removes any of tokens from the start of s until none of them match.
// Tokens are tried in order on every pass. Empty tokens are ignored.
func StripLeadingMarkup(s string, tokens ...string) string {
	for {
		stripped := false
		for _, tok := range tokens {
			if tok == "" {
				continue
			}
			if rest, ok := strings.CutPrefix(s, tok); ok {
				s = rest
				stripped = true
			}
		}
		if !stripped {
			return s
		}
	}
}

// StripAllMarkupPairs deletes every paragraph marker and turns break markers into newlines.
func StripAllMarkupPairs(s string) string {
	return pairReplacer.Replace(s)
}

// SplitOnDelimiter splits s on a literal delimiter and trims whitespace around each piece.
func SplitOnDelimiter(s, delimiter string) []string {
	parts := strings.Split(s, delimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// BreakToLines splits on the vendor break marker and rejoins with real newlines.
func BreakToLines(s string) string {
	return strings.Join(SplitOnDelimiter(s, Break), "\n")
}

// EnsureSuffix appends suffix unless s already ends with it.
func EnsureSuffix(s, suffix string) string {
	if strings.HasSuffix(s, suffix) {
		return s
	}
	return s + suffix
}
