package speech

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// negativePattern counts phrase matches that start (and optionally end) on a
// word boundary. Go's \b only knows ASCII, so boundaries are checked against
// Unicode letters and digits instead.
type negativePattern struct {
	// Label is the pattern as reported in indicators.
	Label    string
	re       *regexp.Regexp
	trailing bool
}

var negativePatterns = []negativePattern{
	{Label: `\bnão\s+\w+`, re: regexp.MustCompile(`não\s+[\p{L}\p{N}_]+`)},
	{Label: `\bnunca\b`, re: regexp.MustCompile(`nunca`), trailing: true},
	{Label: `\bnada\b`, re: regexp.MustCompile(`nada`), trailing: true},
	{Label: `\bsempre\s+(triste|mal|cansad[oa]|sozinh[oa])`, re: regexp.MustCompile(`sempre\s+(?:triste|mal|cansad[oa]|sozinh[oa])`)},
}

func (p negativePattern) count(text string) int {
	n := 0
	for start := 0; start <= len(text); {
		loc := p.re.FindStringIndex(text[start:])
		if loc == nil {
			break
		}
		begin, end := start+loc[0], start+loc[1]
		if boundaryBefore(text, begin) && (!p.trailing || boundaryAfter(text, end)) {
			n++
			if end > begin {
				start = end
				continue
			}
		}
		// Rejected or empty: retry one rune later so overlapping candidates are seen.
		_, size := utf8.DecodeRuneInString(text[begin:])
		start = begin + max(size, 1)
	}
	return n
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}
