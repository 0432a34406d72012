package speech

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TextAnalysis is the transcript half of the speech score.
type TextAnalysis struct {
	Score       int
	Keywords    []string
	Indicators  []string
	Hesitations int
}

// AnalyzeText scores a transcript for depressive language. Lowercasing follows
// the rules of tag. An empty transcript scores zero.
func AnalyzeText(text string, tag language.Tag) TextAnalysis {
	var out TextAnalysis
	if strings.TrimSpace(text) == "" {
		return out
	}
	lower := cases.Lower(tag).String(text)

	for _, kw := range DepressionKeywords {
		if strings.Contains(lower, kw) {
			out.Keywords = append(out.Keywords, kw)
			out.Score += KeywordWeight
		}
	}

	for _, p := range negativePatterns {
		if n := p.count(lower); n > 0 {
			out.Indicators = append(out.Indicators, "Padrão negativo: "+p.Label)
			out.Score += n
		}
	}

	if n := countAll(lower, negationWords); n > negationThreshold {
		out.Indicators = append(out.Indicators, fmt.Sprintf("Alto uso de negações (%dx)", n))
		out.Score += int(float64(n) * 0.5)
	}

	if countAll(lower, firstPersonMarkers) > firstPersonThreshold {
		out.Indicators = append(out.Indicators, "Foco excessivo em si (possível ruminação)")
		out.Score += firstPersonWeight
	}

	out.Hesitations = countAll(lower, HesitationMarkers)
	if out.Hesitations > hesitationThreshold {
		out.Indicators = append(out.Indicators, fmt.Sprintf("Hesitação frequente (%dx)", out.Hesitations))
		out.Score += min(out.Hesitations, hesitationMaxScore)
	}
	return out
}

func countAll(text string, needles []string) int {
	total := 0
	for _, n := range needles {
		total += strings.Count(text, n)
	}
	return total
}
