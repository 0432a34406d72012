package speech

import (
	"slices"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestAnalyzeTextReferenceSentence(t *testing.T) {
	got := AnalyzeText("Estou muito triste e sozinho, não aguento mais", language.BrazilianPortuguese)
	for _, kw := range []string{"triste", "sozinho", "não aguento"} {
		if !slices.Contains(got.Keywords, kw) {
			t.Fatalf("expected keyword %q in %v", kw, got.Keywords)
		}
	}
	if got.Score < 6 {
		t.Fatalf("score = %d, want >= 6", got.Score)
	}
	if got.Score != 7 {
		t.Fatalf("score = %d, want 7 (three keywords plus one negative pattern)", got.Score)
	}
}

func TestAnalyzeTextEmpty(t *testing.T) {
	for _, text := range []string{"", "   \n"} {
		got := AnalyzeText(text, language.BrazilianPortuguese)
		if got.Score != 0 || len(got.Keywords) != 0 || len(got.Indicators) != 0 || got.Hesitations != 0 {
			t.Fatalf("expected zero analysis for %q, got %+v", text, got)
		}
	}
}

func TestAnalyzeTextCases(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		score       int
		indicators  []string
		hesitations int
	}{
		{
			name:       "word boundaries",
			text:       "Eu nunca faço nada. Nunca!",
			score:      3,
			indicators: []string{`Padrão negativo: \bnunca\b`, `Padrão negativo: \bnada\b`},
		},
		{
			name:  "no match inside words",
			text:  "vou nadar amanhã",
			score: 0,
		},
		{
			name:  "heavy negation",
			text:  "não não não não não não",
			score: 6,
			indicators: []string{
				`Padrão negativo: \bnão\s+\w+`,
				"Alto uso de negações (6x)",
			},
		},
		{
			name:       "first person focus",
			text:       strings.Repeat("eu acho ", 11),
			score:      2,
			indicators: []string{"Foco excessivo em si (possível ruminação)"},
		},
		{
			name:        "hesitation capped",
			text:        "hum hum hum tipo tipo assim",
			score:       5,
			indicators:  []string{"Hesitação frequente (6x)"},
			hesitations: 6,
		},
		{
			name:  "always sad",
			text:  "fico sempre cansada",
			score: 1 + KeywordWeight,
			indicators: []string{
				`Padrão negativo: \bsempre\s+(triste|mal|cansad[oa]|sozinh[oa])`,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AnalyzeText(tc.text, language.BrazilianPortuguese)
			if got.Score != tc.score {
				t.Fatalf("score = %d, want %d (%+v)", got.Score, tc.score, got)
			}
			if !slices.Equal(got.Indicators, tc.indicators) {
				t.Fatalf("indicators = %q, want %q", got.Indicators, tc.indicators)
			}
			if got.Hesitations != tc.hesitations {
				t.Fatalf("hesitations = %d, want %d", got.Hesitations, tc.hesitations)
			}
		})
	}
}

func TestAnalyzeTextLowercasesPortuguese(t *testing.T) {
	got := AnalyzeText("SINTO ANGÚSTIA E SOLIDÃO", language.BrazilianPortuguese)
	want := []string{"solidão", "angústia"}
	if !slices.Equal(got.Keywords, want) {
		t.Fatalf("keywords = %v, want %v", got.Keywords, want)
	}
	if got.Score != 2*KeywordWeight {
		t.Fatalf("score = %d", got.Score)
	}
}

func TestKeywordListHasNoDuplicates(t *testing.T) {
	seen := make(map[string]bool, len(DepressionKeywords))
	for _, kw := range DepressionKeywords {
		if seen[kw] {
			t.Fatalf("duplicate keyword %q", kw)
		}
		seen[kw] = true
	}
	if len(DepressionKeywords) != 78 {
		t.Fatalf("expected 78 keywords, got %d", len(DepressionKeywords))
	}
}
