package report

import (
	"strings"
	"testing"
)

func TestClassifyRiskBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, RiskLow},
		{2.999, RiskLow},
		{3, RiskModerate},
		{7.999, RiskModerate},
		{8, RiskHigh},
		{14.999, RiskHigh},
		{15, RiskVeryHigh},
		{120, RiskVeryHigh},
	}
	for _, tc := range tests {
		if got := ClassifyRisk(tc.score); got != tc.want {
			t.Errorf("ClassifyRisk(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestSubScoreLevels(t *testing.T) {
	if got := VideoLevel(0.49); got != LevelLow {
		t.Fatalf("VideoLevel(0.49) = %q", got)
	}
	if got := VideoLevel(0.5); got != LevelModerate {
		t.Fatalf("VideoLevel(0.5) = %q", got)
	}
	if got := VideoLevel(1.5); got != LevelHigh {
		t.Fatalf("VideoLevel(1.5) = %q", got)
	}
	if got := SpeechLevel(4); got != LevelLow {
		t.Fatalf("SpeechLevel(4) = %q", got)
	}
	if got := SpeechLevel(5); got != LevelModerate {
		t.Fatalf("SpeechLevel(5) = %q", got)
	}
	if got := SpeechLevel(15); got != LevelHigh {
		t.Fatalf("SpeechLevel(15) = %q", got)
	}
	if got := BruiseLevel(3); got != LevelLow {
		t.Fatalf("BruiseLevel(3) = %q", got)
	}
	if got := BruiseLevel(6); got != LevelModerate {
		t.Fatalf("BruiseLevel(6) = %q", got)
	}
	if got := BruiseLevel(15); got != LevelHigh {
		t.Fatalf("BruiseLevel(15) = %q", got)
	}
}

func TestFuseScores(t *testing.T) {
	total, tier := FuseScores(2.5, 5)
	if total != 4 || tier != RiskModerate {
		t.Fatalf("FuseScores(2.5, 5) = %v %q", total, tier)
	}
	total, tier = FuseScores(0.25, 0)
	if total != 0.1 || tier != RiskLow {
		t.Fatalf("FuseScores(0.25, 0) = %v %q", total, tier)
	}
	total, tier = FuseScores(1, 30)
	if total != 18.4 || tier != RiskVeryHigh {
		t.Fatalf("FuseScores(1, 30) = %v %q", total, tier)
	}
	for i := 0; i < 5; i++ {
		again, againTier := FuseScores(1, 30)
		if again != total || againTier != tier {
			t.Fatal("FuseScores is not deterministic")
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(1.234); got != 1.23 {
		t.Fatalf("Round2(1.234) = %v", got)
	}
	if got := Round2(2.5); got != 2.5 {
		t.Fatalf("Round2(2.5) = %v", got)
	}
	tests := []struct {
		in, want float64
	}{
		{2.675, 2.67},
		{0.125, 0.12},
		{1.115, 1.11},
		{-0.125, -0.12},
		{0.135, 0.14},
		{4.005, 4},
	}
	for _, tc := range tests {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFuseScoresRoundsExactTiesToEven(t *testing.T) {
	// 0.3125*0.4 = 0.125 exactly.
	total, tier := FuseScores(0.3125, 0)
	if total != 0.12 || tier != RiskLow {
		t.Fatalf("FuseScores = %v %s, want 0.12 BAIXO", total, tier)
	}
}

func TestBruiseRecommendationListsSortedLocations(t *testing.T) {
	locations := map[string]int{"direita - meio": 1, "centro - testa/superior": 1}
	got := BruiseRecommendation(6, locations)
	want := "Localizações: centro - testa/superior, direita - meio."
	if !strings.Contains(got, want) {
		t.Fatalf("recommendation %q missing %q", got, want)
	}
	if !strings.HasPrefix(BruiseRecommendation(15, locations), "ALERTA") {
		t.Fatal("expected alert for high bruise score")
	}
	if BruiseRecommendation(0, nil) != "Não foram detectados hematomas significativos." {
		t.Fatal("unexpected low recommendation")
	}
}

func TestFinalRecommendationCapsLists(t *testing.T) {
	indicators := []string{"a", "b", "c", "d"}
	keywords := []string{"k1", "k2", "k3", "k4", "k5", "k6"}
	got := FinalRecommendation(RiskHigh, indicators, keywords)
	if !strings.HasPrefix(got, "🚨 ALERTA") {
		t.Fatalf("unexpected opening: %q", got)
	}
	if strings.Contains(got, "  • d") {
		t.Fatal("expected at most three visual indicators")
	}
	if !strings.Contains(got, "Palavras-chave detectadas: k1, k2, k3, k4, k5") || strings.Contains(got, "k6") {
		t.Fatalf("expected five keywords: %q", got)
	}
	if !strings.Contains(got, "CVV - Centro de Valorização da Vida: 188") {
		t.Fatal("expected hotline in high tier")
	}

	plain := FinalRecommendation(RiskLow, nil, nil)
	if strings.Contains(plain, "Indicadores") {
		t.Fatalf("expected no indicator sections: %q", plain)
	}
}
