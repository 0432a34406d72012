package report

import (
	"math"
	"strconv"
)

// Sub-score levels.
const (
	LevelLow      = "Baixo"
	LevelModerate = "Moderado"
	LevelHigh     = "Alto"
)

// Fused risk tiers.
const (
	RiskLow      = "BAIXO"
	RiskModerate = "MODERADO"
	RiskHigh     = "ALTO"
	RiskVeryHigh = "MUITO ALTO"
)

// Fusion weights.
const (
	VisualWeight = 0.4
	AudioWeight  = 0.6
)

func stepLevel(score, moderate, high float64) string {
	switch {
	case score < moderate:
		return LevelLow
	case score < high:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// VideoLevel tiers the averaged facial expression score.
func VideoLevel(score float64) string { return stepLevel(score, 0.5, 1.5) }

// SpeechLevel tiers the speech score.
func SpeechLevel(score float64) string { return stepLevel(score, 5, 15) }

// BruiseLevel tiers the bruise risk score.
func BruiseLevel(score int) string { return stepLevel(float64(score), 5, 15) }

// ClassifyRisk maps a fused score onto the four risk tiers.
func ClassifyRisk(score float64) string {
	switch {
	case score < 3:
		return RiskLow
	case score < 8:
		return RiskModerate
	case score < 15:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// FuseScores returns the weighted total, rounded to two decimals, and the tier
// of the unrounded total.
func FuseScores(visual, audio float64) (float64, string) {
	total := visual*VisualWeight + audio*AudioWeight
	return Round2(total), ClassifyRisk(total)
}

// Round2 rounds to two decimals. Rounding works on the exact binary value
// and breaks exact ties to even, so 2.675 gives 2.67 and 0.125 gives 0.12.
func Round2(v float64) float64 {
	return roundTo(v, 2)
}

func roundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

var (
	videoLevelText = map[string]string{
		LevelLow:      "Baixo - Sem sinais significativos",
		LevelModerate: "Moderado - Alguns indicadores presentes",
		LevelHigh:     "Alto - Múltiplos indicadores presentes",
	}
	bruiseLevelText = map[string]string{
		LevelLow:      "Baixo - Poucos ou nenhum hematoma detectado",
		LevelModerate: "Moderado - Alguns hematomas detectados",
		LevelHigh:     "ALTO - Múltiplos hematomas detectados",
	}
)
