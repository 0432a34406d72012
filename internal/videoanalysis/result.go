package videoanalysis

import (
	"time"

	"triagem/internal/vision"
)

// Result is the outcome of one visual stage run.
type Result struct {
	Video          string
	StartedAt      time.Time
	Mode           string
	FramesAnalyzed int
	FacesDetected  int
	// Score is the summed expression score divided by FramesAnalyzed.
	Score      float64
	Indicators []string
	Bruises    []vision.Finding
	Marks      []vision.Finding
	// BruiseRisk adds vision.BruiseRiskWeight per bruise.
	BruiseRisk      int
	BruiseLocations map[string]int
	MarkTypes       map[string]int
}

func (acc *accumulator) finalize(video string, started time.Time, mode string) Result {
	result := Result{
		Video:           video,
		StartedAt:       started,
		Mode:            mode,
		FramesAnalyzed:  acc.frames,
		FacesDetected:   acc.faces,
		Score:           acc.score,
		Indicators:      dedupe(acc.indicators),
		Bruises:         acc.bruises,
		Marks:           acc.marks,
		BruiseRisk:      len(acc.bruises) * vision.BruiseRiskWeight,
		BruiseLocations: make(map[string]int),
		MarkTypes:       make(map[string]int),
	}
	if acc.frames > 0 {
		result.Score = acc.score / float64(acc.frames)
	}
	for _, b := range acc.bruises {
		result.BruiseLocations[b.Location]++
	}
	for _, m := range acc.marks {
		result.MarkTypes[m.Type]++
	}
	return result
}

// dedupe keeps the first occurrence of each indicator.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
