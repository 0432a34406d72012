package speech

import (
	"math"
	"slices"
	"testing"
)

func sine(freq, amplitude, seconds float64, rate int) []float64 {
	n := int(seconds * float64(rate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

func silence(seconds float64, rate int) []float64 {
	return make([]float64, int(seconds*float64(rate)))
}

func TestExtractFeaturesSine(t *testing.T) {
	f := ExtractFeatures(sine(100, 0.5, 2, 16000), 16000)
	if f.PitchMean < 95 || f.PitchMean > 105 {
		t.Fatalf("pitch = %v, want ~100", f.PitchMean)
	}
	if f.Energy <= 0 || f.Energy >= lowEnergy {
		t.Fatalf("energy = %v, want in (0, %v)", f.Energy, lowEnergy)
	}
	if math.Abs(f.ZeroCrossingRate-0.0125) > 0.002 {
		t.Fatalf("zcr = %v, want ~0.0125", f.ZeroCrossingRate)
	}
	if f.LongPauses != 0 {
		t.Fatalf("pauses = %d, want 0", f.LongPauses)
	}
}

func TestExtractFeaturesCountsLongPauses(t *testing.T) {
	var samples []float64
	for i := 0; i < 8; i++ {
		samples = append(samples, sine(200, 0.5, 0.5, 16000)...)
		if i < 7 {
			samples = append(samples, silence(1.5, 16000)...)
		}
	}
	// Short gaps do not count.
	samples = append(samples, silence(0.4, 16000)...)
	samples = append(samples, sine(200, 0.5, 0.5, 16000)...)

	f := ExtractFeatures(samples, 16000)
	if f.LongPauses != 7 {
		t.Fatalf("pauses = %d, want 7", f.LongPauses)
	}
}

func TestExtractFeaturesEmpty(t *testing.T) {
	if f := ExtractFeatures(nil, 16000); f != (VoiceFeatures{}) {
		t.Fatalf("expected zero features, got %+v", f)
	}
	f := ExtractFeatures(silence(1, 16000), 16000)
	if f.PitchMean != 0 || f.Energy != 0 || f.ZeroCrossingRate != 0 {
		t.Fatalf("expected silent features, got %+v", f)
	}
}

func TestVoiceFeaturesAssess(t *testing.T) {
	tests := []struct {
		name       string
		features   VoiceFeatures
		score      int
		indicators []string
	}{
		{"lively", VoiceFeatures{PitchMean: 180, Energy: 250, LongPauses: 2}, 0, nil},
		{"no pitch", VoiceFeatures{PitchMean: 0, Energy: 250}, 0, nil},
		{"low pitch", VoiceFeatures{PitchMean: 110, Energy: 250}, 1, []string{"Tom de voz baixo (baixa energia/tristeza)"}},
		{"quiet", VoiceFeatures{PitchMean: 180, Energy: 99.9}, 1, []string{"Baixa energia vocal"}},
		{"pauses", VoiceFeatures{PitchMean: 180, Energy: 250, LongPauses: 6}, 2, []string{"Muitas pausas longas (6x)"}},
		{"all", VoiceFeatures{PitchMean: 90, Energy: 10, LongPauses: 9}, 4, []string{
			"Tom de voz baixo (baixa energia/tristeza)", "Baixa energia vocal", "Muitas pausas longas (9x)",
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, indicators := tc.features.Assess()
			if score != tc.score || !slices.Equal(indicators, tc.indicators) {
				t.Fatalf("Assess = %d %v, want %d %v", score, indicators, tc.score, tc.indicators)
			}
		})
	}
}
