package speech

import (
	"fmt"
	"math"
)

const (
	frameLength = 2048
	hopLength   = 512

	silenceTopDB     = 30.0
	longPauseSeconds = 1.0

	pitchFrameLength = 1024
	minPitchHz       = 60.0
	maxPitchHz       = 400.0
	voicedCorr       = 0.3

	lowPitchHz       = 120.0
	lowEnergy        = 100.0
	longPauseLimit   = 5
	longPausesWeight = 2
)

// VoiceFeatures summarizes prosody of a mono track.
type VoiceFeatures struct {
	// PitchMean is the mean fundamental frequency of voiced frames in Hz.
	PitchMean float64
	// Energy is the sum of per-frame RMS values.
	Energy           float64
	ZeroCrossingRate float64
	// LongPauses counts silent gaps longer than one second.
	LongPauses int
}

// Assess returns the score contribution and indicators for the features.
func (f VoiceFeatures) Assess() (int, []string) {
	score := 0
	var indicators []string
	if f.PitchMean > 0 && f.PitchMean < lowPitchHz {
		indicators = append(indicators, "Tom de voz baixo (baixa energia/tristeza)")
		score++
	}
	if f.Energy < lowEnergy {
		indicators = append(indicators, "Baixa energia vocal")
		score++
	}
	if f.LongPauses > longPauseLimit {
		indicators = append(indicators, fmt.Sprintf("Muitas pausas longas (%dx)", f.LongPauses))
		score += longPausesWeight
	}
	return score, indicators
}

// ExtractFeatures computes pitch, energy, zero-crossing rate and long pauses
// over centered frames of frameLength samples every hopLength samples.
func ExtractFeatures(samples []float64, sampleRate int) VoiceFeatures {
	if len(samples) == 0 || sampleRate <= 0 {
		return VoiceFeatures{}
	}
	rms := frameRMS(samples)
	var energy float64
	for _, v := range rms {
		energy += v
	}
	return VoiceFeatures{
		PitchMean:        meanPitch(samples, sampleRate, rms),
		Energy:           energy,
		ZeroCrossingRate: meanZCR(samples),
		LongPauses:       countLongPauses(rms, len(samples), sampleRate),
	}
}

func frameCount(n int) int {
	return 1 + n/hopLength
}

// frameRMS zero-pads half a frame on both sides.
func frameRMS(samples []float64) []float64 {
	out := make([]float64, frameCount(len(samples)))
	for t := range out {
		start := t*hopLength - frameLength/2
		var sum float64
		for i := start; i < start+frameLength; i++ {
			if i < 0 || i >= len(samples) {
				continue
			}
			sum += samples[i] * samples[i]
		}
		out[t] = math.Sqrt(sum / frameLength)
	}
	return out
}

// meanZCR repeats the edge samples as padding and treats zero as positive.
func meanZCR(samples []float64) float64 {
	at := func(i int) float64 {
		switch {
		case i < 0:
			return samples[0]
		case i >= len(samples):
			return samples[len(samples)-1]
		default:
			return samples[i]
		}
	}
	negative := func(v float64) bool { return v < -1e-10 }

	frames := frameCount(len(samples))
	var total float64
	for t := 0; t < frames; t++ {
		start := t*hopLength - frameLength/2
		crossings := 0
		for i := start + 1; i < start+frameLength; i++ {
			if negative(at(i)) != negative(at(i-1)) {
				crossings++
			}
		}
		total += float64(crossings) / frameLength
	}
	return total / float64(frames)
}

// nonSilent marks frames whose power is within silenceTopDB of the loudest.
func nonSilent(rms []float64) []bool {
	const amin = 1e-10
	peak := amin
	for _, v := range rms {
		peak = math.Max(peak, v*v)
	}
	out := make([]bool, len(rms))
	for i, v := range rms {
		db := 10 * math.Log10(math.Max(amin, v*v)/peak)
		out[i] = db > -silenceTopDB
	}
	return out
}

type interval struct{ start, end int }

func nonSilentIntervals(rms []float64, n int) []interval {
	var out []interval
	mask := nonSilent(rms)
	for i := 0; i < len(mask); {
		if !mask[i] {
			i++
			continue
		}
		j := i
		for j < len(mask) && mask[j] {
			j++
		}
		out = append(out, interval{start: i * hopLength, end: min(j*hopLength, n)})
		i = j
	}
	return out
}

func countLongPauses(rms []float64, n, sampleRate int) int {
	intervals := nonSilentIntervals(rms, n)
	pauses := 0
	for i := 1; i < len(intervals); i++ {
		gap := float64(intervals[i].start-intervals[i-1].end) / float64(sampleRate)
		if gap > longPauseSeconds {
			pauses++
		}
	}
	return pauses
}

// meanPitch estimates f0 per non-silent frame from the normalized
// autocorrelation peak in [minPitchHz, maxPitchHz] and averages the voiced
// frames. It returns 0 when no frame is voiced.
func meanPitch(samples []float64, sampleRate int, rms []float64) float64 {
	mask := nonSilent(rms)
	minLag := int(float64(sampleRate) / maxPitchHz)
	maxLag := int(float64(sampleRate) / minPitchHz)
	if maxLag >= pitchFrameLength {
		maxLag = pitchFrameLength - 1
	}

	var sum float64
	voiced := 0
	for t, active := range mask {
		if !active {
			continue
		}
		start := t*hopLength - pitchFrameLength/2
		if start < 0 || start+pitchFrameLength > len(samples) {
			continue
		}
		frame := samples[start : start+pitchFrameLength]
		var energy float64
		for _, v := range frame {
			energy += v * v
		}
		if energy == 0 {
			continue
		}
		bestLag, best := 0, voicedCorr
		for lag := minLag; lag <= maxLag; lag++ {
			var acc float64
			for i := 0; i+lag < len(frame); i++ {
				acc += frame[i] * frame[i+lag]
			}
			if r := acc / energy; r > best {
				best, bestLag = r, lag
			}
		}
		if bestLag > 0 {
			sum += float64(sampleRate) / float64(bestLag)
			voiced++
		}
	}
	if voiced == 0 {
		return 0
	}
	return sum / float64(voiced)
}
