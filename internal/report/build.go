package report

import (
	"time"
	"unicode/utf8"

	"triagem/internal/speech"
	"triagem/internal/videoanalysis"
)

// TranscriptLimit is the number of runes kept in the audio report.
const TranscriptLimit = 500

// TruncateTranscript keeps the first TranscriptLimit runes and appends "..."
// when anything was cut.
func TruncateTranscript(text string) string {
	if utf8.RuneCountInString(text) <= TranscriptLimit {
		return text
	}
	runes := []rune(text)
	return string(runes[:TranscriptLimit]) + "..."
}

// NewVideoReport summarizes a visual stage result.
func NewVideoReport(r videoanalysis.Result, at time.Time) VideoReport {
	locations := nonNilCounts(r.BruiseLocations)
	return VideoReport{
		Arquivo:          r.Video,
		Timestamp:        at.Format(TimestampLayout),
		FramesAnalisados: r.FramesAnalyzed,
		Depressao: DepressionSection{
			Score:        Round2(r.Score),
			Nivel:        VideoLevel(r.Score),
			Indicadores:  nonNil(r.Indicators),
			Recomendacao: DepressionRecommendation(r.Score),
		},
		Hematomas: BruiseSection{
			Total:        len(r.Bruises),
			ScoreRisco:   r.BruiseRisk,
			NivelRisco:   BruiseLevel(r.BruiseRisk),
			Localizacoes: locations,
			Recomendacao: BruiseRecommendation(r.BruiseRisk, locations),
		},
		Marcas: MarkSection{
			Total:        len(r.Marks),
			Tipos:        nonNilCounts(r.MarkTypes),
			Recomendacao: MarksRecommendation(len(r.Marks)),
		},
	}
}

const maxReportKeywords = 15

// NewAudioReport summarizes a speech stage result.
func NewAudioReport(r speech.Result) AudioReport {
	keywords := nonNil(r.Keywords)
	if len(keywords) > maxReportKeywords {
		keywords = keywords[:maxReportKeywords]
	}
	section := SpeechSection{
		ScoreDepressao: r.Score,
		Nivel:          SpeechLevel(float64(r.Score)),
		Keywords:       keywords,
		Indicadores:    nonNil(r.Indicators),
		Hesitacoes:     r.Hesitations,
	}
	if r.Voice != nil {
		section.FeaturesVoz = &VoiceSection{
			PitchMedio:       roundTo(r.Voice.PitchMean, 1),
			Energia:          roundTo(r.Voice.Energy, 2),
			ZeroCrossingRate: roundTo(r.Voice.ZeroCrossingRate, 4),
			PausasLongas:     r.Voice.LongPauses,
		}
	}
	return AudioReport{
		Arquivo:     r.Video,
		Transcricao: TruncateTranscript(r.Transcript),
		AnaliseFala: section,
	}
}

// NewFinalReport fuses the stage reports. A nil report counts as zero and is
// replaced by an Unavailable placeholder.
func NewFinalReport(video string, v *VideoReport, a *AudioReport, at time.Time) FinalReport {
	out := FinalReport{
		Arquivo:          video,
		Timestamp:        at.Format(TimestampLayout),
		AnaliseVideo:     Unavailable{Motivo: VideoUnavailableReason},
		AnaliseAudio:     Unavailable{Motivo: AudioUnavailableReason},
		AnaliseIntegrada: Fuse(v, a),
	}
	if v != nil {
		out.AnaliseVideo = v
	}
	if a != nil {
		out.AnaliseAudio = a
	}
	return out
}

// Fuse combines the visual and speech scores and restates the bruise and
// mark findings.
func Fuse(v *VideoReport, a *AudioReport) Integrated {
	var (
		visual, audio float64
		indicators    []string
		keywords      []string
	)
	if v == nil {
		empty := NewVideoReport(videoanalysis.Result{}, time.Time{})
		v = &empty
	}
	visual = v.Depressao.Score
	indicators = v.Depressao.Indicadores
	if a != nil {
		audio = float64(a.AnaliseFala.ScoreDepressao)
		keywords = a.AnaliseFala.Keywords
	}
	total, tier := FuseScores(visual, audio)
	return Integrated{
		Depressao: IntegratedDepression{
			ScoreTotal:        total,
			ScoreVisual:       visual,
			ScoreAudio:        audio,
			NivelRisco:        tier,
			RecomendacaoFinal: FinalRecommendation(tier, indicators, keywords),
		},
		ViolenciaDomestica: DomesticViolence{
			HematomasDetectados: v.Hematomas.Total,
			ScoreRisco:          v.Hematomas.ScoreRisco,
			NivelRisco:          v.Hematomas.NivelRisco,
			Recomendacao:        v.Hematomas.Recomendacao,
		},
		ProblemasSaude: HealthIssues{
			MarcasDetectadas: v.Marcas.Total,
			Recomendacao:     v.Marcas.Recomendacao,
		},
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilCounts(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
