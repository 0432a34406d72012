package report

// Report file base names; each is written as .json and .txt.
const (
	VideoReportName = "analysis_report"
	AudioReportName = "audio_analysis_report"
	FinalReportName = "RELATORIO_FINAL_INTEGRADO"
)

// TimestampLayout is the ISO-8601 layout used in every report.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// VideoReport is analysis_report.json.
type VideoReport struct {
	Arquivo          string            `json:"arquivo"`
	Timestamp        string            `json:"timestamp"`
	FramesAnalisados int               `json:"frames_analisados"`
	Depressao        DepressionSection `json:"depressao"`
	Hematomas        BruiseSection     `json:"hematomas"`
	Marcas           MarkSection       `json:"marcas"`
}

// DepressionSection is the facial expression summary.
type DepressionSection struct {
	Score        float64  `json:"score"`
	Nivel        string   `json:"nivel"`
	Indicadores  []string `json:"indicadores"`
	Recomendacao string   `json:"recomendacao"`
}

// BruiseSection is the bruise summary.
type BruiseSection struct {
	Total        int            `json:"total"`
	ScoreRisco   int            `json:"score_risco"`
	NivelRisco   string         `json:"nivel_risco"`
	Localizacoes map[string]int `json:"localizacoes"`
	Recomendacao string         `json:"recomendacao"`
}

// MarkSection is the red-mark summary.
type MarkSection struct {
	Total        int            `json:"total"`
	Tipos        map[string]int `json:"tipos"`
	Recomendacao string         `json:"recomendacao"`
}

// AudioReport is audio_analysis_report.json.
type AudioReport struct {
	Arquivo     string        `json:"arquivo"`
	Transcricao string        `json:"transcricao"`
	AnaliseFala SpeechSection `json:"analise_fala"`
}

// SpeechSection is the speech scoring summary.
type SpeechSection struct {
	ScoreDepressao int      `json:"score_depressao"`
	Nivel          string   `json:"nivel"`
	Keywords       []string `json:"keywords"`
	Indicadores    []string `json:"indicadores"`
	Hesitacoes     int      `json:"hesitacoes"`
	// FeaturesVoz is null when the audio could not be decoded.
	FeaturesVoz *VoiceSection `json:"features_voz"`
}

// VoiceSection carries rounded prosody features.
type VoiceSection struct {
	PitchMedio       float64 `json:"pitch_medio"`
	Energia          float64 `json:"energia"`
	ZeroCrossingRate float64 `json:"zero_crossing_rate"`
	PausasLongas     int     `json:"pausas_longas"`
}

// Unavailable replaces a stage report that could not be produced.
type Unavailable struct {
	Disponivel bool   `json:"disponivel"`
	Motivo     string `json:"motivo"`
}

// Reasons used in Unavailable placeholders.
const (
	AudioUnavailableReason = "Análise de áudio não concluída"
	VideoUnavailableReason = "Análise visual não concluída"
)

// FinalReport is RELATORIO_FINAL_INTEGRADO.json. AnaliseVideo and AnaliseAudio
// hold either the stage report or an Unavailable placeholder.
type FinalReport struct {
	Arquivo          string     `json:"arquivo"`
	Timestamp        string     `json:"timestamp"`
	AnaliseVideo     any        `json:"analise_video"`
	AnaliseAudio     any        `json:"analise_audio"`
	AnaliseIntegrada Integrated `json:"analise_integrada"`
}

// Integrated is the fused section of the final report.
type Integrated struct {
	Depressao          IntegratedDepression `json:"depressao"`
	ViolenciaDomestica DomesticViolence     `json:"violencia_domestica"`
	ProblemasSaude     HealthIssues         `json:"problemas_saude"`
}

// IntegratedDepression combines the visual and speech scores.
type IntegratedDepression struct {
	ScoreTotal        float64 `json:"score_total"`
	ScoreVisual       float64 `json:"score_visual"`
	ScoreAudio        float64 `json:"score_audio"`
	NivelRisco        string  `json:"nivel_risco"`
	RecomendacaoFinal string  `json:"recomendacao_final"`
}

// DomesticViolence restates the bruise findings.
type DomesticViolence struct {
	HematomasDetectados int    `json:"hematomas_detectados"`
	ScoreRisco          int    `json:"score_risco"`
	NivelRisco          string `json:"nivel_risco"`
	Recomendacao        string `json:"recomendacao"`
}

// HealthIssues restates the red-mark findings.
type HealthIssues struct {
	MarcasDetectadas int    `json:"marcas_detectadas"`
	Recomendacao     string `json:"recomendacao"`
}
