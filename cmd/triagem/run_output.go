package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"triagem/internal/pipeline"
	"triagem/internal/report"
)

type stageSummary struct {
	Name    string  `json:"name"`
	Status  string  `json:"status"`
	Seconds float64 `json:"seconds"`
	Error   string  `json:"error,omitempty"`
}

type runSummary struct {
	RunID       string              `json:"run_id"`
	Video       string              `json:"video"`
	Scope       string              `json:"scope"`
	StartedAt   time.Time           `json:"started_at"`
	LogPath     string              `json:"log_path,omitempty"`
	HistoryID   string              `json:"history_id,omitempty"`
	Stages      []stageSummary      `json:"stages"`
	Files       []string            `json:"files"`
	VideoReport *report.VideoReport `json:"video_report,omitempty"`
	AudioReport *report.AudioReport `json:"audio_report,omitempty"`
	Integrated  *report.Integrated  `json:"integrated,omitempty"`
}

func newRunSummary(o pipeline.Outcome) runSummary {
	s := runSummary{
		RunID:       o.RunID,
		Video:       o.Video,
		Scope:       string(o.Scope),
		StartedAt:   o.StartedAt,
		LogPath:     o.LogPath,
		HistoryID:   o.HistoryID,
		Stages:      make([]stageSummary, 0, len(o.Stages)),
		Files:       o.Files,
		VideoReport: o.VideoReport,
		AudioReport: o.AudioReport,
	}
	if s.Files == nil {
		s.Files = []string{}
	}
	for _, st := range o.Stages {
		entry := stageSummary{Name: st.Name, Status: st.Status, Seconds: st.Duration.Seconds()}
		if st.Err != nil {
			entry.Error = st.Err.Error()
		}
		s.Stages = append(s.Stages, entry)
	}
	if o.Final != nil {
		s.Integrated = &o.Final.AnaliseIntegrada
	}
	return s
}

func renderOutcome(o pipeline.Outcome, colorize bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Video: %s\n", o.Video)
	fmt.Fprintf(&b, "Run:   %s\n\n", o.RunID)

	stageRows := make([][]string, 0, len(o.Stages))
	for _, st := range o.Stages {
		detail := ""
		if st.Err != nil {
			detail = st.Err.Error()
		}
		stageRows = append(stageRows, []string{st.Name, st.Status, st.Duration.Round(time.Millisecond).String(), detail})
	}
	b.WriteString(renderTable([]string{"Stage", "Status", "Duration", "Detail"}, stageRows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
	b.WriteString("\n\n")

	var rows [][]string
	if v := o.VideoReport; v != nil {
		rows = append(rows,
			[]string{"Depression (face)", formatFloat(v.Depressao.Score), v.Depressao.Nivel},
			[]string{"Bruises", fmt.Sprintf("%d (risk %d)", v.Hematomas.Total, v.Hematomas.ScoreRisco), v.Hematomas.NivelRisco},
			[]string{"Red marks", fmt.Sprintf("%d", v.Marcas.Total), ""},
		)
	}
	if a := o.AudioReport; a != nil {
		rows = append(rows, []string{"Depression (speech)", fmt.Sprintf("%d", a.AnaliseFala.ScoreDepressao), a.AnaliseFala.Nivel})
	}
	if len(rows) > 0 {
		b.WriteString(renderTable([]string{"Analysis", "Score", "Level"}, rows,
			[]columnAlignment{alignLeft, alignRight, alignLeft}))
		b.WriteString("\n\n")
	}

	if o.Final != nil {
		dep := o.Final.AnaliseIntegrada.Depressao
		fmt.Fprintf(&b, "Integrated risk: %s (score %s)\n\n", colorTier(dep.NivelRisco, colorize), formatFloat(dep.ScoreTotal))
	}

	if len(o.Files) == 0 {
		b.WriteString("No reports written.\n")
	} else {
		b.WriteString("Reports:\n")
		for _, f := range o.Files {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	if o.LogPath != "" {
		fmt.Fprintf(&b, "Run log: %s\n", filepath.Clean(o.LogPath))
	}
	return b.String()
}

func colorTier(tier string, colorize bool) string {
	if !colorize {
		return tier
	}
	color := ansiGreen
	switch tier {
	case report.RiskModerate:
		color = ansiYellow
	case report.RiskHigh, report.RiskVeryHigh:
		color = ansiRed
	}
	return color + tier + ansiReset
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
