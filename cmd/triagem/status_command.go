package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"triagem/internal/deps"
	"triagem/internal/preflight"
	"triagem/internal/stage"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check dependencies, directories and analysis stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			lines = append(lines,
				renderStatusLine("Config file", statusInfo, ctx.configPath, colorize),
				renderStatusLine("Output directory", statusInfo, cfg.Paths.OutputDir, colorize),
				renderStatusLine("Audio analysis", statusInfo, yesNo(cfg.Audio.Enabled), colorize),
				renderStatusLine("History", statusInfo, yesNo(cfg.History.Enabled), colorize),
				"",
			)

			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(preflight.CheckSystemDeps(cfg), colorize)...)
			lines = append(lines, "")

			lines = append(lines, renderSectionHeader("Preflight", colorize)...)
			lines = append(lines, preflightLines(preflight.RunAll(cfg), colorize)...)
			lines = append(lines, "")

			visual, audio, closeStages := ctx.stages(cfg)
			defer closeStages()
			lines = append(lines, renderSectionHeader("Stages", colorize)...)
			for _, h := range []stage.Handler{visual, audio} {
				if h == nil {
					lines = append(lines, renderStatusLine("audio", statusInfo, "disabled", colorize))
					continue
				}
				lines = append(lines, healthLine(h.HealthCheck(cmd.Context()), colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	missing := deps.MissingRequired(statuses)
	summaryKind, summary := statusOK, "All required tools found"
	if len(missing) > 0 {
		summaryKind, summary = statusError, "Missing "+strings.Join(missing, ", ")
	}
	lines = append(lines, renderStatusLine("Summary", summaryKind, summary, colorize))
	for _, dep := range statuses {
		if dep.Available {
			lines = append(lines, renderStatusLine(dep.Name, statusOK, fmt.Sprintf("Ready (command: %s)", dep.Path), colorize))
			continue
		}
		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
			detail += " (optional: " + dep.Description + ")"
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
	}
	return lines
}

func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	return lines
}

func healthLine(h stage.Health, colorize bool) string {
	if h.Ready {
		msg := "Ready"
		if h.Detail != "" {
			msg = fmt.Sprintf("Ready (%s)", h.Detail)
		}
		return renderStatusLine(h.Name, statusOK, msg, colorize)
	}
	return renderStatusLine(h.Name, statusWarn, h.Detail, colorize)
}
