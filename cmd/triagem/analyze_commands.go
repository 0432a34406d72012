package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"triagem/internal/pipeline"
)

type analyzeFlags struct {
	sampleRate     int
	transcript     string
	transcriptFile string
	jsonOutput     bool
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	return newRunCommand(ctx, pipeline.ScopeFull, &cobra.Command{
		Use:   "analyze VIDEO",
		Short: "Run the visual and speech analyses and write all three reports",
	})
}

func newVideoCommand(ctx *commandContext) *cobra.Command {
	return newRunCommand(ctx, pipeline.ScopeVideo, &cobra.Command{
		Use:   "video VIDEO",
		Short: "Run only the visual analysis (analysis_report.*)",
	})
}

func newAudioCommand(ctx *commandContext) *cobra.Command {
	return newRunCommand(ctx, pipeline.ScopeAudio, &cobra.Command{
		Use:   "audio VIDEO",
		Short: "Run only the speech analysis (audio_analysis_report.*)",
	})
}

func newRunCommand(ctx *commandContext, scope pipeline.Scope, cmd *cobra.Command) *cobra.Command {
	var flags analyzeFlags
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("sample-rate") {
			if flags.sampleRate <= 0 {
				return fmt.Errorf("--sample-rate must be positive, got %d", flags.sampleRate)
			}
			cfg.Video.SampleRate = flags.sampleRate
		}
		transcript, err := readTranscript(flags.transcript, flags.transcriptFile)
		if err != nil {
			return err
		}
		if transcript != "" && !cfg.Audio.Enabled {
			cfg.Audio.Enabled = true
		}

		runner, cleanup, err := ctx.newRunner(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		outcome, err := runner.Run(cmd.Context(), pipeline.Request{
			Video:      args[0],
			Transcript: transcript,
			Scope:      scope,
		})
		if err != nil {
			return err
		}
		if flags.jsonOutput {
			return writeJSON(cmd, newRunSummary(outcome))
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, renderOutcome(outcome, shouldColorize(out)))
		return nil
	}

	if scope != pipeline.ScopeAudio {
		cmd.Flags().IntVar(&flags.sampleRate, "sample-rate", 0, "Analyze one frame out of every N (overrides video.sample_rate)")
	}
	if scope != pipeline.ScopeVideo {
		cmd.Flags().StringVar(&flags.transcript, "transcript", "", "Use this transcript instead of running WhisperX")
		cmd.Flags().StringVar(&flags.transcriptFile, "transcript-file", "", "Read the transcript from a file instead of running WhisperX")
	}
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

func readTranscript(text, path string) (string, error) {
	text = strings.TrimSpace(text)
	path = strings.TrimSpace(path)
	if text != "" && path != "" {
		return "", errors.New("use either --transcript or --transcript-file, not both")
	}
	if path == "" {
		return text, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
