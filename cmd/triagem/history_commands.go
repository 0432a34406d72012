package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"triagem/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect previous analyses",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(cmd, func(store *history.Store) error {
				entries, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					if entries == nil {
						entries = []history.Entry{}
					}
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No analyses recorded")
					return nil
				}
				fmt.Fprintln(out, renderHistoryTable(entries))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print entries as JSON")
	return cmd
}

func renderHistoryTable(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			shortID(e.ID),
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			filepath.Base(e.Video),
			formatFloat(e.TotalScore),
			e.Risk,
			fmt.Sprintf("%d", e.Bruises),
			fmt.Sprintf("%d", e.Marks),
		})
	}
	return renderTable(
		[]string{"ID", "Date", "Video", "Score", "Risk", "Bruises", "Marks"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight},
	)
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one analysis (a unique ID prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(cmd, func(store *history.Store) error {
				entry, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, entry)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "ID:              %s\n", entry.ID)
				fmt.Fprintf(out, "Video:           %s\n", entry.Video)
				fmt.Fprintf(out, "Date:            %s\n", entry.CreatedAt.Local().Format(time.RFC3339))
				fmt.Fprintf(out, "Frames:          %d\n", entry.Frames)
				fmt.Fprintf(out, "Visual score:    %s\n", formatFloat(entry.VisualScore))
				fmt.Fprintf(out, "Speech score:    %s (transcript: %s)\n", formatFloat(entry.AudioScore), yesNo(entry.AudioAvailable))
				fmt.Fprintf(out, "Integrated:      %s (%s)\n", formatFloat(entry.TotalScore), colorTier(entry.Risk, colorize))
				fmt.Fprintf(out, "Bruises:         %d\n", entry.Bruises)
				fmt.Fprintf(out, "Red marks:       %d\n", entry.Marks)
				fmt.Fprintf(out, "Report:          %s\n", entry.ReportPath)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the entry as JSON")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every recorded analysis (report files are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(cmd, func(store *history.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d analyses\n", removed)
				return nil
			})
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
