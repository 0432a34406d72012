package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"triagem/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs [RUN_ID]",
		Short: "Print the log of the latest run, or of RUN_ID",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			path, err := logs.FindRunLog(cfg.Paths.LogDir, runID)
			if err != nil {
				return err
			}
			tail, err := logs.Tail(path, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", path)
			if len(tail) > 0 {
				fmt.Fprintln(out, strings.Join(tail, "\n"))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to print (0 for all)")
	return cmd
}
