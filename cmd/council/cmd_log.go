package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unbobounbobo/press-council/internal/session"
)

func newLogCommand() *cobra.Command {
	var logDir string

	cmd := &cobra.Command{
		Use:   "log [run-log.jsonl]",
		Short: "Inspect NDJSON run logs",
		Long: `Inspect run logs written by "council run --session-log".

Without an argument, lists the run logs in the log directory. With a log
file argument, renders its event timeline.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				events, err := session.ReadEvents(args[0])
				if err != nil {
					return err
				}
				session.RenderTimeline(out, events)
				return nil
			}

			logs, err := session.ListLogs(logDir)
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				fmt.Fprintln(out, "No run logs found.") //nolint:errcheck
				return nil
			}
			for _, l := range logs {
				fmt.Fprintf(out, "%s  %s  %d event(s)\n", //nolint:errcheck
					l.ModTime.Format("2006-01-02 15:04"), l.Name, l.NumEvents)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logDir, "dir", "logs", "Run log directory")

	return cmd
}
