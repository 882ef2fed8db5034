package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JamesPrial/obsctl/internal/history"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var (
		action string
		limit  int
		output = outputText
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded vault activity",
		Long: `Show the activity log written by the CLI, the MCP server and the agent hook.

The log lives in the configured history backend (json, sqlite or postgres).
The vault files remain the source of truth.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.context()
			if err != nil {
				return err
			}
			backend, err := history.New(app.Config.History, app.Home)
			if err != nil {
				return err
			}
			events, err := history.ByAction(backend, action)
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			if limit > 0 && len(events) > limit {
				events = events[len(events)-limit:]
			}
			return writeEvents(cmd.OutOrStdout(), events, output)
		},
	}

	historyCmd.Flags().StringVar(&action, "action", "", "Only show events with this action (e.g. task.done)")
	historyCmd.Flags().IntVar(&limit, "limit", 20, "Number of most recent events to show (0 for all)")
	historyCmd.Flags().VarP(&output, "output", "o", "Output format")

	return historyCmd
}

func writeEvents(w io.Writer, events []history.Event, format outputValue) error {
	switch format {
	case outputJSON:
		data, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case outputYAML:
		data, err := yaml.Marshal(events)
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		_, err = w.Write(data)
		return err

	default:
		if len(events) == 0 {
			_, err := fmt.Fprintln(w, "No history recorded.")
			return err
		}
		for _, e := range events {
			line := fmt.Sprintf("%s  %-5s %-12s", e.Timestamp, e.Source, e.Action)
			if e.TaskID != 0 {
				line += fmt.Sprintf(" #%d", e.TaskID)
			}
			if e.Subject != "" {
				line += " " + e.Subject
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
}
