package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JamesPrial/obsctl/internal/history"
)

func newNoteCmd(opts *options) *cobra.Command {
	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "Work with daily notes",
	}

	addCmd := &cobra.Command{
		Use:   "add <entry>...",
		Short: "Append a line to today's daily note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := opts.journal()
			if err != nil {
				return err
			}
			if err := j.AppendToday(strings.Join(args, " ")); err != nil {
				return err
			}
			path := j.TodayPath()
			opts.recorder(cmd.ErrOrStderr()).Record(history.ActionNoteAppend, 0, "", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Appended to %s\n", path)
			return nil
		},
	}

	var date string
	openCmd := &cobra.Command{
		Use:   "open",
		Short: "Print the path to today's (or a specific date's) note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := opts.journal()
			if err != nil {
				return err
			}
			path, err := j.PathFor(date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	openCmd.Flags().StringVar(&date, "date", "", "ISO date (YYYY-MM-DD) to open")

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent daily notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := opts.journal()
			if err != nil {
				return err
			}
			paths, err := j.ListRecent(limit)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 5, "Number of recent notes to list")

	noteCmd.AddCommand(addCmd, openCmd, listCmd)
	return noteCmd
}
