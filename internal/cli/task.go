package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JamesPrial/obsctl/internal/history"
	"github.com/JamesPrial/obsctl/internal/vault"
)

func newTaskCmd(opts *options) *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Work with the task ledger",
	}

	var (
		due      string
		repeat   string
		priority priorityValue
	)
	addCmd := &cobra.Command{
		Use:   "add <title>...",
		Short: "Add a new task to the vault",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if due != "" {
				if _, err := time.Parse(vault.DateLayout, due); err != nil {
					return fmt.Errorf("%w: %q (want YYYY-MM-DD)", vault.ErrInvalidDate, due)
				}
			}
			l, err := opts.ledger()
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")
			id, err := l.Add(vault.NewTask{
				Title:      title,
				DueDate:    due,
				Recurrence: repeat,
				Priority:   priority.p,
			})
			if err != nil {
				return err
			}
			opts.recorder(cmd.ErrOrStderr()).Record(history.ActionTaskAdd, id, title, l.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "Added task #%d\n", id)
			return nil
		},
	}
	addCmd.Flags().StringVar(&due, "due", "", "Due date in YYYY-MM-DD format")
	addCmd.Flags().StringVar(&repeat, "repeat", "", "Recurrence (e.g. weekly)")
	addCmd.Flags().Var(&priority, "priority", "Priority marker (low, medium, high)")

	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark an existing task as complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setStatus(cmd, opts, args[0], true)
		},
	}

	reopenCmd := &cobra.Command{
		Use:   "reopen <id>",
		Short: "Mark a completed task as open again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setStatus(cmd, opts, args[0], false)
		},
	}

	var status statusValue
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := opts.ledger()
			if err != nil {
				return err
			}
			lines, err := l.List(status.f)
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	listCmd.Flags().Var(&status, "status", "Filter tasks by completion status")

	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove completed tasks from the task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := opts.ledger()
			if err != nil {
				return err
			}
			n, err := l.Purge()
			if err != nil {
				return err
			}
			if n > 0 {
				opts.recorder(cmd.ErrOrStderr()).Record(history.ActionTaskClean, 0, "", l.Path())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d completed task(s)\n", n)
			return nil
		},
	}

	taskCmd.AddCommand(addCmd, doneCmd, reopenCmd, listCmd, cleanCmd)
	return taskCmd
}

func setStatus(cmd *cobra.Command, opts *options, arg string, done bool) error {
	id, err := strconv.ParseUint(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("invalid task id %q", arg)
	}
	l, err := opts.ledger()
	if err != nil {
		return err
	}

	action, state := history.ActionTaskDone, "done"
	if done {
		err = l.Complete(id)
	} else {
		action, state = history.ActionTaskReopen, "open"
		err = l.Reopen(id)
	}
	if err != nil {
		return err
	}

	opts.recorder(cmd.ErrOrStderr()).Record(action, id, "", l.Path())
	fmt.Fprintf(cmd.OutOrStdout(), "Marked task #%d as %s\n", id, state)
	return nil
}
