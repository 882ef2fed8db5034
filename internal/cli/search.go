package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(opts *options) *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search the vault",
	}

	grepCmd := &cobra.Command{
		Use:   "grep <query>...",
		Short: "Run a literal/regex search using ripgrep",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.searcher()
			if err != nil {
				return err
			}
			return s.Grep(cmd.Context(), strings.Join(args, " "), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	fzfCmd := &cobra.Command{
		Use:   "fzf <query>...",
		Short: "Fuzzy-find note paths using fzf",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.searcher()
			if err != nil {
				return err
			}
			return s.Fuzzy(cmd.Context(), strings.Join(args, " "), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	searchCmd.AddCommand(grepCmd, fzfCmd)
	return searchCmd
}
