package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type versionInfo struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	GitCommit      string `json:"git_commit,omitempty"`
	BuildTimestamp string `json:"build_timestamp,omitempty"`
}

func newVersionCmd(opts *options) *cobra.Command {
	var asJSON, verbose bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versionInfo{
				Name:           "obsctl",
				Version:        opts.build.Version,
				GitCommit:      opts.build.Commit,
				BuildTimestamp: opts.build.BuildTime,
			}
			out := cmd.OutOrStdout()

			if asJSON {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "%s %s\n", info.Name, info.Version)
			if verbose {
				if info.GitCommit != "" {
					fmt.Fprintf(out, "commit: %s\n", info.GitCommit)
				}
				if info.BuildTimestamp != "" {
					fmt.Fprintf(out, "built: %s\n", info.BuildTimestamp)
				}
			}
			return nil
		},
	}

	versionCmd.Flags().BoolVar(&asJSON, "json", false, "Output version information as JSON")
	versionCmd.Flags().BoolVar(&verbose, "verbose", false, "Show commit and build time when available")
	return versionCmd
}
