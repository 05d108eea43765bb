package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/mealfinder/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "mealfinder %s (commit %s, built %s)\n",
				ver, version.GetGitCommit(), version.GetBuildDate()); err != nil {
				return err
			}
			if version.IsPrerelease() {
				_, err := fmt.Fprintln(out, "prerelease build")
				return err
			}
			return nil
		},
	}
}
