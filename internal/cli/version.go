package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/rshade/breakeven/pkg/version"
)

// NewVersionCmd creates the "version" command.
func NewVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
			}
			cmd.Printf("breakeven %s (commit %s, built %s)\n", info.Version, info.GitCommit, info.BuildDate)
			if !version.IsRelease() {
				cmd.Println("development build")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
