package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(deps commandDeps) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Example: "  mylists version\n" +
			"  mylists version --json",
		Args: noArgs("version"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(deps.out)
				enc.SetIndent("", "  ")
				return enc.Encode(deps.build)
			}
			_, err := fmt.Fprintf(deps.out, "version=%s commit=%s build_time=%s\n",
				deps.build.Version, deps.build.Commit, deps.build.BuildTime)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version as JSON")
	return cmd
}
