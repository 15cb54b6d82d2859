package commands

import (
	"github.com/spf13/cobra"

	"github.com/AayushV4/gov-doc-rag/cmd/govrag/handlers"
)

// Outputs returns the command that pretty-prints the published contract
// written by apply.
func Outputs() *cobra.Command {
	var outputsPath string

	cmd := &cobra.Command{
		Use:   "outputs",
		Short: "Show the outputs of the last apply",
		Long: `Outputs reads outputs.yaml and renders the published contract: cluster
endpoint, bucket names, registry URLs, role ARNs, log groups, and key ARNs.

Example:
  govrag outputs`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Outputs(outputsPath)
		},
	}

	cmd.Flags().StringVarP(&outputsPath, "file", "f", "outputs.yaml", "Path to the outputs file")

	return cmd
}
