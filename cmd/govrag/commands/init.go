package commands

import (
	"github.com/spf13/cobra"

	"github.com/AayushV4/gov-doc-rag/cmd/govrag/handlers"
)

// Init returns the command that creates a configuration file interactively.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Init walks through a short wizard and writes a configuration file.

Everything the wizard does not ask for gets a sensible default and can be
edited in the generated YAML afterwards.

Example:
  govrag init
  govrag init -o production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "govrag.yaml", "Path for the generated configuration")

	return cmd
}
