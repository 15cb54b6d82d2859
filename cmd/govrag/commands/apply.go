package commands

import (
	"github.com/spf13/cobra"

	"github.com/AayushV4/gov-doc-rag/cmd/govrag/handlers"
)

// Apply returns the command that provisions the full stack.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: govrag.yaml)
//
// AWS credentials come from the ambient chain (environment, shared config,
// instance metadata).
func Apply() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the infrastructure",
		Long: `Create or update the document stack's AWS infrastructure.

Phases run in dependency order: network, encryption keys, buckets, image
registry, EKS cluster, VPC endpoints, workload identities, log groups,
secrets, budget, and the ingress controller. Re-running apply is safe;
existing resources are detected and left in place.

On success the published contract is written to outputs.yaml.

Examples:
  # Provision using govrag.yaml in the current directory
  govrag apply

  # Provision using a specific config file
  govrag apply -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: govrag.yaml)")

	return cmd
}
