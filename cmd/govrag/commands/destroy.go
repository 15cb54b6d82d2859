package commands

import (
	"github.com/spf13/cobra"

	"github.com/AayushV4/gov-doc-rag/cmd/govrag/handlers"
)

// Destroy returns the destroy command.
//
// Destroy removes provisioned resources in reverse dependency order. Data
// stores survive by default: buckets and encryption keys are retained and
// secrets keep a 30-day recovery window unless --force-delete-data is set.
func Destroy() *cobra.Command {
	var (
		configPath      string
		forceDeleteData bool
	)

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the provisioned infrastructure",
		Long: `Destroy removes the document stack's AWS resources.

Resources are deleted in reverse dependency order: budget, secrets, log
groups, roles, the cluster and node group, image repositories, and the
network fabric. Teardown is best-effort; failed steps are reported and the
rest continue.

By default the data stores survive:
  - S3 buckets and their contents are retained
  - KMS keys are retained
  - Secrets are deleted with a 30-day recovery window

With --force-delete-data, buckets are deleted, keys are scheduled for
deletion, and secrets are removed without a recovery window.

Example:
  govrag destroy -c govrag.yaml

WARNING: with --force-delete-data this operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath, forceDeleteData)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (required)")
	cmd.Flags().BoolVar(&forceDeleteData, "force-delete-data", false, "Also delete buckets, keys, and secrets")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
