// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the govrag CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "govrag",
		Short: "Provision AWS infrastructure for the document retrieval stack",
	}

	// Provisioning lifecycle
	cmd.AddCommand(Init())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Outputs())

	// Runtime and utility commands
	cmd.AddCommand(Serve())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
