// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AayushV4/gov-doc-rag/internal/addons"
	"github.com/AayushV4/gov-doc-rag/internal/config"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/budget"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/cluster"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/endpoints"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/identity"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/kms"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/logging"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/network"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/registry"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/secrets"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/storage"
)

// OutputsFile is where apply writes the published contract.
const OutputsFile = "outputs.yaml"

// Factory function variables - can be replaced in tests for dependency
// injection.
var (
	// newAWSClients builds the SDK client bundle.
	newAWSClients = awsplatform.NewClients

	// newProvisioningContext creates a provisioning context.
	newProvisioningContext = provisioning.NewContext

	// runPhases executes the phase pipeline.
	runPhases = provisioning.RunPhases

	// applyPhases returns the provisioning phases in dependency order.
	applyPhases = func() []provisioning.Phase {
		return []provisioning.Phase{
			network.NewProvisioner(),
			kms.NewProvisioner(),
			storage.NewProvisioner(),
			registry.NewProvisioner(),
			cluster.NewProvisioner(),
			endpoints.NewProvisioner(),
			identity.NewProvisioner(),
			logging.NewProvisioner(),
			secrets.NewProvisioner(),
			budget.NewProvisioner(),
			addons.NewProvisioner(),
		}
	}

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// findConfigFile resolves the config path (for testing injection).
	findConfigFile = config.FindConfigFile
)

// Apply provisions the document stack end to end.
//
// The workflow:
//  1. Loads and validates the configuration
//  2. Builds AWS clients from the ambient credential chain
//  3. Resolves the account ID via STS unless pinned in config
//  4. Runs the provisioning phases in dependency order
//  5. Writes the published contract to outputs.yaml
//
// Re-running apply is safe: every phase detects existing resources and
// leaves them in place.
func Apply(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	if err := runPhases(pCtx, applyPhases()); err != nil {
		return err
	}

	if err := writeOutputs(pCtx); err != nil {
		return err
	}

	printApplySuccess(cfg)
	return nil
}

// loadConfig resolves and loads the configuration file.
func loadConfig(configPath string) (*config.Config, error) {
	path, err := findConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w\nRun 'govrag init' to create one", err)
	}
	return loadConfigFile(path)
}

// newContext builds the provisioning context with the account ID resolved.
func newContext(ctx context.Context, cfg *config.Config) (*provisioning.Context, error) {
	clients, err := newAWSClients(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}

	pCtx := newProvisioningContext(ctx, cfg, clients)

	accountID := cfg.AccountID
	if accountID == "" {
		accountID, err = clients.AccountID(ctx)
		if err != nil {
			return nil, err
		}
	}
	pCtx.State.AccountID = accountID

	return pCtx, nil
}

// writeOutputs serializes the published contract next to the config.
func writeOutputs(pCtx *provisioning.Context) error {
	outputs := pCtx.State.Outputs(pCtx.Config.Project, pCtx.Config.Region)
	data, err := yaml.Marshal(outputs)
	if err != nil {
		return fmt.Errorf("failed to marshal outputs: %w", err)
	}
	if err := writeFile(OutputsFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", OutputsFile, err)
	}
	return nil
}

// printApplySuccess outputs completion message and next steps.
func printApplySuccess(cfg *config.Config) {
	fmt.Printf("\nProvisioning complete!\n")
	fmt.Printf("Outputs saved to: %s\n", OutputsFile)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Point kubectl at the cluster:\n")
	fmt.Printf("     aws eks update-kubeconfig --name %s --region %s\n", cfg.ClusterName(), cfg.Region)
	fmt.Printf("  2. Replace the placeholder secrets under %s/ in Secrets Manager\n", cfg.Project)
	fmt.Printf("  3. Push images and deploy the workloads\n")
}
