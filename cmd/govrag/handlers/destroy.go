package handlers

import (
	"context"
	"fmt"

	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/destroy"
)

// Factory function variables for destroy - can be replaced in tests.
var newDestroyProvisioner = func(forceDeleteData bool) provisioning.Phase {
	return destroy.NewProvisioner(forceDeleteData)
}

// Destroy handles the destroy command.
//
// It loads the configuration and tears down the provisioned resources in
// reverse dependency order. Buckets, keys, and secret recovery windows
// survive unless forceDeleteData is set.
func Destroy(ctx context.Context, configPath string, forceDeleteData bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	destroyer := newDestroyProvisioner(forceDeleteData)
	if err := destroyer.Provision(pCtx); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	fmt.Printf("\nProject %s destroyed.\n", cfg.Project)
	if !forceDeleteData {
		fmt.Printf("Buckets and encryption keys were retained; secrets keep a 30-day recovery window.\n")
		fmt.Printf("Re-run with --force-delete-data to remove them.\n")
	}
	return nil
}
