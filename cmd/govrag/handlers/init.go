package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/AayushV4/gov-doc-rag/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the configuration wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.WriteYAML
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := result.ToConfig()
	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("govrag - document stack provisioning")
	fmt.Println("====================================")
	fmt.Println()
	fmt.Println("This wizard creates a configuration with sensible defaults.")
	fmt.Println("Everything it does not ask for can be edited in the YAML afterwards.")
	fmt.Println()
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Stack Summary")
	fmt.Println("-------------")
	fmt.Printf("  Project:  %s\n", cfg.Project)
	fmt.Printf("  Region:   %s\n", cfg.Region)
	fmt.Printf("  Zones:    %d\n", len(cfg.Network.Zones))
	if cfg.Budget.MonthlyLimitUSD > 0 {
		fmt.Printf("  Budget:   %.0f USD/month\n", cfg.Budget.MonthlyLimitUSD)
	}
	if cfg.CI.Enabled {
		fmt.Printf("  CI:       %s\n", cfg.CI.Repository)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Configure AWS credentials (environment or shared config)")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Provision the stack:")
	fmt.Println("     govrag apply")
	fmt.Println()
}
