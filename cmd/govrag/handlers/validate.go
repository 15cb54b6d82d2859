package handlers

import "fmt"

// Validate loads a configuration file and reports whether it passes every
// check, without calling AWS.
func Validate(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	fmt.Printf("Configuration valid.\n")
	fmt.Printf("  Project: %s\n", cfg.Project)
	fmt.Printf("  Region:  %s\n", cfg.Region)
	fmt.Printf("  Zones:   %d\n", len(cfg.Network.Zones))
	fmt.Printf("  Buckets: %s, %s, %s\n", cfg.Buckets.Raw, cfg.Buckets.Processed, cfg.Buckets.Index)
	return nil
}
