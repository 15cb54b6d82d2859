package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	Project      string
	Region       string
	ZoneCount    int
	InstanceType string
	BudgetUSD    string
	Emails       string
	CIEnabled    bool
	CIRepository string
}

// RunWizard collects the minimal configuration interactively. Everything it
// does not ask for is filled by ApplyDefaults.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Region:       DefaultRegion,
		ZoneCount:    2,
		InstanceType: DefaultInstanceTypes[0],
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Prefix for every provisioned resource (DNS-safe, lowercase)").
				Placeholder("gov-doc-rag").
				Value(&result.Project).
				Validate(validateProjectName),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Description("AWS region to provision into").
				Options(
					huh.NewOption("US East (us-east-1)", "us-east-1"),
					huh.NewOption("US West (us-west-2)", "us-west-2"),
					huh.NewOption("Canada (ca-central-1)", "ca-central-1"),
					huh.NewOption("Europe (eu-west-1)", "eu-west-1"),
				).
				Value(&result.Region),

			huh.NewSelect[int]().
				Title("Availability zones").
				Description("Each zone gets a public and a private subnet plus a NAT gateway").
				Options(
					huh.NewOption("2 zones", 2),
					huh.NewOption("3 zones", 3),
				).
				Value(&result.ZoneCount),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Node instance type").
				Description("Instance type for the cluster's managed node group").
				Options(
					huh.NewOption("m6i.large - 2 vCPU, 8GB", "m6i.large"),
					huh.NewOption("m6i.xlarge - 4 vCPU, 16GB", "m6i.xlarge"),
					huh.NewOption("c6i.xlarge - 4 vCPU, 8GB", "c6i.xlarge"),
				).
				Value(&result.InstanceType),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Monthly budget in USD (optional)").
				Description("A cost budget with an email alert. Leave empty to skip.").
				Placeholder("250").
				Value(&result.BudgetUSD).
				Validate(validateBudget),

			huh.NewInput().
				Title("Alert emails").
				Description("Comma-separated recipients for budget alerts").
				Placeholder("ops@example.org").
				Value(&result.Emails),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Provision a CI deploy identity?").
				Description("Creates a role trusted by GitHub's OIDC issuer for one repository").
				Value(&result.CIEnabled),

			huh.NewInput().
				Title("GitHub repository").
				Description("owner/name, only used when CI identity is enabled").
				Placeholder("acme/gov-doc-rag").
				Value(&result.CIRepository),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// ToConfig converts the wizard result into a Config. Defaults are not yet
// applied; callers run the result through Load-style processing.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Project: r.Project,
		Region:  r.Region,
	}

	for i := 0; i < r.ZoneCount; i++ {
		cfg.Network.Zones = append(cfg.Network.Zones, r.Region+string(rune('a'+i)))
	}
	cfg.Cluster.InstanceTypes = []string{r.InstanceType}

	if r.BudgetUSD != "" {
		cfg.Budget.MonthlyLimitUSD, _ = strconv.ParseFloat(r.BudgetUSD, 64)
	}
	for _, email := range strings.Split(r.Emails, ",") {
		if email = strings.TrimSpace(email); email != "" {
			cfg.Budget.Emails = append(cfg.Budget.Emails, email)
		}
	}

	if r.CIEnabled {
		cfg.CI = CIConfig{Enabled: true, Repository: strings.TrimSpace(r.CIRepository)}
	}

	return cfg
}

// WriteYAML writes the configuration to a file, creating or truncating it.
func WriteYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func validateProjectName(s string) error {
	if s == "" {
		return fmt.Errorf("project name is required")
	}
	if len(s) > 40 {
		return fmt.Errorf("project name must be 40 characters or less")
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return fmt.Errorf("project name can only contain lowercase letters, numbers, and hyphens")
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return fmt.Errorf("project name cannot start or end with a hyphen")
	}
	return nil
}

func validateBudget(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("budget must be a non-negative number")
	}
	return nil
}
