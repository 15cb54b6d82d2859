package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardResult_ToConfig(t *testing.T) {
	result := &WizardResult{
		Project:      "gov-doc-rag",
		Region:       "eu-west-1",
		ZoneCount:    3,
		InstanceType: "m6i.xlarge",
		BudgetUSD:    "150",
		Emails:       "a@example.org,, b@example.org ",
		CIEnabled:    true,
		CIRepository: " acme/gov-doc-rag",
	}

	cfg := result.ToConfig()

	assert.Equal(t, "gov-doc-rag", cfg.Project)
	assert.Equal(t, []string{"eu-west-1a", "eu-west-1b", "eu-west-1c"}, cfg.Network.Zones)
	assert.Equal(t, []string{"m6i.xlarge"}, cfg.Cluster.InstanceTypes)
	assert.Equal(t, 150.0, cfg.Budget.MonthlyLimitUSD)
	assert.Equal(t, []string{"a@example.org", "b@example.org"}, cfg.Budget.Emails)
	assert.True(t, cfg.CI.Enabled)
	assert.Equal(t, "acme/gov-doc-rag", cfg.CI.Repository)

	// The result must survive the normal load pipeline.
	require.NoError(t, cfg.ApplyDefaults())
	require.NoError(t, cfg.Validate())
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"gov-doc-rag", false},
		{"a1", false},
		{"", true},
		{"-leading", true},
		{"trailing-", true},
		{"Upper", true},
		{"under_score", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProjectName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBudget(t *testing.T) {
	assert.NoError(t, validateBudget(""))
	assert.NoError(t, validateBudget("250"))
	assert.NoError(t, validateBudget("99.50"))
	assert.Error(t, validateBudget("-5"))
	assert.Error(t, validateBudget("abc"))
}
