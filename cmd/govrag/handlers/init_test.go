package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AayushV4/gov-doc-rag/internal/config"
)

func TestInit_WritesWizardResult(t *testing.T) {
	origExists, origWizard, origWrite := fileExists, runWizard, writeConfig
	t.Cleanup(func() {
		fileExists, runWizard, writeConfig = origExists, origWizard, origWrite
	})

	fileExists = func(string) bool { return false }
	runWizard = func(context.Context) (*config.WizardResult, error) {
		return &config.WizardResult{
			Project:      "gov-doc-rag",
			Region:       "ca-central-1",
			ZoneCount:    3,
			InstanceType: "m6i.large",
			BudgetUSD:    "250",
			Emails:       "ops@example.org, lead@example.org",
			CIEnabled:    true,
			CIRepository: "acme/gov-doc-rag",
		}, nil
	}

	var gotPath string
	var gotCfg *config.Config
	writeConfig = func(cfg *config.Config, path string) error {
		gotCfg, gotPath = cfg, path
		return nil
	}

	require.NoError(t, Init(context.Background(), "govrag.yaml"))

	assert.Equal(t, "govrag.yaml", gotPath)
	require.NotNil(t, gotCfg)
	assert.Equal(t, "gov-doc-rag", gotCfg.Project)
	assert.Equal(t, "ca-central-1", gotCfg.Region)
	assert.Equal(t, []string{"ca-central-1a", "ca-central-1b", "ca-central-1c"}, gotCfg.Network.Zones)
	assert.Equal(t, 250.0, gotCfg.Budget.MonthlyLimitUSD)
	assert.Equal(t, []string{"ops@example.org", "lead@example.org"}, gotCfg.Budget.Emails)
	assert.True(t, gotCfg.CI.Enabled)
	assert.Equal(t, "acme/gov-doc-rag", gotCfg.CI.Repository)
}
