package helm

import (
	"context"
	"fmt"
	"os"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/repo"
)

const installTimeout = 10 * time.Minute

// Client runs Helm install and upgrade actions against a single namespace.
type Client struct {
	namespace    string
	actionConfig *action.Configuration
}

// NewClient creates a Helm client from kubeconfig bytes. Release metadata is
// stored in Secrets, matching the helm CLI's default.
func NewClient(kubeconfig []byte, namespace string) (*Client, error) {
	actionConfig := new(action.Configuration)
	restGetter := NewInMemoryRESTClientGetter(kubeconfig, namespace)

	// Helm's debug logging goes nowhere; provisioning output is the
	// observer's job.
	if err := actionConfig.Init(restGetter, namespace, "secret", func(string, ...interface{}) {}); err != nil {
		return nil, fmt.Errorf("failed to initialize helm action config: %w", err)
	}

	return &Client{namespace: namespace, actionConfig: actionConfig}, nil
}

// InstallOrUpgrade converges a release to the given chart and values:
// install when the release does not exist, upgrade otherwise. The call
// blocks until the release's resources are ready or the timeout passes.
func (c *Client) InstallOrUpgrade(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) error {
	exists, err := c.ReleaseExists(releaseName)
	if err != nil {
		return err
	}

	chrt, err := c.loadChart(repoURL, chartName, version)
	if err != nil {
		return fmt.Errorf("failed to load chart %s: %w", chartName, err)
	}

	if !exists {
		install := action.NewInstall(c.actionConfig)
		install.ReleaseName = releaseName
		install.Namespace = c.namespace
		install.CreateNamespace = true
		install.Version = version
		install.Wait = true
		install.Timeout = installTimeout

		_, err = install.RunWithContext(ctx, chrt, values)
		return err
	}

	upgrade := action.NewUpgrade(c.actionConfig)
	upgrade.Namespace = c.namespace
	upgrade.Version = version
	upgrade.Wait = true
	upgrade.Timeout = installTimeout
	upgrade.ReuseValues = false

	_, err = upgrade.RunWithContext(ctx, releaseName, chrt, values)
	return err
}

// Uninstall removes a release and waits for its resources to go away.
func (c *Client) Uninstall(releaseName string) error {
	uninstall := action.NewUninstall(c.actionConfig)
	uninstall.Wait = true
	uninstall.Timeout = 5 * time.Minute

	_, err := uninstall.Run(releaseName)
	return err
}

// ReleaseExists reports whether a release has any history in the namespace.
func (c *Client) ReleaseExists(releaseName string) (bool, error) {
	hist := action.NewHistory(c.actionConfig)
	hist.Max = 1
	if _, err := hist.Run(releaseName); err != nil {
		return false, nil
	}
	return true, nil
}

// loadChart resolves a chart from an HTTP repository, downloads it to a
// temporary file, and loads it. The download is removed after loading.
func (c *Client) loadChart(repoURL, chartName, version string) (*chart.Chart, error) {
	settings := cli.New()

	chartPath, err := repo.FindChartInRepoURL(
		repoURL,
		chartName,
		version,
		"", "", "",
		getter.All(settings),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find chart %s in repo %s: %w", chartName, repoURL, err)
	}
	defer func() {
		_ = os.Remove(chartPath)
	}()

	return loader.Load(chartPath)
}
