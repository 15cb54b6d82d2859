package addons

import (
	"context"
	"fmt"

	"github.com/AayushV4/gov-doc-rag/internal/addons/helm"
	"github.com/AayushV4/gov-doc-rag/internal/addons/k8sclient"
	"github.com/AayushV4/gov-doc-rag/internal/policy"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

const (
	defaultChartRepository = "https://aws.github.io/eks-charts"
	defaultChartName       = "aws-load-balancer-controller"
	defaultChartVersion    = "1.8.2"

	releaseName    = "aws-load-balancer-controller"
	roleAnnotation = "eks.amazonaws.com/role-arn"
)

// helmInstaller is the slice of the helm client the ingress phase uses.
type helmInstaller interface {
	InstallOrUpgrade(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) error
}

// Swappable constructors for tests.
var (
	newHelmClient = func(kubeconfig []byte, namespace string) (helmInstaller, error) {
		return helm.NewClient(kubeconfig, namespace)
	}
	newKubeClient = func(kubeconfig []byte) (k8sclient.Client, error) {
		return k8sclient.NewFromKubeconfig(kubeconfig)
	}
)

// Provisioner installs the load balancer controller chart into kube-system.
type Provisioner struct{}

// NewProvisioner creates the ingress addon provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name returns the phase name.
func (p *Provisioner) Name() string {
	return "ingress"
}

// Provision binds the controller's service account to the ingress-controller
// role and converges the Helm release.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	roleARN := ctx.State.RoleARNs[string(policy.WorkloadIngressController)]
	switch {
	case ctx.State.ClusterEndpoint == "" || ctx.State.ClusterCA == "":
		return fmt.Errorf("cluster not provisioned")
	case ctx.State.VPCID == "":
		return fmt.Errorf("network not provisioned")
	case roleARN == "":
		return fmt.Errorf("ingress-controller role not provisioned")
	}

	kubeconfig, err := Kubeconfig(ctx.Config.ClusterName(), ctx.Config.Region, ctx.State.ClusterEndpoint, ctx.State.ClusterCA)
	if err != nil {
		return err
	}

	namespace, accountName := policy.WorkloadIngressController.ServiceAccount()

	// Step 1: service account with the IRSA role binding.
	kube, err := newKubeClient(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	err = kube.EnsureServiceAccount(ctx, namespace, accountName, map[string]string{
		roleAnnotation: roleARN,
	})
	if err != nil {
		return err
	}
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "service-account", namespace+"/"+accountName, roleARN)

	// Step 2: the controller chart, reusing that service account.
	helmClient, err := newHelmClient(kubeconfig, namespace)
	if err != nil {
		return fmt.Errorf("failed to create helm client: %w", err)
	}

	chart := ctx.Config.Ingress.Chart
	repository := chart.Repository
	if repository == "" {
		repository = defaultChartRepository
	}
	chartName := chart.Chart
	if chartName == "" {
		chartName = defaultChartName
	}
	version := chart.Version
	if version == "" {
		version = defaultChartVersion
	}

	values := map[string]interface{}{
		"clusterName": ctx.Config.ClusterName(),
		"region":      ctx.Config.Region,
		"vpcId":       ctx.State.VPCID,
		"serviceAccount": map[string]interface{}{
			"create": false,
			"name":   accountName,
		},
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "helm-release", releaseName)
	if err := helmClient.InstallOrUpgrade(ctx, releaseName, repository, chartName, version, values); err != nil {
		return fmt.Errorf("failed to install %s: %w", releaseName, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "helm-release", releaseName, version)

	return nil
}
