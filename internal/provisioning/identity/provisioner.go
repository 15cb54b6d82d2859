package identity

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/policy"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/kms"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/storage"
)

// inlinePolicyName is the name of the single inline policy each workload
// role carries.
const inlinePolicyName = "permissions"

// fetchThumbprint is swappable for tests.
var fetchThumbprint = awsplatform.Thumbprint

// Provisioner handles the workload and CI roles.
type Provisioner struct{}

// NewProvisioner creates a new identity provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "identity"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	scope := p.scope(ctx)

	for _, workload := range policy.RuntimeWorkloads() {
		trust, err := p.workloadTrust(ctx, workload)
		if err != nil {
			return err
		}
		if err := p.ensureRole(ctx, workload, scope, trust); err != nil {
			return err
		}
	}

	if ctx.Config.CI.Enabled {
		return p.provisionCIRole(ctx, scope)
	}
	return nil
}

func (p *Provisioner) scope(ctx *provisioning.Context) policy.Scope {
	return policy.Scope{
		AccountID:       ctx.State.AccountID,
		Region:          ctx.AWS.Region,
		Project:         ctx.Config.Project,
		RawBucket:       ctx.State.Buckets[storage.BucketRaw],
		ProcessedBucket: ctx.State.Buckets[storage.BucketProcessed],
		IndexBucket:     ctx.State.Buckets[storage.BucketIndex],
		StorageKeyARN:   ctx.State.KeyARNs[kms.PurposeStorage],
	}
}

func (p *Provisioner) workloadTrust(ctx *provisioning.Context, workload policy.Workload) (policy.Document, error) {
	if ctx.State.OIDCProviderARN == "" {
		return policy.Document{}, fmt.Errorf("cluster OIDC provider not provisioned")
	}
	issuerHost := strings.TrimPrefix(ctx.State.OIDCIssuer, "https://")

	namespace, serviceAccount := workload.ServiceAccount()
	if namespace == "" {
		namespace = ctx.Config.Cluster.Namespace
	}
	return policy.OIDCTrust(ctx.State.OIDCProviderARN, issuerHost, namespace, serviceAccount), nil
}

func (p *Provisioner) ensureRole(ctx *provisioning.Context, workload policy.Workload, scope policy.Scope, trust policy.Document) error {
	name := naming.WorkloadRole(ctx.Config.Project, string(workload))

	trustJSON, err := trust.JSON()
	if err != nil {
		return err
	}

	var roleARN string
	existing, err := ctx.AWS.IAM.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(name)})
	switch {
	case err == nil:
		roleARN = aws.ToString(existing.Role.Arn)
		// Converge the trust policy: the OIDC provider ARN changes when
		// the cluster is rebuilt.
		_, err = ctx.AWS.IAM.UpdateAssumeRolePolicy(ctx, &iam.UpdateAssumeRolePolicyInput{
			RoleName:       aws.String(name),
			PolicyDocument: aws.String(trustJSON),
		})
		if err != nil {
			return fmt.Errorf("failed to update trust policy for %s: %w", name, err)
		}
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "role", name, roleARN)
	case awsplatform.IsNotFound(err):
		provisioning.LogResourceCreating(ctx.Observer, p.Name(), "role", name)
		created, err := ctx.AWS.IAM.CreateRole(ctx, &iam.CreateRoleInput{
			RoleName:                 aws.String(name),
			AssumeRolePolicyDocument: aws.String(trustJSON),
		})
		if err != nil {
			return fmt.Errorf("failed to create role %s: %w", name, err)
		}
		roleARN = aws.ToString(created.Role.Arn)
		provisioning.LogResourceCreated(ctx.Observer, p.Name(), "role", name, roleARN)
	default:
		return fmt.Errorf("failed to get role %s: %w", name, err)
	}

	doc, err := policy.ForWorkload(workload, scope)
	if err != nil {
		return err
	}
	docJSON, err := doc.JSON()
	if err != nil {
		return err
	}

	_, err = ctx.AWS.IAM.PutRolePolicy(ctx, &iam.PutRolePolicyInput{
		RoleName:       aws.String(name),
		PolicyName:     aws.String(inlinePolicyName),
		PolicyDocument: aws.String(docJSON),
	})
	if err != nil {
		return fmt.Errorf("failed to put policy on %s: %w", name, err)
	}

	ctx.State.RoleARNs[string(workload)] = roleARN
	return nil
}

// provisionCIRole registers GitHub's OIDC issuer (once per account) and
// creates the deploy role trusting one repository.
func (p *Provisioner) provisionCIRole(ctx *provisioning.Context, scope policy.Scope) error {
	owner, repo, ok := ctx.Config.CI.RepositoryOwnerName()
	if !ok {
		return fmt.Errorf("ci.repository must be owner/name, got %q", ctx.Config.CI.Repository)
	}

	providerARN := naming.OIDCProviderARN(ctx.State.AccountID, policy.GitHubOIDCIssuer)
	if err := p.ensureGitHubProvider(ctx, providerARN); err != nil {
		return err
	}

	trust := policy.GitHubTrust(providerARN, owner, repo)
	return p.ensureRole(ctx, policy.WorkloadCI, scope, trust)
}

func (p *Provisioner) ensureGitHubProvider(ctx *provisioning.Context, providerARN string) error {
	existing, err := ctx.AWS.IAM.ListOpenIDConnectProviders(ctx, &iam.ListOpenIDConnectProvidersInput{})
	if err != nil {
		return fmt.Errorf("failed to list OIDC providers: %w", err)
	}
	for _, prov := range existing.OpenIDConnectProviderList {
		if aws.ToString(prov.Arn) == providerARN {
			provisioning.LogResourceExists(ctx.Observer, p.Name(), "oidc-provider", policy.GitHubOIDCIssuer, providerARN)
			return nil
		}
	}

	thumbprint, err := fetchThumbprint(ctx, "https://"+policy.GitHubOIDCIssuer)
	if err != nil {
		return fmt.Errorf("failed to compute GitHub issuer thumbprint: %w", err)
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "oidc-provider", policy.GitHubOIDCIssuer)
	_, err = ctx.AWS.IAM.CreateOpenIDConnectProvider(ctx, &iam.CreateOpenIDConnectProviderInput{
		Url:            aws.String("https://" + policy.GitHubOIDCIssuer),
		ClientIDList:   []string{policy.STSAudience},
		ThumbprintList: []string{thumbprint},
	})
	if err != nil && !awsplatform.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create GitHub OIDC provider: %w", err)
	}
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "oidc-provider", policy.GitHubOIDCIssuer, providerARN)
	return nil
}
