package destroy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/policy"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
	kmsphase "github.com/AayushV4/gov-doc-rag/internal/provisioning/kms"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/registry"
)

const (
	// Window before a deleted secret or key is gone for good.
	recoveryWindowDays = 30

	deleteWaitTimeout = 30 * time.Minute
)

// Provisioner handles teardown.
type Provisioner struct {
	// ForceDeleteData additionally removes buckets, schedules key
	// deletion, and skips the secret recovery window.
	ForceDeleteData bool
}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner(forceDeleteData bool) *Provisioner {
	return &Provisioner{ForceDeleteData: forceDeleteData}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "destroy"
}

// Provision implements the provisioning.Phase interface. Steps run in
// reverse provisioning order; failures are collected, not fatal.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	var errs []error
	step := func(name string, fn func(*provisioning.Context) error) {
		if err := fn(ctx); err != nil {
			ctx.Observer.Printf("Teardown step %s failed: %v", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	step("budget", p.deleteBudget)
	step("secrets", p.deleteSecrets)
	step("logging", p.deleteLogGroups)
	step("identity", p.deleteRoles)
	step("cluster", p.deleteCluster)
	step("registry", p.deleteRepositories)
	if p.ForceDeleteData {
		step("storage", p.deleteBuckets)
		step("kms", p.scheduleKeyDeletion)
	} else {
		ctx.Observer.Printf("Retaining buckets and encryption keys (use --force-delete-data to remove)")
	}
	step("network", p.deleteNetwork)

	return errors.Join(errs...)
}

func (p *Provisioner) deleteBudget(ctx *provisioning.Context) error {
	_, err := ctx.AWS.Budgets.DeleteBudget(ctx, &budgets.DeleteBudgetInput{
		AccountId:  aws.String(ctx.State.AccountID),
		BudgetName: aws.String(naming.Budget(ctx.Config.Project)),
	})
	if err != nil && !awsplatform.IsNotFound(err) {
		return err
	}
	return nil
}

func (p *Provisioner) deleteSecrets(ctx *provisioning.Context) error {
	for _, name := range ctx.Config.SecretNames() {
		input := &secretsmanager.DeleteSecretInput{SecretId: aws.String(name)}
		if p.ForceDeleteData {
			input.ForceDeleteWithoutRecovery = aws.Bool(true)
		} else {
			input.RecoveryWindowInDays = aws.Int64(recoveryWindowDays)
		}
		if _, err := ctx.AWS.Secrets.DeleteSecret(ctx, input); err != nil && !awsplatform.IsNotFound(err) {
			return fmt.Errorf("secret %s: %w", name, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "secret", name)
	}
	return nil
}

func (p *Provisioner) deleteLogGroups(ctx *provisioning.Context) error {
	groups := []string{
		naming.LogGroup(ctx.Config.Project, string(policy.WorkloadIngestion)),
		naming.LogGroup(ctx.Config.Project, string(policy.WorkloadIndexing)),
		naming.LogGroup(ctx.Config.Project, string(policy.WorkloadQuery)),
		naming.LogGroup(ctx.Config.Project, "cluster/containers"),
		naming.LogGroup(ctx.Config.Project, "cluster/dataplane"),
	}
	for _, group := range groups {
		_, err := ctx.AWS.Logs.DeleteLogGroup(ctx, &cloudwatchlogs.DeleteLogGroupInput{
			LogGroupName: aws.String(group),
		})
		if err != nil && !awsplatform.IsNotFound(err) {
			return fmt.Errorf("log group %s: %w", group, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "log-group", group)
	}
	return nil
}

func (p *Provisioner) deleteRoles(ctx *provisioning.Context) error {
	names := []string{
		naming.ClusterRole(ctx.Config.Project),
		naming.NodeRole(ctx.Config.Project),
	}
	for _, w := range policy.RuntimeWorkloads() {
		names = append(names, naming.WorkloadRole(ctx.Config.Project, string(w)))
	}
	if ctx.Config.CI.Enabled {
		names = append(names, naming.WorkloadRole(ctx.Config.Project, string(policy.WorkloadCI)))
	}

	for _, name := range names {
		if err := p.deleteRole(ctx, name); err != nil {
			return fmt.Errorf("role %s: %w", name, err)
		}
	}
	return nil
}

// deleteRole strips inline policies and managed attachments before the role
// itself; IAM rejects deletion otherwise.
func (p *Provisioner) deleteRole(ctx *provisioning.Context, name string) error {
	inline, err := ctx.AWS.IAM.ListRolePolicies(ctx, &iam.ListRolePoliciesInput{RoleName: aws.String(name)})
	if err != nil {
		if awsplatform.IsNotFound(err) {
			return nil
		}
		return err
	}
	for _, policyName := range inline.PolicyNames {
		_, err := ctx.AWS.IAM.DeleteRolePolicy(ctx, &iam.DeleteRolePolicyInput{
			RoleName:   aws.String(name),
			PolicyName: aws.String(policyName),
		})
		if err != nil && !awsplatform.IsNotFound(err) {
			return err
		}
	}

	attached, err := ctx.AWS.IAM.ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{RoleName: aws.String(name)})
	if err != nil && !awsplatform.IsNotFound(err) {
		return err
	}
	if attached != nil {
		for _, ap := range attached.AttachedPolicies {
			_, err := ctx.AWS.IAM.DetachRolePolicy(ctx, &iam.DetachRolePolicyInput{
				RoleName:  aws.String(name),
				PolicyArn: ap.PolicyArn,
			})
			if err != nil && !awsplatform.IsNotFound(err) {
				return err
			}
		}
	}

	_, err = ctx.AWS.IAM.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: aws.String(name)})
	if err != nil && !awsplatform.IsNotFound(err) {
		return err
	}
	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "role", name)
	return nil
}

func (p *Provisioner) deleteCluster(ctx *provisioning.Context) error {
	cluster := ctx.Config.ClusterName()
	nodegroup := naming.NodeGroup(ctx.Config.Project)

	provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "nodegroup", nodegroup)
	_, err := ctx.AWS.EKS.DeleteNodegroup(ctx, &eks.DeleteNodegroupInput{
		ClusterName:   aws.String(cluster),
		NodegroupName: aws.String(nodegroup),
	})
	switch {
	case err == nil:
		waiter := eks.NewNodegroupDeletedWaiter(ctx.AWS.EKS)
		if err := waiter.Wait(ctx, &eks.DescribeNodegroupInput{
			ClusterName:   aws.String(cluster),
			NodegroupName: aws.String(nodegroup),
		}, deleteWaitTimeout); err != nil {
			return fmt.Errorf("waiting for nodegroup deletion: %w", err)
		}
	case awsplatform.IsNotFound(err):
	default:
		return fmt.Errorf("nodegroup %s: %w", nodegroup, err)
	}

	provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "cluster", cluster)
	_, err = ctx.AWS.EKS.DeleteCluster(ctx, &eks.DeleteClusterInput{Name: aws.String(cluster)})
	switch {
	case err == nil:
		waiter := eks.NewClusterDeletedWaiter(ctx.AWS.EKS)
		if err := waiter.Wait(ctx, &eks.DescribeClusterInput{Name: aws.String(cluster)}, deleteWaitTimeout); err != nil {
			return fmt.Errorf("waiting for cluster deletion: %w", err)
		}
	case awsplatform.IsNotFound(err):
		return nil
	default:
		return fmt.Errorf("cluster %s: %w", cluster, err)
	}

	return p.deleteOIDCProviders(ctx)
}

// deleteOIDCProviders removes the identity providers registered for this
// deployment: the cluster issuer and, when CI was enabled, GitHub's.
func (p *Provisioner) deleteOIDCProviders(ctx *provisioning.Context) error {
	providers, err := ctx.AWS.IAM.ListOpenIDConnectProviders(ctx, &iam.ListOpenIDConnectProvidersInput{})
	if err != nil {
		return err
	}
	for _, prov := range providers.OpenIDConnectProviderList {
		arn := aws.ToString(prov.Arn)
		cluster := strings.Contains(arn, "oidc.eks.") && ctx.State.OIDCProviderARN == arn
		github := ctx.Config.CI.Enabled && strings.HasSuffix(arn, "/"+policy.GitHubOIDCIssuer)
		if !cluster && !github {
			continue
		}
		_, err := ctx.AWS.IAM.DeleteOpenIDConnectProvider(ctx, &iam.DeleteOpenIDConnectProviderInput{
			OpenIDConnectProviderArn: aws.String(arn),
		})
		if err != nil && !awsplatform.IsNotFound(err) {
			return fmt.Errorf("oidc provider %s: %w", arn, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "oidc-provider", arn)
	}
	return nil
}

func (p *Provisioner) deleteRepositories(ctx *provisioning.Context) error {
	for _, service := range registry.Services {
		name := naming.Repository(ctx.Config.Project, service)
		_, err := ctx.AWS.ECR.DeleteRepository(ctx, &ecr.DeleteRepositoryInput{
			RepositoryName: aws.String(name),
			Force:          true,
		})
		if err != nil && !awsplatform.IsNotFound(err) {
			return fmt.Errorf("repository %s: %w", name, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "repository", name)
	}
	return nil
}

func (p *Provisioner) deleteBuckets(ctx *provisioning.Context) error {
	buckets := []string{
		ctx.Config.Buckets.Raw,
		ctx.Config.Buckets.Processed,
		ctx.Config.Buckets.Index,
	}
	for _, name := range buckets {
		_, err := ctx.AWS.S3.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(name)})
		if err != nil && !awsplatform.IsNotFound(err) {
			// Non-empty buckets are left for manual cleanup rather than
			// silently purging object versions.
			return fmt.Errorf("bucket %s: %w", name, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "bucket", name)
	}
	return nil
}

func (p *Provisioner) scheduleKeyDeletion(ctx *provisioning.Context) error {
	for _, purpose := range []string{kmsphase.PurposeStorage, kmsphase.PurposeSecrets, kmsphase.PurposeLogs} {
		alias := naming.KeyAlias(ctx.Config.Project, purpose)
		described, err := ctx.AWS.KMS.DescribeKey(ctx, &kms.DescribeKeyInput{KeyId: aws.String(alias)})
		if err != nil {
			if awsplatform.IsNotFound(err) {
				continue
			}
			return fmt.Errorf("key %s: %w", alias, err)
		}
		_, err = ctx.AWS.KMS.ScheduleKeyDeletion(ctx, &kms.ScheduleKeyDeletionInput{
			KeyId:               described.KeyMetadata.KeyId,
			PendingWindowInDays: aws.Int32(recoveryWindowDays),
		})
		if err != nil && !awsplatform.IsNotFound(err) {
			return fmt.Errorf("key %s: %w", alias, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "kms-key", alias)
	}
	return nil
}
