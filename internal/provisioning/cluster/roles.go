package cluster

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/policy"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

// AWS-managed policies attached to the service roles.
var (
	clusterManagedPolicies = []string{
		"arn:aws:iam::aws:policy/AmazonEKSClusterPolicy",
	}
	nodeManagedPolicies = []string{
		"arn:aws:iam::aws:policy/AmazonEKSWorkerNodePolicy",
		"arn:aws:iam::aws:policy/AmazonEKS_CNI_Policy",
		"arn:aws:iam::aws:policy/AmazonEC2ContainerRegistryReadOnly",
	}
)

// provisionServiceRoles ensures the control plane and node service roles
// with their AWS-managed policy attachments.
func (p *Provisioner) provisionServiceRoles(ctx *provisioning.Context) (clusterRoleARN, nodeRoleARN string, err error) {
	clusterRoleARN, err = p.ensureServiceRole(ctx,
		naming.ClusterRole(ctx.Config.Project), "eks.amazonaws.com", clusterManagedPolicies)
	if err != nil {
		return "", "", err
	}

	nodeRoleARN, err = p.ensureServiceRole(ctx,
		naming.NodeRole(ctx.Config.Project), "ec2.amazonaws.com", nodeManagedPolicies)
	if err != nil {
		return "", "", err
	}

	return clusterRoleARN, nodeRoleARN, nil
}

func (p *Provisioner) ensureServiceRole(ctx *provisioning.Context, name, service string, managedPolicies []string) (string, error) {
	existing, err := ctx.AWS.IAM.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(name)})
	if err == nil {
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "role", name, aws.ToString(existing.Role.Arn))
		return aws.ToString(existing.Role.Arn), nil
	}
	if !awsplatform.IsNotFound(err) {
		return "", fmt.Errorf("failed to get role %s: %w", name, err)
	}

	trustJSON, err := policy.ServiceTrust(service).JSON()
	if err != nil {
		return "", err
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "role", name)
	created, err := ctx.AWS.IAM.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(name),
		AssumeRolePolicyDocument: aws.String(trustJSON),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create role %s: %w", name, err)
	}

	for _, policyARN := range managedPolicies {
		_, err := ctx.AWS.IAM.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
			RoleName:  aws.String(name),
			PolicyArn: aws.String(policyARN),
		})
		if err != nil && !awsplatform.IsAlreadyExists(err) {
			return "", fmt.Errorf("failed to attach %s to %s: %w", policyARN, name, err)
		}
	}

	arn := aws.ToString(created.Role.Arn)
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "role", name, arn)
	return arn, nil
}
