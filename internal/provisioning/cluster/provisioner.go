package cluster

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

// Control plane and node group creation each take well over ten minutes.
const (
	clusterWaitTimeout   = 30 * time.Minute
	nodegroupWaitTimeout = 30 * time.Minute
)

// Provisioner handles the EKS control plane, node group, and OIDC provider.
type Provisioner struct{}

// NewProvisioner creates a new cluster provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "cluster"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	clusterRoleARN, nodeRoleARN, err := p.provisionServiceRoles(ctx)
	if err != nil {
		return err
	}

	if err := p.ensureCluster(ctx, clusterRoleARN); err != nil {
		return err
	}

	if err := p.ensureNodeGroup(ctx, nodeRoleARN); err != nil {
		return err
	}

	return p.ensureOIDCProvider(ctx)
}

func (p *Provisioner) ensureCluster(ctx *provisioning.Context, roleARN string) error {
	name := ctx.Config.ClusterName()

	_, err := ctx.AWS.EKS.DescribeCluster(ctx, &eks.DescribeClusterInput{Name: aws.String(name)})
	switch {
	case err == nil:
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "cluster", name, name)
	case awsplatform.IsNotFound(err):
		provisioning.LogResourceCreating(ctx.Observer, p.Name(), "cluster", name)
		_, err = ctx.AWS.EKS.CreateCluster(ctx, &eks.CreateClusterInput{
			Name:    aws.String(name),
			Version: aws.String(ctx.Config.Cluster.Version),
			RoleArn: aws.String(roleARN),
			ResourcesVpcConfig: &ekstypes.VpcConfigRequest{
				SubnetIds: ctx.State.PrivateSubnetIDs,
			},
			Logging: &ekstypes.Logging{
				ClusterLogging: []ekstypes.LogSetup{{
					Enabled: aws.Bool(true),
					Types: []ekstypes.LogType{
						ekstypes.LogTypeApi,
						ekstypes.LogTypeAudit,
						ekstypes.LogTypeAuthenticator,
					},
				}},
			},
			Tags: map[string]string{"project": ctx.Config.Project},
		})
		if err != nil {
			return fmt.Errorf("failed to create cluster %s: %w", name, err)
		}
	default:
		return fmt.Errorf("failed to describe cluster %s: %w", name, err)
	}

	ctx.Observer.Printf("Waiting for cluster %s to become active...", name)
	waiter := eks.NewClusterActiveWaiter(ctx.AWS.EKS)
	if err := waiter.Wait(ctx, &eks.DescribeClusterInput{Name: aws.String(name)}, clusterWaitTimeout); err != nil {
		return fmt.Errorf("cluster %s did not become active: %w", name, err)
	}

	active, err := ctx.AWS.EKS.DescribeCluster(ctx, &eks.DescribeClusterInput{Name: aws.String(name)})
	if err != nil {
		return fmt.Errorf("failed to describe active cluster %s: %w", name, err)
	}

	ctx.State.ClusterEndpoint = aws.ToString(active.Cluster.Endpoint)
	if active.Cluster.CertificateAuthority != nil {
		ctx.State.ClusterCA = aws.ToString(active.Cluster.CertificateAuthority.Data)
	}
	if active.Cluster.ResourcesVpcConfig != nil {
		ctx.State.ClusterSecurityGroupID = aws.ToString(active.Cluster.ResourcesVpcConfig.ClusterSecurityGroupId)
	}
	if active.Cluster.Identity != nil && active.Cluster.Identity.Oidc != nil {
		ctx.State.OIDCIssuer = aws.ToString(active.Cluster.Identity.Oidc.Issuer)
	}
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "cluster", name, ctx.State.ClusterEndpoint)
	return nil
}

func (p *Provisioner) ensureNodeGroup(ctx *provisioning.Context, nodeRoleARN string) error {
	cluster := ctx.Config.ClusterName()
	name := naming.NodeGroup(ctx.Config.Project)

	_, err := ctx.AWS.EKS.DescribeNodegroup(ctx, &eks.DescribeNodegroupInput{
		ClusterName:   aws.String(cluster),
		NodegroupName: aws.String(name),
	})
	switch {
	case err == nil:
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "nodegroup", name, name)
	case awsplatform.IsNotFound(err):
		provisioning.LogResourceCreating(ctx.Observer, p.Name(), "nodegroup", name)
		_, err = ctx.AWS.EKS.CreateNodegroup(ctx, &eks.CreateNodegroupInput{
			ClusterName:   aws.String(cluster),
			NodegroupName: aws.String(name),
			NodeRole:      aws.String(nodeRoleARN),
			Subnets:       ctx.State.PrivateSubnetIDs,
			InstanceTypes: ctx.Config.Cluster.InstanceTypes,
			ScalingConfig: &ekstypes.NodegroupScalingConfig{
				MinSize:     aws.Int32(ctx.Config.Cluster.NodeMin),
				DesiredSize: aws.Int32(ctx.Config.Cluster.NodeDesired),
				MaxSize:     aws.Int32(ctx.Config.Cluster.NodeMax),
			},
			Tags: map[string]string{"project": ctx.Config.Project},
		})
		if err != nil {
			return fmt.Errorf("failed to create nodegroup %s: %w", name, err)
		}
	default:
		return fmt.Errorf("failed to describe nodegroup %s: %w", name, err)
	}

	ctx.Observer.Printf("Waiting for nodegroup %s to become active...", name)
	waiter := eks.NewNodegroupActiveWaiter(ctx.AWS.EKS)
	if err := waiter.Wait(ctx, &eks.DescribeNodegroupInput{
		ClusterName:   aws.String(cluster),
		NodegroupName: aws.String(name),
	}, nodegroupWaitTimeout); err != nil {
		return fmt.Errorf("nodegroup %s did not become active: %w", name, err)
	}

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "nodegroup", name, name)
	return nil
}
