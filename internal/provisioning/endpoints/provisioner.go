package endpoints

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

// interfaceServices are the services reached through interface endpoints
// from the private subnets.
var interfaceServices = []string{
	"ecr.api",
	"ecr.dkr",
	"logs",
	"sts",
	"kms",
	"secretsmanager",
	"textract",
	"bedrock-runtime",
	"translate",
}

// Provisioner handles the VPC endpoints.
type Provisioner struct{}

// NewProvisioner creates a new endpoint provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "endpoints"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.ensureGatewayEndpoint(ctx, "s3"); err != nil {
		return err
	}
	for _, service := range interfaceServices {
		if err := p.ensureInterfaceEndpoint(ctx, service); err != nil {
			return err
		}
	}
	return nil
}

func serviceName(region, service string) string {
	return fmt.Sprintf("com.amazonaws.%s.%s", region, service)
}

func (p *Provisioner) exists(ctx *provisioning.Context, fullName string) (bool, error) {
	out, err := ctx.AWS.EC2.DescribeVpcEndpoints(ctx, &ec2.DescribeVpcEndpointsInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("vpc-id"), Values: []string{ctx.State.VPCID}},
			{Name: aws.String("service-name"), Values: []string{fullName}},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to describe VPC endpoints: %w", err)
	}
	return len(out.VpcEndpoints) > 0, nil
}

func (p *Provisioner) ensureGatewayEndpoint(ctx *provisioning.Context, service string) error {
	fullName := serviceName(ctx.AWS.Region, service)

	found, err := p.exists(ctx, fullName)
	if err != nil {
		return err
	}
	if found {
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "vpc-endpoint", fullName, "")
		return nil
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "vpc-endpoint", fullName)
	_, err = ctx.AWS.EC2.CreateVpcEndpoint(ctx, &ec2.CreateVpcEndpointInput{
		VpcId:           aws.String(ctx.State.VPCID),
		ServiceName:     aws.String(fullName),
		VpcEndpointType: ec2types.VpcEndpointTypeGateway,
		RouteTableIds:   ctx.State.PrivateRouteTableIDs,
	})
	if err != nil {
		return fmt.Errorf("failed to create gateway endpoint for %s: %w", service, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "vpc-endpoint", fullName, "")
	return nil
}

func (p *Provisioner) ensureInterfaceEndpoint(ctx *provisioning.Context, service string) error {
	fullName := serviceName(ctx.AWS.Region, service)

	found, err := p.exists(ctx, fullName)
	if err != nil {
		return err
	}
	if found {
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "vpc-endpoint", fullName, "")
		return nil
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "vpc-endpoint", fullName)
	input := &ec2.CreateVpcEndpointInput{
		VpcId:             aws.String(ctx.State.VPCID),
		ServiceName:       aws.String(fullName),
		VpcEndpointType:   ec2types.VpcEndpointTypeInterface,
		SubnetIds:         ctx.State.PrivateSubnetIDs,
		PrivateDnsEnabled: aws.Bool(true),
	}
	if ctx.State.ClusterSecurityGroupID != "" {
		input.SecurityGroupIds = []string{ctx.State.ClusterSecurityGroupID}
	}
	if _, err := ctx.AWS.EC2.CreateVpcEndpoint(ctx, input); err != nil {
		return fmt.Errorf("failed to create interface endpoint for %s: %w", service, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "vpc-endpoint", fullName, "")
	return nil
}
