package network

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

// ProvisionVPC ensures the project VPC exists with DNS support and hostnames
// enabled. Both DNS attributes are required for private interface endpoints
// to resolve.
func (p *Provisioner) ProvisionVPC(ctx *provisioning.Context) error {
	name := naming.VPC(ctx.Config.Project)

	existing, err := ctx.AWS.EC2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: nameFilter(name),
	})
	if err != nil {
		return fmt.Errorf("failed to describe VPCs: %w", err)
	}
	if len(existing.Vpcs) > 0 {
		ctx.State.VPCID = aws.ToString(existing.Vpcs[0].VpcId)
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "vpc", name, ctx.State.VPCID)
		return p.enableVPCDNS(ctx)
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "vpc", name)
	created, err := ctx.AWS.EC2.CreateVpc(ctx, &ec2.CreateVpcInput{
		CidrBlock:         aws.String(ctx.Config.Network.VPCCIDR),
		TagSpecifications: tagSpec(ec2types.ResourceTypeVpc, resourceTags(ctx.Config.Project, name, nil)),
	})
	if err != nil {
		return fmt.Errorf("failed to create VPC: %w", err)
	}
	ctx.State.VPCID = aws.ToString(created.Vpc.VpcId)
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "vpc", name, ctx.State.VPCID)

	return p.enableVPCDNS(ctx)
}

func (p *Provisioner) enableVPCDNS(ctx *provisioning.Context) error {
	_, err := ctx.AWS.EC2.ModifyVpcAttribute(ctx, &ec2.ModifyVpcAttributeInput{
		VpcId:            aws.String(ctx.State.VPCID),
		EnableDnsSupport: &ec2types.AttributeBooleanValue{Value: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to enable DNS support: %w", err)
	}

	_, err = ctx.AWS.EC2.ModifyVpcAttribute(ctx, &ec2.ModifyVpcAttributeInput{
		VpcId:              aws.String(ctx.State.VPCID),
		EnableDnsHostnames: &ec2types.AttributeBooleanValue{Value: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to enable DNS hostnames: %w", err)
	}
	return nil
}

// ProvisionInternetGateway ensures the internet gateway exists and is
// attached to the VPC.
func (p *Provisioner) ProvisionInternetGateway(ctx *provisioning.Context) error {
	name := naming.InternetGateway(ctx.Config.Project)

	attached, err := ctx.AWS.EC2.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{
		Filters: []ec2types.Filter{{
			Name:   aws.String("attachment.vpc-id"),
			Values: []string{ctx.State.VPCID},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to describe internet gateways: %w", err)
	}
	if len(attached.InternetGateways) > 0 {
		ctx.State.InternetGatewayID = aws.ToString(attached.InternetGateways[0].InternetGatewayId)
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "internet-gateway", name, ctx.State.InternetGatewayID)
		return nil
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "internet-gateway", name)
	created, err := ctx.AWS.EC2.CreateInternetGateway(ctx, &ec2.CreateInternetGatewayInput{
		TagSpecifications: tagSpec(ec2types.ResourceTypeInternetGateway, resourceTags(ctx.Config.Project, name, nil)),
	})
	if err != nil {
		return fmt.Errorf("failed to create internet gateway: %w", err)
	}
	ctx.State.InternetGatewayID = aws.ToString(created.InternetGateway.InternetGatewayId)

	_, err = ctx.AWS.EC2.AttachInternetGateway(ctx, &ec2.AttachInternetGatewayInput{
		InternetGatewayId: aws.String(ctx.State.InternetGatewayID),
		VpcId:             aws.String(ctx.State.VPCID),
	})
	if err != nil {
		return fmt.Errorf("failed to attach internet gateway: %w", err)
	}
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "internet-gateway", name, ctx.State.InternetGatewayID)
	return nil
}
