package destroy

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

const natDeleteWaitTimeout = 10 * time.Minute

// deleteNetwork tears the VPC fabric down from the leaves in: endpoints,
// NAT gateways and their addresses, subnets, route tables, the internet
// gateway, and finally the VPC. Everything is rediscovered by tag since
// destroy runs without prior state.
func (p *Provisioner) deleteNetwork(ctx *provisioning.Context) error {
	vpcID, err := p.findVPC(ctx)
	if err != nil {
		return err
	}
	if vpcID == "" {
		return nil
	}

	if err := p.deleteEndpoints(ctx, vpcID); err != nil {
		return err
	}
	if err := p.deleteNATGateways(ctx); err != nil {
		return err
	}
	if err := p.deleteSubnets(ctx, vpcID); err != nil {
		return err
	}
	if err := p.deleteRouteTables(ctx, vpcID); err != nil {
		return err
	}
	if err := p.deleteInternetGateway(ctx, vpcID); err != nil {
		return err
	}

	provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "vpc", vpcID)
	_, err = ctx.AWS.EC2.DeleteVpc(ctx, &ec2.DeleteVpcInput{VpcId: aws.String(vpcID)})
	if err != nil && !awsplatform.IsNotFound(err) {
		return fmt.Errorf("vpc %s: %w", vpcID, err)
	}
	return nil
}

func (p *Provisioner) findVPC(ctx *provisioning.Context) (string, error) {
	out, err := ctx.AWS.EC2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []ec2types.Filter{{
			Name:   aws.String("tag:Name"),
			Values: []string{naming.VPC(ctx.Config.Project)},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to look up VPC: %w", err)
	}
	if len(out.Vpcs) == 0 {
		return "", nil
	}
	return aws.ToString(out.Vpcs[0].VpcId), nil
}

func (p *Provisioner) deleteEndpoints(ctx *provisioning.Context, vpcID string) error {
	out, err := ctx.AWS.EC2.DescribeVpcEndpoints(ctx, &ec2.DescribeVpcEndpointsInput{
		Filters: []ec2types.Filter{{Name: aws.String("vpc-id"), Values: []string{vpcID}}},
	})
	if err != nil {
		return fmt.Errorf("failed to describe endpoints: %w", err)
	}
	if len(out.VpcEndpoints) == 0 {
		return nil
	}

	var ids []string
	for _, ep := range out.VpcEndpoints {
		ids = append(ids, aws.ToString(ep.VpcEndpointId))
	}
	if _, err := ctx.AWS.EC2.DeleteVpcEndpoints(ctx, &ec2.DeleteVpcEndpointsInput{VpcEndpointIds: ids}); err != nil {
		return fmt.Errorf("failed to delete endpoints: %w", err)
	}
	return nil
}

func (p *Provisioner) deleteNATGateways(ctx *provisioning.Context) error {
	var natIDs []string
	for _, zone := range ctx.Config.Network.Zones {
		name := naming.NATGateway(ctx.Config.Project, zone)
		out, err := ctx.AWS.EC2.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{
			Filter: []ec2types.Filter{
				{Name: aws.String("tag:Name"), Values: []string{name}},
				{Name: aws.String("state"), Values: []string{"pending", "available"}},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to describe NAT gateway %s: %w", name, err)
		}
		for _, nat := range out.NatGateways {
			id := aws.ToString(nat.NatGatewayId)
			provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "nat-gateway", name)
			if _, err := ctx.AWS.EC2.DeleteNatGateway(ctx, &ec2.DeleteNatGatewayInput{NatGatewayId: aws.String(id)}); err != nil {
				return fmt.Errorf("nat gateway %s: %w", id, err)
			}
			natIDs = append(natIDs, id)
		}
	}

	if len(natIDs) > 0 {
		waiter := ec2.NewNatGatewayDeletedWaiter(ctx.AWS.EC2)
		if err := waiter.Wait(ctx, &ec2.DescribeNatGatewaysInput{NatGatewayIds: natIDs}, natDeleteWaitTimeout); err != nil {
			return fmt.Errorf("NAT gateways did not finish deleting: %w", err)
		}
	}

	return p.releaseAddresses(ctx)
}

func (p *Provisioner) releaseAddresses(ctx *provisioning.Context) error {
	for _, zone := range ctx.Config.Network.Zones {
		name := naming.NATGateway(ctx.Config.Project, zone)
		out, err := ctx.AWS.EC2.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{
			Filters: []ec2types.Filter{{Name: aws.String("tag:Name"), Values: []string{name}}},
		})
		if err != nil {
			return fmt.Errorf("failed to describe addresses: %w", err)
		}
		for _, addr := range out.Addresses {
			_, err := ctx.AWS.EC2.ReleaseAddress(ctx, &ec2.ReleaseAddressInput{
				AllocationId: addr.AllocationId,
			})
			if err != nil && !awsplatform.IsNotFound(err) {
				return fmt.Errorf("address %s: %w", aws.ToString(addr.AllocationId), err)
			}
		}
	}
	return nil
}

func (p *Provisioner) deleteSubnets(ctx *provisioning.Context, vpcID string) error {
	out, err := ctx.AWS.EC2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: []ec2types.Filter{{Name: aws.String("vpc-id"), Values: []string{vpcID}}},
	})
	if err != nil {
		return fmt.Errorf("failed to describe subnets: %w", err)
	}
	for _, subnet := range out.Subnets {
		id := aws.ToString(subnet.SubnetId)
		_, err := ctx.AWS.EC2.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{SubnetId: aws.String(id)})
		if err != nil && !awsplatform.IsNotFound(err) {
			return fmt.Errorf("subnet %s: %w", id, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "subnet", id)
	}
	return nil
}

func (p *Provisioner) deleteRouteTables(ctx *provisioning.Context, vpcID string) error {
	out, err := ctx.AWS.EC2.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		Filters: []ec2types.Filter{{Name: aws.String("vpc-id"), Values: []string{vpcID}}},
	})
	if err != nil {
		return fmt.Errorf("failed to describe route tables: %w", err)
	}
	for _, rt := range out.RouteTables {
		// The main route table goes down with the VPC.
		main := false
		for _, assoc := range rt.Associations {
			if aws.ToBool(assoc.Main) {
				main = true
			}
		}
		if main {
			continue
		}
		id := aws.ToString(rt.RouteTableId)
		_, err := ctx.AWS.EC2.DeleteRouteTable(ctx, &ec2.DeleteRouteTableInput{RouteTableId: aws.String(id)})
		if err != nil && !awsplatform.IsNotFound(err) {
			return fmt.Errorf("route table %s: %w", id, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "route-table", id)
	}
	return nil
}

func (p *Provisioner) deleteInternetGateway(ctx *provisioning.Context, vpcID string) error {
	out, err := ctx.AWS.EC2.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{
		Filters: []ec2types.Filter{{Name: aws.String("attachment.vpc-id"), Values: []string{vpcID}}},
	})
	if err != nil {
		return fmt.Errorf("failed to describe internet gateways: %w", err)
	}
	for _, igw := range out.InternetGateways {
		id := aws.ToString(igw.InternetGatewayId)
		_, err := ctx.AWS.EC2.DetachInternetGateway(ctx, &ec2.DetachInternetGatewayInput{
			InternetGatewayId: aws.String(id),
			VpcId:             aws.String(vpcID),
		})
		if err != nil && !awsplatform.IsNotFound(err) {
			return fmt.Errorf("detach igw %s: %w", id, err)
		}
		_, err = ctx.AWS.EC2.DeleteInternetGateway(ctx, &ec2.DeleteInternetGatewayInput{
			InternetGatewayId: aws.String(id),
		})
		if err != nil && !awsplatform.IsNotFound(err) {
			return fmt.Errorf("delete igw %s: %w", id, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "internet-gateway", id)
	}
	return nil
}
