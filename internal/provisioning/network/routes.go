package network

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

const defaultRoute = "0.0.0.0/0"

// ProvisionRouteTables creates one shared public route table sending traffic
// through the internet gateway, and one private route table per zone sending
// traffic through that zone's NAT gateway. Keeping private route tables
// zonal means the loss of one NAT gateway only affects its own zone.
func (p *Provisioner) ProvisionRouteTables(ctx *provisioning.Context) error {
	publicName := naming.PublicRouteTable(ctx.Config.Project)
	publicRT, err := p.createRouteTable(ctx, publicName)
	if err != nil {
		return err
	}

	_, err = ctx.AWS.EC2.CreateRoute(ctx, &ec2.CreateRouteInput{
		RouteTableId:         aws.String(publicRT),
		DestinationCidrBlock: aws.String(defaultRoute),
		GatewayId:            aws.String(ctx.State.InternetGatewayID),
	})
	if err != nil && !awsplatform.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create public default route: %w", err)
	}

	for _, subnetID := range ctx.State.PublicSubnetIDs {
		if err := p.associate(ctx, publicRT, subnetID); err != nil {
			return err
		}
	}

	ctx.State.PrivateRouteTableIDs = ctx.State.PrivateRouteTableIDs[:0]
	for i, zone := range ctx.Config.Network.Zones {
		rtID, err := p.createRouteTable(ctx, naming.PrivateRouteTable(ctx.Config.Project, zone))
		if err != nil {
			return err
		}

		_, err = ctx.AWS.EC2.CreateRoute(ctx, &ec2.CreateRouteInput{
			RouteTableId:         aws.String(rtID),
			DestinationCidrBlock: aws.String(defaultRoute),
			NatGatewayId:         aws.String(ctx.State.NATGatewayIDs[i]),
		})
		if err != nil && !awsplatform.IsAlreadyExists(err) {
			return fmt.Errorf("failed to create private default route for %s: %w", zone, err)
		}

		if err := p.associate(ctx, rtID, ctx.State.PrivateSubnetIDs[i]); err != nil {
			return err
		}
		ctx.State.PrivateRouteTableIDs = append(ctx.State.PrivateRouteTableIDs, rtID)
	}

	return nil
}

func (p *Provisioner) createRouteTable(ctx *provisioning.Context, name string) (string, error) {
	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "route-table", name)
	created, err := ctx.AWS.EC2.CreateRouteTable(ctx, &ec2.CreateRouteTableInput{
		VpcId:             aws.String(ctx.State.VPCID),
		TagSpecifications: tagSpec(ec2types.ResourceTypeRouteTable, resourceTags(ctx.Config.Project, name, nil)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create route table %s: %w", name, err)
	}
	id := aws.ToString(created.RouteTable.RouteTableId)
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "route-table", name, id)
	return id, nil
}

func (p *Provisioner) associate(ctx *provisioning.Context, routeTableID, subnetID string) error {
	_, err := ctx.AWS.EC2.AssociateRouteTable(ctx, &ec2.AssociateRouteTableInput{
		RouteTableId: aws.String(routeTableID),
		SubnetId:     aws.String(subnetID),
	})
	if err != nil && !awsplatform.IsAlreadyExists(err) {
		return fmt.Errorf("failed to associate route table %s with subnet %s: %w", routeTableID, subnetID, err)
	}
	return nil
}
