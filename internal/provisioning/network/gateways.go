package network

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

// natGatewayWaitTimeout bounds how long we wait for a NAT gateway to leave
// the pending state. NAT gateways routinely take a couple of minutes.
const natGatewayWaitTimeout = 10 * time.Minute

// ProvisionNATGateways ensures one NAT gateway per availability zone, each
// in that zone's public subnet with its own elastic IP. Provisioning waits
// until every gateway is available so route creation cannot race it.
func (p *Provisioner) ProvisionNATGateways(ctx *provisioning.Context) error {
	ctx.State.NATGatewayIDs = ctx.State.NATGatewayIDs[:0]

	for i, zone := range ctx.Config.Network.Zones {
		id, err := p.ensureNATGateway(ctx, zone, ctx.State.PublicSubnetIDs[i])
		if err != nil {
			return err
		}
		ctx.State.NATGatewayIDs = append(ctx.State.NATGatewayIDs, id)
	}

	waiter := ec2.NewNatGatewayAvailableWaiter(ctx.AWS.EC2)
	if err := waiter.Wait(ctx, &ec2.DescribeNatGatewaysInput{
		NatGatewayIds: ctx.State.NATGatewayIDs,
	}, natGatewayWaitTimeout); err != nil {
		return fmt.Errorf("NAT gateways did not become available: %w", err)
	}

	return nil
}

func (p *Provisioner) ensureNATGateway(ctx *provisioning.Context, zone, subnetID string) (string, error) {
	name := naming.NATGateway(ctx.Config.Project, zone)

	existing, err := ctx.AWS.EC2.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{
		Filter: append(nameFilter(name), ec2types.Filter{
			Name:   aws.String("state"),
			Values: []string{"pending", "available"},
		}),
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe NAT gateways: %w", err)
	}
	if len(existing.NatGateways) > 0 {
		id := aws.ToString(existing.NatGateways[0].NatGatewayId)
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "nat-gateway", name, id)
		return id, nil
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "nat-gateway", name)
	eip, err := ctx.AWS.EC2.AllocateAddress(ctx, &ec2.AllocateAddressInput{
		Domain:            ec2types.DomainTypeVpc,
		TagSpecifications: tagSpec(ec2types.ResourceTypeElasticIp, resourceTags(ctx.Config.Project, name, nil)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to allocate elastic IP for %s: %w", name, err)
	}

	created, err := ctx.AWS.EC2.CreateNatGateway(ctx, &ec2.CreateNatGatewayInput{
		SubnetId:          aws.String(subnetID),
		AllocationId:      eip.AllocationId,
		TagSpecifications: tagSpec(ec2types.ResourceTypeNatgateway, resourceTags(ctx.Config.Project, name, nil)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create NAT gateway %s: %w", name, err)
	}
	id := aws.ToString(created.NatGateway.NatGatewayId)
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "nat-gateway", name, id)
	return id, nil
}
