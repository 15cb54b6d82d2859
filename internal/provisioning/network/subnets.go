package network

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

// ProvisionSubnets ensures one public and one private subnet per availability
// zone. Subnets carry the kubernetes.io role tags the load balancer
// controller uses for subnet discovery.
func (p *Provisioner) ProvisionSubnets(ctx *provisioning.Context) error {
	cluster := ctx.Config.ClusterName()
	clusterTag := "kubernetes.io/cluster/" + cluster

	ctx.State.PublicSubnetIDs = ctx.State.PublicSubnetIDs[:0]
	ctx.State.PrivateSubnetIDs = ctx.State.PrivateSubnetIDs[:0]

	for i, zone := range ctx.Config.Network.Zones {
		publicID, err := p.ensureSubnet(ctx, naming.PublicSubnet(ctx.Config.Project, zone), zone,
			ctx.Config.Network.PublicSubnets[i], map[string]string{
				"kubernetes.io/role/elb": "1",
				clusterTag:               "shared",
			})
		if err != nil {
			return err
		}
		ctx.State.PublicSubnetIDs = append(ctx.State.PublicSubnetIDs, publicID)

		privateID, err := p.ensureSubnet(ctx, naming.PrivateSubnet(ctx.Config.Project, zone), zone,
			ctx.Config.Network.PrivateSubnets[i], map[string]string{
				"kubernetes.io/role/internal-elb": "1",
				clusterTag:                        "shared",
			})
		if err != nil {
			return err
		}
		ctx.State.PrivateSubnetIDs = append(ctx.State.PrivateSubnetIDs, privateID)
	}

	return nil
}

func (p *Provisioner) ensureSubnet(ctx *provisioning.Context, name, zone, cidr string, extraTags map[string]string) (string, error) {
	existing, err := ctx.AWS.EC2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: nameFilter(name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe subnets: %w", err)
	}
	if len(existing.Subnets) > 0 {
		id := aws.ToString(existing.Subnets[0].SubnetId)
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "subnet", name, id)
		return id, nil
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "subnet", name)
	created, err := ctx.AWS.EC2.CreateSubnet(ctx, &ec2.CreateSubnetInput{
		VpcId:             aws.String(ctx.State.VPCID),
		AvailabilityZone:  aws.String(zone),
		CidrBlock:         aws.String(cidr),
		TagSpecifications: tagSpec(ec2types.ResourceTypeSubnet, resourceTags(ctx.Config.Project, name, extraTags)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create subnet %s: %w", name, err)
	}
	id := aws.ToString(created.Subnet.SubnetId)
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "subnet", name, id)
	return id, nil
}
