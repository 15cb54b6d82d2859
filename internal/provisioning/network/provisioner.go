package network

import (
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

// Provisioner handles the VPC, subnets, gateways, and route tables.
type Provisioner struct{}

// NewProvisioner creates a new network provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "network"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. VPC
	if err := p.ProvisionVPC(ctx); err != nil {
		return err
	}

	// 2. Internet gateway
	if err := p.ProvisionInternetGateway(ctx); err != nil {
		return err
	}

	// 3. Subnets, one public and one private per zone
	if err := p.ProvisionSubnets(ctx); err != nil {
		return err
	}

	// 4. NAT gateways, one per zone in the public subnets
	if err := p.ProvisionNATGateways(ctx); err != nil {
		return err
	}

	// 5. Route tables
	if err := p.ProvisionRouteTables(ctx); err != nil {
		return err
	}

	return nil
}
