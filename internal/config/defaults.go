package config

import (
	"fmt"
	"strings"
)

// ApplyDefaults fills unset fields with sensible defaults. Subnet CIDRs are
// derived from the VPC CIDR when not declared explicitly: public subnets
// take the first /24 blocks, private subnets start at block 100.
func (c *Config) ApplyDefaults() error {
	if c.Region == "" {
		c.Region = DefaultRegion
	}

	if c.Network.VPCCIDR == "" {
		c.Network.VPCCIDR = "10.0.0.0/16"
	}
	if len(c.Network.Zones) == 0 {
		c.Network.Zones = []string{c.Region + "a", c.Region + "b"}
	}
	if err := c.deriveSubnets(); err != nil {
		return err
	}

	if c.Cluster.Version == "" {
		c.Cluster.Version = DefaultClusterVersion
	}
	if len(c.Cluster.InstanceTypes) == 0 {
		c.Cluster.InstanceTypes = append([]string(nil), DefaultInstanceTypes...)
	}
	if c.Cluster.NodeMin == 0 {
		c.Cluster.NodeMin = DefaultNodeMin
	}
	if c.Cluster.NodeDesired == 0 {
		c.Cluster.NodeDesired = DefaultNodeDesired
	}
	if c.Cluster.NodeMax == 0 {
		c.Cluster.NodeMax = DefaultNodeMax
	}
	if c.Cluster.Namespace == "" {
		c.Cluster.Namespace = DefaultNamespace
	}

	if c.Buckets.Raw == "" {
		c.Buckets.Raw = c.Project + "-raw"
	}
	if c.Buckets.Processed == "" {
		c.Buckets.Processed = c.Project + "-processed"
	}
	if c.Buckets.Index == "" {
		c.Buckets.Index = c.Project + "-index"
	}

	if c.Logging.RetentionDays == 0 {
		c.Logging.RetentionDays = DefaultRetentionDays
	}
	if c.Logging.SlowRequestMs == 0 {
		c.Logging.SlowRequestMs = DefaultSlowRequestMs
	}

	if c.Budget.ThresholdPercent == 0 {
		c.Budget.ThresholdPercent = DefaultBudgetThresholdPercent
	}

	return nil
}

// deriveSubnets calculates per-zone subnet CIDRs when the lists are empty.
// Both lists must be derived together; a single explicit list is left alone
// for Validate to reject the length mismatch.
func (c *Config) deriveSubnets() error {
	if len(c.Network.PublicSubnets) != 0 || len(c.Network.PrivateSubnets) != 0 {
		return nil
	}

	for i := range c.Network.Zones {
		pub, err := CIDRSubnet(c.Network.VPCCIDR, 8, i)
		if err != nil {
			return fmt.Errorf("failed to derive public subnet %d: %w", i, err)
		}
		priv, err := CIDRSubnet(c.Network.VPCCIDR, 8, 100+i)
		if err != nil {
			return fmt.Errorf("failed to derive private subnet %d: %w", i, err)
		}
		c.Network.PublicSubnets = append(c.Network.PublicSubnets, pub)
		c.Network.PrivateSubnets = append(c.Network.PrivateSubnets, priv)
	}
	return nil
}

// SecretNames returns the placeholder secret names provisioned under the
// project prefix. Values are expected to be overwritten out-of-band.
func (c *Config) SecretNames() []string {
	base := []string{
		"PINECONE_API_KEY",
		"PINECONE_ENVIRONMENT",
		"PINECONE_INDEX",
		"COHERE_API_KEY",
		"BEDROCK_GUARDRAIL_ID",
	}
	names := make([]string, 0, len(base))
	for _, n := range base {
		names = append(names, c.Project+"/"+n)
	}
	return names
}

// ClusterName returns the EKS cluster name.
func (c *Config) ClusterName() string {
	return c.Project
}

// RepositoryOwnerName splits the CI repository into owner and name.
func (c *CIConfig) RepositoryOwnerName() (string, string, bool) {
	owner, name, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || name == "" {
		return "", "", false
	}
	return owner, name, true
}
