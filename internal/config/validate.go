package config

import (
	"fmt"
	"net"
	"regexp"
	"sort"
	"strings"
)

var bucketNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

// Validate checks the configuration and returns a detailed error on the
// first violation. It is called before any AWS client is constructed, so a
// failing config never creates a resource.
func (c *Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("project is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.AccountID != "" && !regexp.MustCompile(`^\d{12}$`).MatchString(c.AccountID) {
		return fmt.Errorf("invalid account_id %q: must be 12 digits", c.AccountID)
	}

	if err := c.validateNetwork(); err != nil {
		return fmt.Errorf("network validation failed: %w", err)
	}
	if err := c.validateCluster(); err != nil {
		return fmt.Errorf("cluster validation failed: %w", err)
	}
	if err := c.validateBuckets(); err != nil {
		return fmt.Errorf("bucket validation failed: %w", err)
	}
	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}
	if err := c.validateBudget(); err != nil {
		return fmt.Errorf("budget validation failed: %w", err)
	}
	if err := c.validateCI(); err != nil {
		return fmt.Errorf("ci validation failed: %w", err)
	}

	return nil
}

// validateNetwork enforces the zone/subnet-list contract: one public and one
// private subnet CIDR per availability zone, all parseable, all zones in the
// configured region.
func (c *Config) validateNetwork() error {
	n := &c.Network

	if n.VPCCIDR == "" {
		return fmt.Errorf("network.vpc_cidr is required")
	}
	if _, _, err := net.ParseCIDR(n.VPCCIDR); err != nil {
		return fmt.Errorf("invalid network.vpc_cidr: %w", err)
	}

	if len(n.Zones) == 0 {
		return fmt.Errorf("at least one availability zone is required")
	}
	if len(n.PublicSubnets) != len(n.Zones) || len(n.PrivateSubnets) != len(n.Zones) {
		return fmt.Errorf("zone/subnet list length mismatch: %d zones, %d public subnets, %d private subnets",
			len(n.Zones), len(n.PublicSubnets), len(n.PrivateSubnets))
	}

	for _, zone := range n.Zones {
		if !strings.HasPrefix(zone, c.Region) || len(zone) != len(c.Region)+1 {
			return fmt.Errorf("zone %q does not belong to region %q", zone, c.Region)
		}
	}

	for i, cidr := range n.PublicSubnets {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid public subnet %d (%s): %w", i, cidr, err)
		}
	}
	for i, cidr := range n.PrivateSubnets {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid private subnet %d (%s): %w", i, cidr, err)
		}
	}

	return nil
}

func (c *Config) validateCluster() error {
	cl := &c.Cluster

	if cl.NodeMin < 1 {
		return fmt.Errorf("node_min must be at least 1, got %d", cl.NodeMin)
	}
	if cl.NodeDesired < cl.NodeMin || cl.NodeDesired > cl.NodeMax {
		return fmt.Errorf("node_desired %d outside [%d, %d]", cl.NodeDesired, cl.NodeMin, cl.NodeMax)
	}
	if len(cl.InstanceTypes) == 0 {
		return fmt.Errorf("at least one instance type is required")
	}
	return nil
}

func (c *Config) validateBuckets() error {
	for _, name := range []string{c.Buckets.Raw, c.Buckets.Processed, c.Buckets.Index} {
		if !bucketNameRe.MatchString(name) || strings.Contains(name, "_") {
			return fmt.Errorf("invalid bucket name %q: must be 3-63 lowercase letters, digits, dots, or hyphens", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !ValidRetentionDays[c.Logging.RetentionDays] {
		return fmt.Errorf("invalid retention_days %d: must be one of %v",
			c.Logging.RetentionDays, sortedRetentionDays())
	}
	if c.Logging.SlowRequestMs < 0 {
		return fmt.Errorf("slow_request_ms cannot be negative, got %d", c.Logging.SlowRequestMs)
	}
	return nil
}

func (c *Config) validateBudget() error {
	b := &c.Budget

	if b.MonthlyLimitUSD <= 0 {
		return fmt.Errorf("monthly_limit_usd must be positive, got %v", b.MonthlyLimitUSD)
	}
	if b.ThresholdPercent <= 0 || b.ThresholdPercent > 100 {
		return fmt.Errorf("threshold_percent must be in (0, 100], got %v", b.ThresholdPercent)
	}
	if len(b.Emails) == 0 {
		return fmt.Errorf("at least one notification email is required")
	}
	for _, email := range b.Emails {
		if !strings.Contains(email, "@") {
			return fmt.Errorf("invalid notification email %q", email)
		}
	}
	return nil
}

func (c *Config) validateCI() error {
	if !c.CI.Enabled {
		return nil
	}
	if _, _, ok := c.CI.RepositoryOwnerName(); !ok {
		return fmt.Errorf("ci.repository must be of the form owner/name, got %q", c.CI.Repository)
	}
	return nil
}

// sortedRetentionDays returns the valid retention values in ascending order
// for error messages.
func sortedRetentionDays() []int32 {
	days := make([]int32, 0, len(ValidRetentionDays))
	for d := range ValidRetentionDays {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}
