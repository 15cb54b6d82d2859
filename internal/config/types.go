package config

// Config is the root provisioning configuration, typically loaded from
// govrag.yaml. Every provisioner reads its inputs from here; nothing is
// discovered from flags at provisioning time.
type Config struct {
	// Project is the name prefix for every provisioned resource.
	Project string `yaml:"project" mapstructure:"project"`

	// Region is the AWS region to provision into.
	Region string `yaml:"region" mapstructure:"region"`

	// AccountID is the twelve-digit AWS account ID. Discovered via STS
	// when left empty.
	AccountID string `yaml:"account_id" mapstructure:"account_id"`

	Network NetworkConfig `yaml:"network" mapstructure:"network"`
	Cluster ClusterConfig `yaml:"cluster" mapstructure:"cluster"`
	Buckets BucketConfig  `yaml:"buckets" mapstructure:"buckets"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Budget  BudgetConfig  `yaml:"budget" mapstructure:"budget"`
	CI      CIConfig      `yaml:"ci" mapstructure:"ci"`
	Ingress IngressConfig `yaml:"ingress" mapstructure:"ingress"`
}

// NetworkConfig describes the VPC layout. The three lists must have equal
// length: index i of PublicSubnets and PrivateSubnets is provisioned into
// Zones[i].
type NetworkConfig struct {
	VPCCIDR        string   `yaml:"vpc_cidr" mapstructure:"vpc_cidr"`
	Zones          []string `yaml:"zones" mapstructure:"zones"`
	PublicSubnets  []string `yaml:"public_subnets" mapstructure:"public_subnets"`
	PrivateSubnets []string `yaml:"private_subnets" mapstructure:"private_subnets"`
}

// ClusterConfig describes the EKS control plane and its single managed
// node group.
type ClusterConfig struct {
	Version       string   `yaml:"version" mapstructure:"version"`
	InstanceTypes []string `yaml:"instance_types" mapstructure:"instance_types"`
	NodeMin       int32    `yaml:"node_min" mapstructure:"node_min"`
	NodeDesired   int32    `yaml:"node_desired" mapstructure:"node_desired"`
	NodeMax       int32    `yaml:"node_max" mapstructure:"node_max"`

	// Namespace is the cluster namespace the document workloads run in.
	// Workload role trust policies are scoped to service accounts inside it.
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
}

// BucketConfig names the three artifact buckets. Empty names are derived
// from the project name.
type BucketConfig struct {
	Raw       string `yaml:"raw" mapstructure:"raw"`
	Processed string `yaml:"processed" mapstructure:"processed"`
	Index     string `yaml:"index" mapstructure:"index"`
}

// LoggingConfig controls log destinations.
type LoggingConfig struct {
	// RetentionDays must be one of the CloudWatch Logs retention values;
	// anything else is rejected by Validate.
	RetentionDays int32 `yaml:"retention_days" mapstructure:"retention_days"`

	// Diagnostics attaches the canned Logs Insights queries when true.
	Diagnostics bool `yaml:"diagnostics" mapstructure:"diagnostics"`

	// SlowRequestMs is the duration threshold used by the slow-request
	// diagnostic query.
	SlowRequestMs int `yaml:"slow_request_ms" mapstructure:"slow_request_ms"`
}

// BudgetConfig describes the monthly cost guardrail.
type BudgetConfig struct {
	MonthlyLimitUSD  float64  `yaml:"monthly_limit_usd" mapstructure:"monthly_limit_usd"`
	ThresholdPercent float64  `yaml:"threshold_percent" mapstructure:"threshold_percent"`
	Emails           []string `yaml:"emails" mapstructure:"emails"`
}

// CIConfig optionally derives a deploy-time identity trusted by GitHub's
// OIDC issuer. Repository is "owner/name"; the trust condition is scoped to
// that repository only.
type CIConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	Repository string `yaml:"repository" mapstructure:"repository"`
}

// IngressConfig carries overrides for the load balancer controller chart.
type IngressConfig struct {
	Chart HelmChartConfig `yaml:"chart" mapstructure:"chart"`
}

// HelmChartConfig overrides a chart's repository, name, or version.
type HelmChartConfig struct {
	Repository string `yaml:"repository" mapstructure:"repository"`
	Chart      string `yaml:"chart" mapstructure:"chart"`
	Version    string `yaml:"version" mapstructure:"version"`
}
