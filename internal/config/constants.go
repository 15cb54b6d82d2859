package config

// Defaults applied by ApplyDefaults when the corresponding field is unset.
const (
	// DefaultRegion is the region the original stack deploys into.
	DefaultRegion = "us-east-1"

	// DefaultClusterVersion is the EKS control plane version.
	DefaultClusterVersion = "1.29"

	// DefaultNamespace is the cluster namespace for document workloads.
	DefaultNamespace = "gov-doc-rag"

	// DefaultRetentionDays is the log retention applied when none is set.
	DefaultRetentionDays int32 = 30

	// DefaultSlowRequestMs is the slow-request diagnostic threshold.
	DefaultSlowRequestMs = 2000

	// DefaultBudgetThresholdPercent triggers the budget notification.
	DefaultBudgetThresholdPercent = 80.0
)

// Node pool bounds. The pool scales between min and max; desired is the
// steady-state size.
const (
	DefaultNodeMin     int32 = 1
	DefaultNodeDesired int32 = 2
	DefaultNodeMax     int32 = 3
)

// DefaultInstanceTypes is the node group instance type order of preference.
var DefaultInstanceTypes = []string{"m6i.large"}

// ValidRetentionDays are the retention periods CloudWatch Logs accepts.
// Any other value is a configuration error rejected before provisioning.
var ValidRetentionDays = map[int32]bool{
	1: true, 3: true, 5: true, 7: true, 14: true, 30: true, 60: true,
	90: true, 120: true, 150: true, 180: true, 365: true, 400: true,
	545: true, 731: true, 1096: true, 1827: true, 2192: true, 2557: true,
	2922: true, 3288: true, 3653: true,
}
