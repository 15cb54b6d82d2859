// Package destroy handles teardown of provisioned resources in reverse
// dependency order: the budget, secrets, log groups, roles, the cluster and
// its node group, image repositories, and finally the network fabric.
// Teardown is best-effort: a failed step is reported and the rest continue.
// Buckets and encryption keys are retained unless data deletion is forced.
package destroy
