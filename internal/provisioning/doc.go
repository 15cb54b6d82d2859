// Package provisioning provides the shared types for infrastructure
// provisioning: the Phase interface, the Context carrying configuration and
// AWS clients, the State accumulated across phases, and the sequential
// pipeline runner.
//
// The provisioning domain is organized into focused subpackages, one per
// resource family:
//   - network/ — VPC, subnets, gateways, route tables
//   - kms/ — encryption keys and key policies
//   - storage/ — versioned, encrypted artifact buckets
//   - registry/ — container image repositories
//   - cluster/ — EKS control plane, node group, OIDC provider
//   - endpoints/ — private service endpoints
//   - identity/ — per-workload roles and least-privilege policies
//   - logging/ — log groups, retention, diagnostic queries
//   - secrets/ — placeholder credential entries
//   - budget/ — the monthly cost guardrail
//   - destroy/ — reverse-order teardown
package provisioning
