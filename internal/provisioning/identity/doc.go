// Package identity provisions the workload roles. Each runtime workload
// gets one role trusting the cluster's OIDC provider for its exact service
// account, carrying the least-privilege inline policy for that workload.
// When CI is enabled a deploy-time role trusting GitHub's OIDC issuer is
// added, scoped to a single source repository.
package identity
