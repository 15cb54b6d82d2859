// Package cluster provisions the EKS control plane, its managed node group,
// and the cluster's OIDC identity provider. The control plane runs across
// the private subnets; workload identity flows through the OIDC provider
// registered here.
package cluster
