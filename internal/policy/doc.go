// Package policy composes IAM policy documents for the gov-doc-rag
// workloads. Each workload variant carries its own action-verb set and
// resource-scope set; ForWorkload assembles the minimal document for a
// variant from a Scope, so the declared rights cannot drift from the
// intended ones statement by statement.
//
// The only statements with a wildcard resource are the two service-linked
// role creations the provider mandates for the ingress controller; every
// other statement is scoped to ARNs owned by the deployment.
package policy
