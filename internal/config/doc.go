// Package config defines the provisioning configuration for the gov-doc-rag
// stack: project identity, network layout, cluster sizing, bucket names,
// log retention, budget guardrail, and the optional CI deploy identity.
//
// Configuration is loaded from YAML, defaulted with ApplyDefaults, and checked
// with Validate. Validation runs before any AWS client is constructed so that
// malformed input never reaches the provider.
package config
