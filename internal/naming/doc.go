// Package naming provides consistent naming for provisioned AWS resources
// and the ARN constructors the policy layer scopes itself to.
//
// Resource names follow the pattern {project}-{type} for infrastructure and
// {project}/{workload} for log groups and image repositories, so everything
// belonging to a deployment can be identified (and cleaned up) by prefix.
package naming
