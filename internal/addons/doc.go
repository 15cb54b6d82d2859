// Package addons installs in-cluster components after the infrastructure
// phases complete. The only addon is the AWS Load Balancer Controller, which
// turns Ingress resources into application load balancers. It runs under the
// ingress-controller role via IRSA: the service account carries the role ARN
// annotation and the chart is told not to create its own.
package addons
