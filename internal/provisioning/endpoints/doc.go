// Package endpoints provisions the VPC endpoints that keep service traffic
// off the public internet: a gateway endpoint for S3 on the private route
// tables and interface endpoints for the registry, logging, identity, and
// inference services the workloads call.
package endpoints
