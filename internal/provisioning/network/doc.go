// Package network provisions the VPC fabric: the VPC itself, one public and
// one private subnet per availability zone, an internet gateway, a NAT
// gateway per zone, and the route tables tying them together. Private
// subnets carry the cluster nodes; public subnets carry the NAT gateways
// and any internet-facing load balancers.
package network
