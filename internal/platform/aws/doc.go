// Package aws wraps the aws-sdk-go-v2 service clients behind narrow
// interfaces covering exactly the calls the provisioners make. Provisioners
// depend on the interfaces; tests substitute mock implementations, and
// NewClients wires the real SDK clients from the ambient credential chain.
package aws
