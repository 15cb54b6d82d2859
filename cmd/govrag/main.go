// Package main is the entry point for the govrag CLI.
//
// govrag provisions the AWS footprint of the document retrieval and
// generation stack: network, encryption keys, buckets, image registry, EKS
// cluster, workload identities, log groups, secrets, a cost budget, and the
// in-cluster ingress controller. It also serves the minimal query web
// client.
//
// Commands: init, validate, apply, destroy, outputs, serve.
//
// For detailed usage information, run:
//
//	govrag --help
package main

import (
	"fmt"
	"os"

	"github.com/AayushV4/gov-doc-rag/cmd/govrag/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
