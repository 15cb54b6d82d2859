package commands

import (
	"github.com/spf13/cobra"

	"github.com/AayushV4/gov-doc-rag/cmd/govrag/handlers"
)

// Serve returns the command that runs the query web client.
//
// Environment variables:
//
//	LISTEN_ADDR:  host:port to bind (default :8090)
//	API_ENDPOINT: base URL of the query API (required)
//	DEFAULT_K:    passages requested per query (default 6)
func Serve() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the query web client",
		Long: `Serve runs the minimal web front end: a single query form that posts to
the deployed query API and renders the answer with its citations.

Configuration comes from the environment:
  LISTEN_ADDR   host:port to bind (default :8090)
  API_ENDPOINT  base URL of the query API (required)
  DEFAULT_K     passages requested per query (default 6)

Example:
  API_ENDPOINT=https://api.internal.example.org govrag serve`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Serve()
		},
	}
}
