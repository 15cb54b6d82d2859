package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

func TestRenderOutputs(t *testing.T) {
	out := renderOutputs(&provisioning.Outputs{
		Project:         "gov-doc-rag",
		Region:          "us-east-1",
		ClusterEndpoint: "https://EXAMPLE.eks.amazonaws.com",
		OIDCIssuer:      "https://oidc.eks.us-east-1.amazonaws.com/id/EXAMPLE",
		Buckets: map[string]string{
			"raw":       "gov-doc-rag-raw",
			"processed": "gov-doc-rag-processed",
		},
		RoleARNs: map[string]string{
			"query": "arn:aws:iam::123456789012:role/gov-doc-rag-query",
		},
	})

	assert.Contains(t, out, "gov-doc-rag (us-east-1)")
	assert.Contains(t, out, "https://EXAMPLE.eks.amazonaws.com")
	assert.Contains(t, out, "gov-doc-rag-raw")
	assert.Contains(t, out, "arn:aws:iam::123456789012:role/gov-doc-rag-query")
	// Empty sections are omitted entirely.
	assert.NotContains(t, out, "Registries")
}
