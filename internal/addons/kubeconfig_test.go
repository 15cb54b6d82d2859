package addons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/tools/clientcmd"
)

func TestKubeconfig(t *testing.T) {
	out, err := Kubeconfig("gov-doc-rag", "us-east-1", "https://EXAMPLE.eks.amazonaws.com", testClusterCA)
	require.NoError(t, err)

	cfg, err := clientcmd.Load(out)
	require.NoError(t, err)

	require.Contains(t, cfg.Clusters, "gov-doc-rag")
	assert.Equal(t, "https://EXAMPLE.eks.amazonaws.com", cfg.Clusters["gov-doc-rag"].Server)
	assert.NotEmpty(t, cfg.Clusters["gov-doc-rag"].CertificateAuthorityData)

	require.Contains(t, cfg.AuthInfos, "gov-doc-rag")
	exec := cfg.AuthInfos["gov-doc-rag"].Exec
	require.NotNil(t, exec)
	assert.Equal(t, "aws", exec.Command)
	assert.Equal(t, []string{"eks", "get-token", "--cluster-name", "gov-doc-rag", "--region", "us-east-1"}, exec.Args)

	assert.Equal(t, "gov-doc-rag", cfg.CurrentContext)
}

func TestKubeconfig_RejectsBadCA(t *testing.T) {
	_, err := Kubeconfig("gov-doc-rag", "us-east-1", "https://EXAMPLE.eks.amazonaws.com", "%%not-base64%%")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster CA")
}
