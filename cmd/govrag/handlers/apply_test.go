package handlers

import (
	"context"
	"io/fs"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/AayushV4/gov-doc-rag/internal/config"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

type mockSTS struct{}

func (mockSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return &sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}, nil
}

type fakePhase struct {
	name string
	ran  *[]string
	fn   func(*provisioning.Context)
}

func (p *fakePhase) Name() string { return p.name }

func (p *fakePhase) Provision(ctx *provisioning.Context) error {
	*p.ran = append(*p.ran, p.name)
	if p.fn != nil {
		p.fn(ctx)
	}
	return nil
}

// injectApply swaps every factory apply touches and restores them afterwards.
func injectApply(t *testing.T, phases []provisioning.Phase) (written *map[string][]byte) {
	t.Helper()

	origClients := newAWSClients
	origPhases := applyPhases
	origWrite := writeFile
	origLoad := loadConfigFile
	origFind := findConfigFile

	files := make(map[string][]byte)

	newAWSClients = func(context.Context, string) (*awsplatform.Clients, error) {
		return &awsplatform.Clients{Region: "us-east-1", STS: mockSTS{}}, nil
	}
	applyPhases = func() []provisioning.Phase { return phases }
	writeFile = func(name string, data []byte, _ fs.FileMode) error {
		files[name] = data
		return nil
	}
	findConfigFile = func(path string) (string, error) { return "govrag.yaml", nil }
	loadConfigFile = func(string) (*config.Config, error) {
		cfg := &config.Config{Project: "gov-doc-rag", Region: "us-east-1"}
		if err := cfg.ApplyDefaults(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	t.Cleanup(func() {
		newAWSClients = origClients
		applyPhases = origPhases
		writeFile = origWrite
		loadConfigFile = origLoad
		findConfigFile = origFind
	})

	return &files
}

func TestApply_RunsPhasesInOrder(t *testing.T) {
	var ran []string
	phases := []provisioning.Phase{
		&fakePhase{name: "network", ran: &ran},
		&fakePhase{name: "cluster", ran: &ran},
		&fakePhase{name: "ingress", ran: &ran},
	}
	injectApply(t, phases)

	require.NoError(t, Apply(context.Background(), ""))
	assert.Equal(t, []string{"network", "cluster", "ingress"}, ran)
}

func TestApply_WritesOutputs(t *testing.T) {
	var ran []string
	phases := []provisioning.Phase{
		&fakePhase{name: "cluster", ran: &ran, fn: func(ctx *provisioning.Context) {
			ctx.State.ClusterEndpoint = "https://EXAMPLE.eks.amazonaws.com"
			ctx.State.Buckets["raw"] = "gov-doc-rag-raw"
		}},
	}
	files := injectApply(t, phases)

	require.NoError(t, Apply(context.Background(), ""))

	data, ok := (*files)[OutputsFile]
	require.True(t, ok, "apply must write %s", OutputsFile)

	var outputs provisioning.Outputs
	require.NoError(t, yaml.Unmarshal(data, &outputs))
	assert.Equal(t, "gov-doc-rag", outputs.Project)
	assert.Equal(t, "us-east-1", outputs.Region)
	assert.Equal(t, "https://EXAMPLE.eks.amazonaws.com", outputs.ClusterEndpoint)
	assert.Equal(t, "gov-doc-rag-raw", outputs.Buckets["raw"])
}

func TestApply_ResolvesAccountIDViaSTS(t *testing.T) {
	var gotAccount string
	phases := []provisioning.Phase{
		&fakePhase{name: "probe", ran: new([]string), fn: func(ctx *provisioning.Context) {
			gotAccount = ctx.State.AccountID
		}},
	}
	injectApply(t, phases)

	require.NoError(t, Apply(context.Background(), ""))
	assert.Equal(t, "123456789012", gotAccount)
}

func TestApplyPhases_DefaultOrder(t *testing.T) {
	var names []string
	for _, p := range applyPhases() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{
		"network", "kms", "storage", "registry", "cluster", "endpoints",
		"identity", "logging", "secrets", "budget", "ingress",
	}, names)
}
