package logging

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AayushV4/gov-doc-rag/internal/config"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/kms"
)

type mockLogs struct {
	created    map[string]string // group -> KMS key
	retentions map[string]int32
	queries    []*cloudwatchlogs.PutQueryDefinitionInput
}

func newMockLogs() *mockLogs {
	return &mockLogs{created: make(map[string]string), retentions: make(map[string]int32)}
}

func (m *mockLogs) CreateLogGroup(_ context.Context, params *cloudwatchlogs.CreateLogGroupInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error) {
	m.created[aws.ToString(params.LogGroupName)] = aws.ToString(params.KmsKeyId)
	return &cloudwatchlogs.CreateLogGroupOutput{}, nil
}

func (m *mockLogs) DescribeLogGroups(context.Context, *cloudwatchlogs.DescribeLogGroupsInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	return &cloudwatchlogs.DescribeLogGroupsOutput{}, nil
}

func (m *mockLogs) PutRetentionPolicy(_ context.Context, params *cloudwatchlogs.PutRetentionPolicyInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error) {
	m.retentions[aws.ToString(params.LogGroupName)] = aws.ToInt32(params.RetentionInDays)
	return &cloudwatchlogs.PutRetentionPolicyOutput{}, nil
}

func (m *mockLogs) AssociateKmsKey(context.Context, *cloudwatchlogs.AssociateKmsKeyInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.AssociateKmsKeyOutput, error) {
	return &cloudwatchlogs.AssociateKmsKeyOutput{}, nil
}

func (m *mockLogs) PutQueryDefinition(_ context.Context, params *cloudwatchlogs.PutQueryDefinitionInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutQueryDefinitionOutput, error) {
	m.queries = append(m.queries, params)
	return &cloudwatchlogs.PutQueryDefinitionOutput{}, nil
}

func (m *mockLogs) DeleteLogGroup(context.Context, *cloudwatchlogs.DeleteLogGroupInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogGroupOutput, error) {
	return &cloudwatchlogs.DeleteLogGroupOutput{}, nil
}

type nopObserver struct{}

func (nopObserver) Printf(string, ...interface{})                      {}
func (nopObserver) Event(provisioning.Event)                           {}
func (nopObserver) WithFields(map[string]string) provisioning.Observer { return nopObserver{} }

func testContext(t *testing.T, mock *mockLogs, diagnostics bool) *provisioning.Context {
	t.Helper()
	cfg := &config.Config{
		Project: "gov-doc-rag",
		Region:  "us-east-1",
		Logging: config.LoggingConfig{RetentionDays: 90, Diagnostics: diagnostics},
	}
	require.NoError(t, cfg.ApplyDefaults())

	state := provisioning.NewState()
	state.AccountID = "123456789012"
	state.KeyARNs[kms.PurposeLogs] = "arn:aws:kms:us-east-1:123456789012:key/logs"

	return &provisioning.Context{
		Context:  context.Background(),
		Config:   cfg,
		State:    state,
		AWS:      &awsplatform.Clients{Region: "us-east-1", Logs: mock},
		Observer: nopObserver{},
	}
}

func TestProvision_EncryptedRetainedGroups(t *testing.T) {
	mock := newMockLogs()
	ctx := testContext(t, mock, false)

	require.NoError(t, NewProvisioner().Provision(ctx))

	expected := []string{
		"/gov-doc-rag/ingestion",
		"/gov-doc-rag/indexing",
		"/gov-doc-rag/query",
		"/gov-doc-rag/cluster/containers",
		"/gov-doc-rag/cluster/dataplane",
	}
	require.Len(t, mock.created, len(expected))
	for _, group := range expected {
		assert.Equal(t, "arn:aws:kms:us-east-1:123456789012:key/logs", mock.created[group], group)
		assert.Equal(t, int32(90), mock.retentions[group], group)
	}

	assert.Equal(t, "/gov-doc-rag/query", ctx.State.LogGroups["query"])
	assert.Empty(t, mock.queries, "no saved queries without diagnostics")
}

func TestProvision_DiagnosticQueries(t *testing.T) {
	mock := newMockLogs()
	ctx := testContext(t, mock, true)
	ctx.Config.Logging.SlowRequestMs = 750

	require.NoError(t, NewProvisioner().Provision(ctx))

	require.Len(t, mock.queries, 3)

	byName := make(map[string]*cloudwatchlogs.PutQueryDefinitionInput)
	for _, q := range mock.queries {
		byName[aws.ToString(q.Name)] = q
	}

	require.Contains(t, byName, "gov-doc-rag/slow-requests")
	assert.Contains(t, aws.ToString(byName["gov-doc-rag/slow-requests"].QueryString), "duration_ms > 750")
	assert.Equal(t, []string{"/gov-doc-rag/query"}, byName["gov-doc-rag/slow-requests"].LogGroupNames)

	assert.Contains(t, byName, "gov-doc-rag/error-rate")
	assert.Contains(t, byName, "gov-doc-rag/document-completion")
}
