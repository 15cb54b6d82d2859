package policy

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScope() Scope {
	return Scope{
		AccountID:       "123456789012",
		Region:          "us-east-1",
		Project:         "gov-doc-rag",
		RawBucket:       "gov-doc-rag-raw",
		ProcessedBucket: "gov-doc-rag-processed",
		IndexBucket:     "gov-doc-rag-index",
		StorageKeyARN:   "arn:aws:kms:us-east-1:123456789012:key/11111111-2222-3333-4444-555555555555",
	}
}

// allowedPrefixes are the ARN prefixes a workload policy may reference:
// the deployment's buckets, keys, log groups, secrets, and the regional
// service namespaces of the external collaborators.
func allowedPrefixes(s Scope) []string {
	return []string{
		"arn:aws:s3:::" + s.RawBucket,
		"arn:aws:s3:::" + s.ProcessedBucket,
		"arn:aws:s3:::" + s.IndexBucket,
		s.StorageKeyARN,
		"arn:aws:logs:" + s.Region + ":" + s.AccountID + ":log-group:/" + s.Project + "/",
		"arn:aws:secretsmanager:" + s.Region + ":" + s.AccountID + ":secret:" + s.Project + "/",
		"arn:aws:textract:" + s.Region + ":" + s.AccountID + ":",
		"arn:aws:translate:" + s.Region + ":" + s.AccountID + ":",
		"arn:aws:bedrock:" + s.Region + "::foundation-model/",
		"arn:aws:elasticloadbalancing:" + s.Region + ":" + s.AccountID + ":",
		"arn:aws:ec2:" + s.Region + ":" + s.AccountID + ":",
		"arn:aws:ecr:" + s.Region + ":" + s.AccountID + ":repository/" + s.Project + "/",
		"arn:aws:eks:" + s.Region + ":" + s.AccountID + ":cluster/" + s.Project,
	}
}

// Every workload policy is scoped to resources the deployment owns. The
// only wildcard resources are the two service-linked-role statements the
// provider mandates for the ingress controller.
func TestForWorkload_LeastPrivilege(t *testing.T) {
	s := testScope()
	workloads := append(RuntimeWorkloads(), WorkloadCI)

	for _, w := range workloads {
		t.Run(string(w), func(t *testing.T) {
			doc, err := ForWorkload(w, s)
			require.NoError(t, err)
			require.NotEmpty(t, doc.Statement)

			wildcards := 0
			for _, stmt := range doc.Statement {
				require.Equal(t, EffectAllow, stmt.Effect)
				require.NotEmpty(t, stmt.Action)

				for _, res := range stmt.Resource {
					if res == "*" {
						wildcards++
						assert.Contains(t, stmt.Action, "iam:CreateServiceLinkedRole",
							"wildcard resource outside a service-linked-role statement")
						assert.NotEmpty(t, stmt.Condition, "service-linked-role statement must be conditioned")
						continue
					}
					assertScoped(t, res, s)
				}
			}

			if w == WorkloadIngressController {
				assert.Equal(t, 2, wildcards, "ingress controller carries exactly the two mandated wildcard statements")
			} else {
				assert.Zero(t, wildcards, "workload %s must not grant wildcard resources", w)
			}
		})
	}
}

func assertScoped(t *testing.T, res string, s Scope) {
	t.Helper()
	for _, prefix := range allowedPrefixes(s) {
		if strings.HasPrefix(res, prefix) {
			return
		}
	}
	t.Errorf("resource %q is outside the workload scope", res)
}

func TestForWorkload_Unknown(t *testing.T) {
	_, err := ForWorkload(Workload("router"), testScope())
	assert.ErrorContains(t, err, "unknown workload")
}

func TestIngestionPolicy_Surface(t *testing.T) {
	doc, err := ForWorkload(WorkloadIngestion, testScope())
	require.NoError(t, err)

	resources := doc.Resources()
	assert.Contains(t, resources, "arn:aws:s3:::gov-doc-rag-raw")
	assert.Contains(t, resources, "arn:aws:s3:::gov-doc-rag-processed/*")
	assert.NotContains(t, resources, "arn:aws:s3:::gov-doc-rag-index",
		"ingestion has no business reading the index bucket")

	var actions []string
	for _, stmt := range doc.Statement {
		actions = append(actions, stmt.Action...)
	}
	assert.Contains(t, actions, "textract:StartDocumentAnalysis")
	assert.Contains(t, actions, "kms:GenerateDataKey")
	assert.NotContains(t, actions, "bedrock:InvokeModel")
}

func TestQueryPolicy_Surface(t *testing.T) {
	doc, err := ForWorkload(WorkloadQuery, testScope())
	require.NoError(t, err)

	var actions []string
	for _, stmt := range doc.Statement {
		actions = append(actions, stmt.Action...)
	}
	assert.Contains(t, actions, "bedrock:InvokeModel")
	assert.Contains(t, actions, "translate:TranslateText")
	assert.NotContains(t, actions, "s3:PutObject", "query is read-only on storage")

	assert.NotContains(t, doc.Resources(), "arn:aws:s3:::gov-doc-rag-raw")
}

func TestSecretsConditionedOnProjectTag(t *testing.T) {
	for _, w := range []Workload{WorkloadIndexing, WorkloadQuery} {
		doc, err := ForWorkload(w, testScope())
		require.NoError(t, err)

		found := false
		for _, stmt := range doc.Statement {
			for _, action := range stmt.Action {
				if action == "secretsmanager:GetSecretValue" {
					found = true
					require.Equal(t, "gov-doc-rag", stmt.Condition["StringEquals"]["secretsmanager:ResourceTag/project"])
				}
			}
		}
		assert.True(t, found, "workload %s should read project secrets", w)
	}
}

func TestLogShipperPolicy_ClusterPrefixOnly(t *testing.T) {
	doc, err := ForWorkload(WorkloadLogShipper, testScope())
	require.NoError(t, err)

	for _, res := range doc.Resources() {
		assert.Contains(t, res, ":log-group:/gov-doc-rag/cluster/")
	}
}

func TestDocumentJSON(t *testing.T) {
	doc, err := ForWorkload(WorkloadIngestion, testScope())
	require.NoError(t, err)

	raw, err := doc.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, Version2012, decoded["Version"])
	assert.NotContains(t, raw, `"Principal"`, "identity policies carry no principal")
}

func TestServiceAccount(t *testing.T) {
	ns, name := WorkloadIngressController.ServiceAccount()
	assert.Equal(t, "kube-system", ns)
	assert.Equal(t, "aws-load-balancer-controller", name)

	ns, name = WorkloadQuery.ServiceAccount()
	assert.Empty(t, ns, "document workloads default to the project namespace")
	assert.Equal(t, "query", name)
}
