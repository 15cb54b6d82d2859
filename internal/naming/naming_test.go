package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	project := "gov-doc-rag"

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"vpc", VPC(project), "gov-doc-rag-vpc"},
		{"public subnet", PublicSubnet(project, "us-east-1a"), "gov-doc-rag-public-us-east-1a"},
		{"nat", NATGateway(project, "us-east-1b"), "gov-doc-rag-nat-us-east-1b"},
		{"cluster", Cluster(project), "gov-doc-rag"},
		{"node group", NodeGroup(project), "gov-doc-rag-workers"},
		{"workload role", WorkloadRole(project, "ingestion"), "gov-doc-rag-ingestion"},
		{"key alias", KeyAlias(project, "storage"), "alias/gov-doc-rag-storage"},
		{"repository", Repository(project, "api"), "gov-doc-rag/api"},
		{"log group", LogGroup(project, "query"), "/gov-doc-rag/query"},
		{"budget", Budget(project), "gov-doc-rag-monthly"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestARNConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"bucket", BucketARN("raw-docs"), "arn:aws:s3:::raw-docs"},
		{"bucket objects", BucketObjectsARN("raw-docs"), "arn:aws:s3:::raw-docs/*"},
		{"log group", LogGroupARN("us-east-1", "123456789012", "/p/ingestion"),
			"arn:aws:logs:us-east-1:123456789012:log-group:/p/ingestion"},
		{"role", RoleARN("123456789012", "p-query"), "arn:aws:iam::123456789012:role/p-query"},
		{"root", RootARN("123456789012"), "arn:aws:iam::123456789012:root"},
		{"oidc provider", OIDCProviderARN("123456789012", "oidc.eks.us-east-1.amazonaws.com/id/ABC"),
			"arn:aws:iam::123456789012:oidc-provider/oidc.eks.us-east-1.amazonaws.com/id/ABC"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
