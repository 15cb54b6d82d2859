package cluster

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AayushV4/gov-doc-rag/internal/config"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

type mockEKS struct {
	clusterInput   *eks.CreateClusterInput
	nodegroupInput *eks.CreateNodegroupInput
}

func (m *mockEKS) CreateCluster(_ context.Context, params *eks.CreateClusterInput, _ ...func(*eks.Options)) (*eks.CreateClusterOutput, error) {
	m.clusterInput = params
	return &eks.CreateClusterOutput{}, nil
}

func (m *mockEKS) DescribeCluster(_ context.Context, params *eks.DescribeClusterInput, _ ...func(*eks.Options)) (*eks.DescribeClusterOutput, error) {
	if m.clusterInput == nil {
		return nil, &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "no cluster"}
	}
	return &eks.DescribeClusterOutput{Cluster: &ekstypes.Cluster{
		Name:     params.Name,
		Status:   ekstypes.ClusterStatusActive,
		Endpoint: aws.String("https://example.eks.amazonaws.com"),
		CertificateAuthority: &ekstypes.Certificate{
			Data: aws.String("Y2EtZGF0YQ=="),
		},
		ResourcesVpcConfig: &ekstypes.VpcConfigResponse{
			ClusterSecurityGroupId: aws.String("sg-0001"),
		},
		Identity: &ekstypes.Identity{Oidc: &ekstypes.OIDC{
			Issuer: aws.String("https://oidc.eks.us-east-1.amazonaws.com/id/EXAMPLE"),
		}},
	}}, nil
}

func (m *mockEKS) CreateNodegroup(_ context.Context, params *eks.CreateNodegroupInput, _ ...func(*eks.Options)) (*eks.CreateNodegroupOutput, error) {
	m.nodegroupInput = params
	return &eks.CreateNodegroupOutput{}, nil
}

func (m *mockEKS) DescribeNodegroup(_ context.Context, params *eks.DescribeNodegroupInput, _ ...func(*eks.Options)) (*eks.DescribeNodegroupOutput, error) {
	if m.nodegroupInput == nil {
		return nil, &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "no nodegroup"}
	}
	return &eks.DescribeNodegroupOutput{Nodegroup: &ekstypes.Nodegroup{
		NodegroupName: params.NodegroupName,
		Status:        ekstypes.NodegroupStatusActive,
	}}, nil
}

func (m *mockEKS) DeleteCluster(context.Context, *eks.DeleteClusterInput, ...func(*eks.Options)) (*eks.DeleteClusterOutput, error) {
	return &eks.DeleteClusterOutput{}, nil
}

func (m *mockEKS) DeleteNodegroup(context.Context, *eks.DeleteNodegroupInput, ...func(*eks.Options)) (*eks.DeleteNodegroupOutput, error) {
	return &eks.DeleteNodegroupOutput{}, nil
}

type mockIAM struct {
	roles        map[string]string // role name -> trust policy JSON
	attachments  map[string][]string
	oidcProvider *iam.CreateOpenIDConnectProviderInput
}

func newMockIAM() *mockIAM {
	return &mockIAM{roles: make(map[string]string), attachments: make(map[string][]string)}
}

func (m *mockIAM) CreateRole(_ context.Context, params *iam.CreateRoleInput, _ ...func(*iam.Options)) (*iam.CreateRoleOutput, error) {
	name := aws.ToString(params.RoleName)
	m.roles[name] = aws.ToString(params.AssumeRolePolicyDocument)
	return &iam.CreateRoleOutput{Role: &iamtypes.Role{
		RoleName: params.RoleName,
		Arn:      aws.String("arn:aws:iam::123456789012:role/" + name),
	}}, nil
}

func (m *mockIAM) GetRole(context.Context, *iam.GetRoleInput, ...func(*iam.Options)) (*iam.GetRoleOutput, error) {
	return nil, &smithy.GenericAPIError{Code: "NoSuchEntity", Message: "not found"}
}

func (m *mockIAM) UpdateAssumeRolePolicy(context.Context, *iam.UpdateAssumeRolePolicyInput, ...func(*iam.Options)) (*iam.UpdateAssumeRolePolicyOutput, error) {
	return &iam.UpdateAssumeRolePolicyOutput{}, nil
}

func (m *mockIAM) PutRolePolicy(context.Context, *iam.PutRolePolicyInput, ...func(*iam.Options)) (*iam.PutRolePolicyOutput, error) {
	return &iam.PutRolePolicyOutput{}, nil
}

func (m *mockIAM) AttachRolePolicy(_ context.Context, params *iam.AttachRolePolicyInput, _ ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error) {
	name := aws.ToString(params.RoleName)
	m.attachments[name] = append(m.attachments[name], aws.ToString(params.PolicyArn))
	return &iam.AttachRolePolicyOutput{}, nil
}

func (m *mockIAM) CreateOpenIDConnectProvider(_ context.Context, params *iam.CreateOpenIDConnectProviderInput, _ ...func(*iam.Options)) (*iam.CreateOpenIDConnectProviderOutput, error) {
	m.oidcProvider = params
	return &iam.CreateOpenIDConnectProviderOutput{
		OpenIDConnectProviderArn: aws.String("arn:aws:iam::123456789012:oidc-provider/oidc.eks.us-east-1.amazonaws.com/id/EXAMPLE"),
	}, nil
}

func (m *mockIAM) ListOpenIDConnectProviders(context.Context, *iam.ListOpenIDConnectProvidersInput, ...func(*iam.Options)) (*iam.ListOpenIDConnectProvidersOutput, error) {
	return &iam.ListOpenIDConnectProvidersOutput{}, nil
}

func (m *mockIAM) GetOpenIDConnectProvider(context.Context, *iam.GetOpenIDConnectProviderInput, ...func(*iam.Options)) (*iam.GetOpenIDConnectProviderOutput, error) {
	return &iam.GetOpenIDConnectProviderOutput{}, nil
}

func (m *mockIAM) DeleteRole(context.Context, *iam.DeleteRoleInput, ...func(*iam.Options)) (*iam.DeleteRoleOutput, error) {
	return &iam.DeleteRoleOutput{}, nil
}

func (m *mockIAM) DeleteRolePolicy(context.Context, *iam.DeleteRolePolicyInput, ...func(*iam.Options)) (*iam.DeleteRolePolicyOutput, error) {
	return &iam.DeleteRolePolicyOutput{}, nil
}

func (m *mockIAM) ListRolePolicies(context.Context, *iam.ListRolePoliciesInput, ...func(*iam.Options)) (*iam.ListRolePoliciesOutput, error) {
	return &iam.ListRolePoliciesOutput{}, nil
}

func (m *mockIAM) ListAttachedRolePolicies(context.Context, *iam.ListAttachedRolePoliciesInput, ...func(*iam.Options)) (*iam.ListAttachedRolePoliciesOutput, error) {
	return &iam.ListAttachedRolePoliciesOutput{}, nil
}

func (m *mockIAM) DetachRolePolicy(context.Context, *iam.DetachRolePolicyInput, ...func(*iam.Options)) (*iam.DetachRolePolicyOutput, error) {
	return &iam.DetachRolePolicyOutput{}, nil
}

func (m *mockIAM) DeleteOpenIDConnectProvider(context.Context, *iam.DeleteOpenIDConnectProviderInput, ...func(*iam.Options)) (*iam.DeleteOpenIDConnectProviderOutput, error) {
	return &iam.DeleteOpenIDConnectProviderOutput{}, nil
}

type nopObserver struct{}

func (nopObserver) Printf(string, ...interface{})                      {}
func (nopObserver) Event(provisioning.Event)                           {}
func (nopObserver) WithFields(map[string]string) provisioning.Observer { return nopObserver{} }

func testContext(t *testing.T, mockEKSClient *mockEKS, mockIAMClient *mockIAM) *provisioning.Context {
	t.Helper()
	cfg := &config.Config{Project: "gov-doc-rag", Region: "us-east-1"}
	require.NoError(t, cfg.ApplyDefaults())

	state := provisioning.NewState()
	state.AccountID = "123456789012"
	state.PrivateSubnetIDs = []string{"subnet-a", "subnet-b"}

	return &provisioning.Context{
		Context:  context.Background(),
		Config:   cfg,
		State:    state,
		AWS:      &awsplatform.Clients{Region: "us-east-1", EKS: mockEKSClient, IAM: mockIAMClient},
		Observer: nopObserver{},
	}
}

func TestProvision_ClusterOnPrivateSubnetsWithControlPlaneLogs(t *testing.T) {
	mockEKSClient := &mockEKS{}
	mockIAMClient := newMockIAM()
	ctx := testContext(t, mockEKSClient, mockIAMClient)

	fetchThumbprint = func(context.Context, string) (string, error) { return "deadbeef", nil }
	t.Cleanup(func() { fetchThumbprint = awsplatform.Thumbprint })

	require.NoError(t, NewProvisioner().Provision(ctx))

	in := mockEKSClient.clusterInput
	require.NotNil(t, in)
	assert.Equal(t, "gov-doc-rag", aws.ToString(in.Name))
	assert.Equal(t, []string{"subnet-a", "subnet-b"}, in.ResourcesVpcConfig.SubnetIds)
	require.Len(t, in.Logging.ClusterLogging, 1)
	assert.ElementsMatch(t, []ekstypes.LogType{
		ekstypes.LogTypeApi, ekstypes.LogTypeAudit, ekstypes.LogTypeAuthenticator,
	}, in.Logging.ClusterLogging[0].Types)

	assert.Equal(t, "https://example.eks.amazonaws.com", ctx.State.ClusterEndpoint)
	assert.Equal(t, "Y2EtZGF0YQ==", ctx.State.ClusterCA)
	assert.Equal(t, "sg-0001", ctx.State.ClusterSecurityGroupID)
	assert.Equal(t, "https://oidc.eks.us-east-1.amazonaws.com/id/EXAMPLE", ctx.State.OIDCIssuer)
}

func TestProvision_NodeGroupScaling(t *testing.T) {
	mockEKSClient := &mockEKS{}
	mockIAMClient := newMockIAM()
	ctx := testContext(t, mockEKSClient, mockIAMClient)

	fetchThumbprint = func(context.Context, string) (string, error) { return "deadbeef", nil }
	t.Cleanup(func() { fetchThumbprint = awsplatform.Thumbprint })

	require.NoError(t, NewProvisioner().Provision(ctx))

	ng := mockEKSClient.nodegroupInput
	require.NotNil(t, ng)
	assert.Equal(t, "gov-doc-rag-workers", aws.ToString(ng.NodegroupName))
	assert.Equal(t, []string{"subnet-a", "subnet-b"}, ng.Subnets)
	assert.Equal(t, int32(1), aws.ToInt32(ng.ScalingConfig.MinSize))
	assert.Equal(t, int32(2), aws.ToInt32(ng.ScalingConfig.DesiredSize))
	assert.Equal(t, int32(3), aws.ToInt32(ng.ScalingConfig.MaxSize))
}

func TestProvision_ServiceRolesAndOIDCProvider(t *testing.T) {
	mockEKSClient := &mockEKS{}
	mockIAMClient := newMockIAM()
	ctx := testContext(t, mockEKSClient, mockIAMClient)

	fetchThumbprint = func(context.Context, string) (string, error) { return "deadbeef", nil }
	t.Cleanup(func() { fetchThumbprint = awsplatform.Thumbprint })

	require.NoError(t, NewProvisioner().Provision(ctx))

	assert.Contains(t, mockIAMClient.roles["gov-doc-rag-cluster"], "eks.amazonaws.com")
	assert.Contains(t, mockIAMClient.roles["gov-doc-rag-node"], "ec2.amazonaws.com")
	assert.ElementsMatch(t, clusterManagedPolicies, mockIAMClient.attachments["gov-doc-rag-cluster"])
	assert.ElementsMatch(t, nodeManagedPolicies, mockIAMClient.attachments["gov-doc-rag-node"])

	require.NotNil(t, mockIAMClient.oidcProvider)
	assert.Equal(t, ctx.State.OIDCIssuer, aws.ToString(mockIAMClient.oidcProvider.Url))
	assert.Equal(t, []string{"sts.amazonaws.com"}, mockIAMClient.oidcProvider.ClientIDList)
	assert.Equal(t, []string{"deadbeef"}, mockIAMClient.oidcProvider.ThumbprintList)
	assert.NotEmpty(t, ctx.State.OIDCProviderARN)
}
