package endpoints

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AayushV4/gov-doc-rag/internal/config"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

type endpointsOnlyEC2 struct {
	awsplatform.EC2API

	created []*ec2.CreateVpcEndpointInput
}

func (m *endpointsOnlyEC2) CreateVpcEndpoint(_ context.Context, params *ec2.CreateVpcEndpointInput, _ ...func(*ec2.Options)) (*ec2.CreateVpcEndpointOutput, error) {
	m.created = append(m.created, params)
	return &ec2.CreateVpcEndpointOutput{}, nil
}

func (m *endpointsOnlyEC2) DescribeVpcEndpoints(context.Context, *ec2.DescribeVpcEndpointsInput, ...func(*ec2.Options)) (*ec2.DescribeVpcEndpointsOutput, error) {
	return &ec2.DescribeVpcEndpointsOutput{}, nil
}

type nopObserver struct{}

func (nopObserver) Printf(string, ...interface{})                      {}
func (nopObserver) Event(provisioning.Event)                           {}
func (nopObserver) WithFields(map[string]string) provisioning.Observer { return nopObserver{} }

func TestProvision_GatewayAndInterfaceEndpoints(t *testing.T) {
	mock := &endpointsOnlyEC2{}
	state := provisioning.NewState()
	state.VPCID = "vpc-0001"
	state.PrivateSubnetIDs = []string{"subnet-a", "subnet-b"}
	state.PrivateRouteTableIDs = []string{"rtb-a", "rtb-b"}
	state.ClusterSecurityGroupID = "sg-0001"

	ctx := &provisioning.Context{
		Context:  context.Background(),
		Config:   &config.Config{Project: "gov-doc-rag", Region: "us-east-1"},
		State:    state,
		AWS:      &awsplatform.Clients{Region: "us-east-1", EC2: mock},
		Observer: nopObserver{},
	}

	require.NoError(t, NewProvisioner().Provision(ctx))

	byService := make(map[string]*ec2.CreateVpcEndpointInput)
	for _, in := range mock.created {
		byService[aws.ToString(in.ServiceName)] = in
	}

	gw := byService["com.amazonaws.us-east-1.s3"]
	require.NotNil(t, gw)
	assert.Equal(t, ec2types.VpcEndpointTypeGateway, gw.VpcEndpointType)
	assert.Equal(t, []string{"rtb-a", "rtb-b"}, gw.RouteTableIds)

	for _, service := range []string{
		"ecr.api", "ecr.dkr", "logs", "sts", "kms",
		"secretsmanager", "textract", "bedrock-runtime", "translate",
	} {
		in := byService["com.amazonaws.us-east-1."+service]
		require.NotNil(t, in, service)
		assert.Equal(t, ec2types.VpcEndpointTypeInterface, in.VpcEndpointType, service)
		assert.Equal(t, []string{"subnet-a", "subnet-b"}, in.SubnetIds, service)
		assert.Equal(t, []string{"sg-0001"}, in.SecurityGroupIds, service)
		assert.True(t, aws.ToBool(in.PrivateDnsEnabled), service)
	}

	assert.Len(t, mock.created, 10)
}
