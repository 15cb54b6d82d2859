package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Clients bundles the service clients the provisioners need. Fields are
// interfaces so tests can substitute mocks per service.
type Clients struct {
	Region string

	EC2     EC2API
	KMS     KMSAPI
	S3      S3API
	ECR     ECRAPI
	EKS     EKSAPI
	IAM     IAMAPI
	Logs    LogsAPI
	Secrets SecretsAPI
	Budgets BudgetsAPI
	STS     STSAPI
}

// NewClients builds real SDK clients from the ambient credential chain
// (environment, shared config, instance metadata) for the given region.
func NewClients(ctx context.Context, region string) (*Clients, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewClientsFromConfig(cfg), nil
}

// NewClientsFromConfig builds the client bundle from an already-resolved
// AWS config.
func NewClientsFromConfig(cfg aws.Config) *Clients {
	return &Clients{
		Region:  cfg.Region,
		EC2:     ec2.NewFromConfig(cfg),
		KMS:     kms.NewFromConfig(cfg),
		S3:      s3.NewFromConfig(cfg),
		ECR:     ecr.NewFromConfig(cfg),
		EKS:     eks.NewFromConfig(cfg),
		IAM:     iam.NewFromConfig(cfg),
		Logs:    cloudwatchlogs.NewFromConfig(cfg),
		Secrets: secretsmanager.NewFromConfig(cfg),
		Budgets: budgets.NewFromConfig(cfg),
		STS:     sts.NewFromConfig(cfg),
	}
}

// AccountID returns the caller's AWS account ID via STS.
func (c *Clients) AccountID(ctx context.Context) (string, error) {
	out, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to resolve caller identity: %w", err)
	}
	if out.Account == nil {
		return "", fmt.Errorf("caller identity response carried no account ID")
	}
	return *out.Account, nil
}
