package storage

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/policy"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/kms"
)

// Logical bucket names. State.Buckets is keyed by these.
const (
	BucketRaw       = "raw"
	BucketProcessed = "processed"
	BucketIndex     = "index"
)

// Provisioner handles the artifact buckets.
type Provisioner struct{}

// NewProvisioner creates a new storage provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "storage"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	buckets := map[string]string{
		BucketRaw:       ctx.Config.Buckets.Raw,
		BucketProcessed: ctx.Config.Buckets.Processed,
		BucketIndex:     ctx.Config.Buckets.Index,
	}

	for _, logical := range []string{BucketRaw, BucketProcessed, BucketIndex} {
		name := buckets[logical]
		if err := p.ensureBucket(ctx, name); err != nil {
			return err
		}
		ctx.State.Buckets[logical] = name
	}

	return p.attachRawBucketPolicy(ctx)
}

func (p *Provisioner) ensureBucket(ctx *provisioning.Context, name string) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(name)}
	// us-east-1 is the one region that rejects an explicit location
	// constraint.
	if ctx.AWS.Region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(ctx.AWS.Region),
		}
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "bucket", name)
	_, err := ctx.AWS.S3.CreateBucket(ctx, input)
	switch {
	case err == nil:
		provisioning.LogResourceCreated(ctx.Observer, p.Name(), "bucket", name, name)
	case awsplatform.IsAlreadyExists(err):
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "bucket", name, name)
	default:
		return fmt.Errorf("failed to create bucket %s: %w", name, err)
	}

	_, err = ctx.AWS.S3.PutBucketVersioning(ctx, &s3.PutBucketVersioningInput{
		Bucket: aws.String(name),
		VersioningConfiguration: &s3types.VersioningConfiguration{
			Status: s3types.BucketVersioningStatusEnabled,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to enable versioning on %s: %w", name, err)
	}

	_, err = ctx.AWS.S3.PutBucketEncryption(ctx, &s3.PutBucketEncryptionInput{
		Bucket: aws.String(name),
		ServerSideEncryptionConfiguration: &s3types.ServerSideEncryptionConfiguration{
			Rules: []s3types.ServerSideEncryptionRule{{
				ApplyServerSideEncryptionByDefault: &s3types.ServerSideEncryptionByDefault{
					SSEAlgorithm:   s3types.ServerSideEncryptionAwsKms,
					KMSMasterKeyID: aws.String(ctx.State.KeyARNs[kms.PurposeStorage]),
				},
				BucketKeyEnabled: aws.Bool(true),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to configure encryption on %s: %w", name, err)
	}

	_, err = ctx.AWS.S3.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(name),
		PublicAccessBlockConfiguration: &s3types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(true),
			BlockPublicPolicy:     aws.Bool(true),
			IgnorePublicAcls:      aws.Bool(true),
			RestrictPublicBuckets: aws.Bool(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to block public access on %s: %w", name, err)
	}

	return nil
}

// attachRawBucketPolicy lets the document analysis service read uploads from
// the raw bucket, but only when acting for this account.
func (p *Provisioner) attachRawBucketPolicy(ctx *provisioning.Context) error {
	raw := ctx.State.Buckets[BucketRaw]

	doc := policy.NewDocument(policy.Statement{
		Sid:       "DocumentAnalysisRead",
		Effect:    policy.EffectAllow,
		Principal: &policy.Principal{Service: []string{"textract.amazonaws.com"}},
		Action:    []string{"s3:GetObject", "s3:ListBucket"},
		Resource:  []string{naming.BucketARN(raw), naming.BucketObjectsARN(raw)},
		Condition: policy.Condition{
			"StringEquals": {"aws:SourceAccount": ctx.State.AccountID},
			"ArnLike":      {"aws:SourceArn": naming.TextractWildcardARN(ctx.AWS.Region, ctx.State.AccountID)},
		},
	})
	policyJSON, err := doc.JSON()
	if err != nil {
		return err
	}

	_, err = ctx.AWS.S3.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(raw),
		Policy: aws.String(policyJSON),
	})
	if err != nil {
		return fmt.Errorf("failed to attach raw bucket policy: %w", err)
	}
	return nil
}
