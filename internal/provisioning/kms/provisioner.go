package kms

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/policy"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

// Key purposes. State maps are keyed by these.
const (
	PurposeStorage = "storage"
	PurposeSecrets = "secrets"
	PurposeLogs    = "logs"
)

// Provisioner handles the customer-managed encryption keys.
type Provisioner struct{}

// NewProvisioner creates a new key provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "kms"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	for _, purpose := range []string{PurposeStorage, PurposeSecrets, PurposeLogs} {
		doc := p.keyPolicy(ctx, purpose)
		if err := p.ensureKey(ctx, purpose, doc); err != nil {
			return err
		}
	}
	return nil
}

// keyPolicy builds the key policy for a purpose. Every key grants full
// administration to the account root; the storage and logs keys additionally
// grant the AWS services that encrypt on the application's behalf, with
// conditions pinning usage to this account's resources.
func (p *Provisioner) keyPolicy(ctx *provisioning.Context, purpose string) policy.Document {
	account := ctx.State.AccountID
	region := ctx.AWS.Region

	statements := []policy.Statement{{
		Sid:       "AccountAdministration",
		Effect:    policy.EffectAllow,
		Principal: &policy.Principal{AWS: []string{naming.RootARN(account)}},
		Action:    []string{"kms:*"},
		Resource:  []string{"*"},
	}}

	switch purpose {
	case PurposeStorage:
		statements = append(statements, policy.Statement{
			Sid:       "DocumentAnalysisService",
			Effect:    policy.EffectAllow,
			Principal: &policy.Principal{Service: []string{"textract.amazonaws.com"}},
			Action:    []string{"kms:Decrypt", "kms:GenerateDataKey"},
			Resource:  []string{"*"},
			Condition: policy.Condition{
				"StringEquals": {"aws:SourceAccount": account},
				"ArnLike":      {"aws:SourceArn": naming.TextractWildcardARN(region, account)},
			},
		})
	case PurposeLogs:
		statements = append(statements, policy.Statement{
			Sid:       "LogDeliveryService",
			Effect:    policy.EffectAllow,
			Principal: &policy.Principal{Service: []string{fmt.Sprintf("logs.%s.amazonaws.com", region)}},
			Action: []string{
				"kms:Encrypt*",
				"kms:Decrypt*",
				"kms:ReEncrypt*",
				"kms:GenerateDataKey*",
				"kms:Describe*",
			},
			Resource: []string{"*"},
			// The encryption context carries the bare log-group ARN, without
			// the trailing log-stream segment IAM resource entries use.
			Condition: policy.Condition{
				"ArnLike": {
					"kms:EncryptionContext:aws:logs:arn": naming.LogGroupARN(region, account, "/"+ctx.Config.Project+"/*"),
				},
			},
		})
	}

	return policy.NewDocument(statements...)
}

func (p *Provisioner) ensureKey(ctx *provisioning.Context, purpose string, doc policy.Document) error {
	alias := naming.KeyAlias(ctx.Config.Project, purpose)

	existing, err := ctx.AWS.KMS.DescribeKey(ctx, &kms.DescribeKeyInput{
		KeyId: aws.String(alias),
	})
	if err == nil {
		ctx.State.KeyIDs[purpose] = aws.ToString(existing.KeyMetadata.KeyId)
		ctx.State.KeyARNs[purpose] = aws.ToString(existing.KeyMetadata.Arn)
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "kms-key", alias, ctx.State.KeyIDs[purpose])
		return nil
	}
	if !awsplatform.IsNotFound(err) {
		return fmt.Errorf("failed to describe key %s: %w", alias, err)
	}

	policyJSON, err := doc.JSON()
	if err != nil {
		return err
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "kms-key", alias)
	created, err := ctx.AWS.KMS.CreateKey(ctx, &kms.CreateKeyInput{
		Description: aws.String(fmt.Sprintf("%s %s encryption key", ctx.Config.Project, purpose)),
		Policy:      aws.String(policyJSON),
		Tags: []kmstypes.Tag{
			{TagKey: aws.String("project"), TagValue: aws.String(ctx.Config.Project)},
			{TagKey: aws.String("purpose"), TagValue: aws.String(purpose)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create key %s: %w", alias, err)
	}
	keyID := aws.ToString(created.KeyMetadata.KeyId)
	ctx.State.KeyIDs[purpose] = keyID
	ctx.State.KeyARNs[purpose] = aws.ToString(created.KeyMetadata.Arn)

	_, err = ctx.AWS.KMS.CreateAlias(ctx, &kms.CreateAliasInput{
		AliasName:   aws.String(alias),
		TargetKeyId: aws.String(keyID),
	})
	if err != nil && !awsplatform.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create alias %s: %w", alias, err)
	}

	_, err = ctx.AWS.KMS.EnableKeyRotation(ctx, &kms.EnableKeyRotationInput{
		KeyId: aws.String(keyID),
	})
	if err != nil {
		return fmt.Errorf("failed to enable rotation for %s: %w", alias, err)
	}

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "kms-key", alias, keyID)
	return nil
}
