package secrets

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/kms"
)

// placeholderValue marks a secret that has not been populated yet.
const placeholderValue = "unset"

// Provisioner handles the placeholder secret entries.
type Provisioner struct{}

// NewProvisioner creates a new secrets provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "secrets"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	for _, name := range ctx.Config.SecretNames() {
		if err := p.ensureSecret(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provisioner) ensureSecret(ctx *provisioning.Context, name string) error {
	_, err := ctx.AWS.Secrets.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(name),
	})
	if err == nil {
		// Already populated (or at least created); leave it alone.
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "secret", name, "")
		return nil
	}
	if !awsplatform.IsNotFound(err) {
		return fmt.Errorf("failed to describe secret %s: %w", name, err)
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "secret", name)
	_, err = ctx.AWS.Secrets.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(name),
		SecretString: aws.String(placeholderValue),
		KmsKeyId:     aws.String(ctx.State.KeyARNs[kms.PurposeSecrets]),
		Tags: []smtypes.Tag{
			{Key: aws.String("project"), Value: aws.String(ctx.Config.Project)},
		},
	})
	if err != nil && !awsplatform.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create secret %s: %w", name, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "secret", name, "")
	return nil
}
