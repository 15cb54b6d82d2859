package registry

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/kms"
)

// Services with container images. State.RegistryURLs is keyed by these.
var Services = []string{"ingestor", "indexer", "api", "web"}

// Provisioner handles the image repositories.
type Provisioner struct{}

// NewProvisioner creates a new registry provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "registry"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	for _, service := range Services {
		if err := p.ensureRepository(ctx, service); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provisioner) ensureRepository(ctx *provisioning.Context, service string) error {
	name := naming.Repository(ctx.Config.Project, service)

	existing, err := ctx.AWS.ECR.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{name},
	})
	if err == nil && len(existing.Repositories) > 0 {
		ctx.State.RegistryURLs[service] = aws.ToString(existing.Repositories[0].RepositoryUri)
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "repository", name, ctx.State.RegistryURLs[service])
		return nil
	}
	if err != nil && !awsplatform.IsNotFound(err) {
		return fmt.Errorf("failed to describe repository %s: %w", name, err)
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "repository", name)
	created, err := ctx.AWS.ECR.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RepositoryName:     aws.String(name),
		ImageTagMutability: ecrtypes.ImageTagMutabilityImmutable,
		ImageScanningConfiguration: &ecrtypes.ImageScanningConfiguration{
			ScanOnPush: true,
		},
		EncryptionConfiguration: &ecrtypes.EncryptionConfiguration{
			EncryptionType: ecrtypes.EncryptionTypeKms,
			KmsKey:         aws.String(ctx.State.KeyARNs[kms.PurposeStorage]),
		},
		Tags: []ecrtypes.Tag{
			{Key: aws.String("project"), Value: aws.String(ctx.Config.Project)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create repository %s: %w", name, err)
	}
	ctx.State.RegistryURLs[service] = aws.ToString(created.Repository.RepositoryUri)
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "repository", name, ctx.State.RegistryURLs[service])
	return nil
}
