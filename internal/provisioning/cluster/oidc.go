package cluster

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/policy"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

// fetchThumbprint is swappable for tests.
var fetchThumbprint = awsplatform.Thumbprint

// ensureOIDCProvider registers the cluster's OIDC issuer as an IAM identity
// provider so workload roles can trust service account tokens. The issuer
// thumbprint is fetched live; it changes whenever the issuer's CA does.
func (p *Provisioner) ensureOIDCProvider(ctx *provisioning.Context) error {
	if ctx.State.OIDCIssuer == "" {
		return fmt.Errorf("cluster reported no OIDC issuer")
	}
	issuerHost := strings.TrimPrefix(ctx.State.OIDCIssuer, "https://")
	providerARN := naming.OIDCProviderARN(ctx.State.AccountID, issuerHost)

	existing, err := ctx.AWS.IAM.ListOpenIDConnectProviders(ctx, &iam.ListOpenIDConnectProvidersInput{})
	if err != nil {
		return fmt.Errorf("failed to list OIDC providers: %w", err)
	}
	for _, prov := range existing.OpenIDConnectProviderList {
		if aws.ToString(prov.Arn) == providerARN {
			ctx.State.OIDCProviderARN = providerARN
			provisioning.LogResourceExists(ctx.Observer, p.Name(), "oidc-provider", issuerHost, providerARN)
			return nil
		}
	}

	thumbprint, err := fetchThumbprint(ctx, ctx.State.OIDCIssuer)
	if err != nil {
		return fmt.Errorf("failed to compute issuer thumbprint: %w", err)
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "oidc-provider", issuerHost)
	created, err := ctx.AWS.IAM.CreateOpenIDConnectProvider(ctx, &iam.CreateOpenIDConnectProviderInput{
		Url:            aws.String(ctx.State.OIDCIssuer),
		ClientIDList:   []string{policy.STSAudience},
		ThumbprintList: []string{thumbprint},
	})
	if err != nil {
		if awsplatform.IsAlreadyExists(err) {
			ctx.State.OIDCProviderARN = providerARN
			return nil
		}
		return fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	ctx.State.OIDCProviderARN = aws.ToString(created.OpenIDConnectProviderArn)
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "oidc-provider", issuerHost, ctx.State.OIDCProviderARN)
	return nil
}
