package policy

import "fmt"

// GitHubOIDCIssuer is the federated issuer for CI deploy identities.
const GitHubOIDCIssuer = "token.actions.githubusercontent.com"

// STSAudience is the audience workload identity tokens are issued for.
const STSAudience = "sts.amazonaws.com"

// OIDCTrust builds the trust policy for a workload role: only tokens issued
// by the cluster's identity provider for the exact service account subject
// may assume it.
func OIDCTrust(providerARN, issuerHost, namespace, serviceAccount string) Document {
	return NewDocument(Statement{
		Effect:    EffectAllow,
		Principal: &Principal{Federated: providerARN},
		Action:    []string{"sts:AssumeRoleWithWebIdentity"},
		Condition: Condition{
			"StringEquals": {
				issuerHost + ":sub": fmt.Sprintf("system:serviceaccount:%s:%s", namespace, serviceAccount),
				issuerHost + ":aud": STSAudience,
			},
		},
	})
}

// GitHubTrust builds the trust policy for the optional CI identity, scoped
// to one source repository on GitHub's OIDC issuer.
func GitHubTrust(providerARN, owner, repo string) Document {
	return NewDocument(Statement{
		Effect:    EffectAllow,
		Principal: &Principal{Federated: providerARN},
		Action:    []string{"sts:AssumeRoleWithWebIdentity"},
		Condition: Condition{
			"StringEquals": {
				GitHubOIDCIssuer + ":aud": STSAudience,
			},
			"StringLike": {
				GitHubOIDCIssuer + ":sub": fmt.Sprintf("repo:%s/%s:*", owner, repo),
			},
		},
	})
}

// ServiceTrust builds the standard trust policy for an AWS service
// principal (the cluster and node roles).
func ServiceTrust(service string) Document {
	return NewDocument(Statement{
		Effect:    EffectAllow,
		Principal: &Principal{Service: []string{service}},
		Action:    []string{"sts:AssumeRole"},
	})
}
