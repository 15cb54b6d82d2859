package naming

import "fmt"

// Infrastructure resource names.

func VPC(project string) string {
	return fmt.Sprintf("%s-vpc", project)
}

func InternetGateway(project string) string {
	return fmt.Sprintf("%s-igw", project)
}

func PublicSubnet(project, zone string) string {
	return fmt.Sprintf("%s-public-%s", project, zone)
}

func PrivateSubnet(project, zone string) string {
	return fmt.Sprintf("%s-private-%s", project, zone)
}

func NATGateway(project, zone string) string {
	return fmt.Sprintf("%s-nat-%s", project, zone)
}

func PublicRouteTable(project string) string {
	return fmt.Sprintf("%s-public-rt", project)
}

func PrivateRouteTable(project, zone string) string {
	return fmt.Sprintf("%s-private-rt-%s", project, zone)
}

func Cluster(project string) string {
	return project
}

func NodeGroup(project string) string {
	return fmt.Sprintf("%s-workers", project)
}

func ClusterRole(project string) string {
	return fmt.Sprintf("%s-cluster", project)
}

func NodeRole(project string) string {
	return fmt.Sprintf("%s-node", project)
}

// WorkloadRole names the scoped identity for a workload (ingestion,
// indexing, query, ingress-controller, log-shipper, ci).
func WorkloadRole(project, workload string) string {
	return fmt.Sprintf("%s-%s", project, workload)
}

func KeyAlias(project, purpose string) string {
	return fmt.Sprintf("alias/%s-%s", project, purpose)
}

func Repository(project, service string) string {
	return fmt.Sprintf("%s/%s", project, service)
}

func LogGroup(project, workload string) string {
	return fmt.Sprintf("/%s/%s", project, workload)
}

func Budget(project string) string {
	return fmt.Sprintf("%s-monthly", project)
}

// ARN constructors. The policy layer composes least-privilege documents out
// of exactly these; nothing else mints ARNs.

func BucketARN(bucket string) string {
	return fmt.Sprintf("arn:aws:s3:::%s", bucket)
}

func BucketObjectsARN(bucket string) string {
	return fmt.Sprintf("arn:aws:s3:::%s/*", bucket)
}

func LogGroupARN(region, account, group string) string {
	return fmt.Sprintf("arn:aws:logs:%s:%s:log-group:%s", region, account, group)
}

func LogGroupWildcardARN(region, account, prefix string) string {
	return fmt.Sprintf("arn:aws:logs:%s:%s:log-group:%s:*", region, account, prefix)
}

func RoleARN(account, role string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", account, role)
}

func RootARN(account string) string {
	return fmt.Sprintf("arn:aws:iam::%s:root", account)
}

func OIDCProviderARN(account, issuerHost string) string {
	return fmt.Sprintf("arn:aws:iam::%s:oidc-provider/%s", account, issuerHost)
}

func SecretARN(region, account, name string) string {
	// Secrets Manager appends a random 6-character suffix to secret ARNs.
	return fmt.Sprintf("arn:aws:secretsmanager:%s:%s:secret:%s-??????", region, account, name)
}

func FoundationModelARN(region string) string {
	return fmt.Sprintf("arn:aws:bedrock:%s::foundation-model/*", region)
}

func TextractWildcardARN(region, account string) string {
	return fmt.Sprintf("arn:aws:textract:%s:%s:*", region, account)
}
