package policy

import (
	"fmt"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
)

// Workload identifies a policy variant. Each runtime workload maps to one
// scoped role; CI is a deploy-time bootstrap identity, not a runtime one.
type Workload string

const (
	WorkloadIngestion         Workload = "ingestion"
	WorkloadIndexing          Workload = "indexing"
	WorkloadQuery             Workload = "query"
	WorkloadIngressController Workload = "ingress-controller"
	WorkloadLogShipper        Workload = "log-shipper"
	WorkloadCI                Workload = "ci"
)

// RuntimeWorkloads are the workloads that always get a role, in creation
// order. CI is appended only when enabled in config.
func RuntimeWorkloads() []Workload {
	return []Workload{
		WorkloadIngestion,
		WorkloadIndexing,
		WorkloadQuery,
		WorkloadIngressController,
		WorkloadLogShipper,
	}
}

// ServiceAccount returns the in-cluster service account a workload runs as.
// The ingress controller lives in kube-system; document workloads share the
// project namespace.
func (w Workload) ServiceAccount() (namespace, name string) {
	switch w {
	case WorkloadIngressController:
		return "kube-system", "aws-load-balancer-controller"
	case WorkloadLogShipper:
		return "kube-system", "log-shipper"
	default:
		return "", string(w)
	}
}

// Scope carries the resource identities a policy may reference. ForWorkload
// never mints an ARN outside this set (plus the per-workload log prefix).
type Scope struct {
	AccountID string
	Region    string
	Project   string

	RawBucket       string
	ProcessedBucket string
	IndexBucket     string

	StorageKeyARN string
}

func (s Scope) logPrefix(workload string) []string {
	group := naming.LogGroup(s.Project, workload)
	return []string{
		naming.LogGroupARN(s.Region, s.AccountID, group),
		naming.LogGroupWildcardARN(s.Region, s.AccountID, group),
	}
}

func (s Scope) bucketPair(bucket string) []string {
	return []string{naming.BucketARN(bucket), naming.BucketObjectsARN(bucket)}
}

func (s Scope) projectSecretsARN() string {
	return naming.SecretARN(s.Region, s.AccountID, s.Project+"/*")
}

// ForWorkload assembles the minimal policy document for a workload variant.
func ForWorkload(w Workload, s Scope) (Document, error) {
	switch w {
	case WorkloadIngestion:
		return ingestionPolicy(s), nil
	case WorkloadIndexing:
		return indexingPolicy(s), nil
	case WorkloadQuery:
		return queryPolicy(s), nil
	case WorkloadIngressController:
		return ingressControllerPolicy(s), nil
	case WorkloadLogShipper:
		return logShipperPolicy(s), nil
	case WorkloadCI:
		return ciPolicy(s), nil
	default:
		return Document{}, fmt.Errorf("unknown workload %q", w)
	}
}

// ingestion writes raw documents, reads and writes processed output, drives
// the document-analysis service, and uses the storage key.
func ingestionPolicy(s Scope) Document {
	return NewDocument(
		Statement{
			Sid:      "Artifacts",
			Effect:   EffectAllow,
			Action:   []string{"s3:GetObject", "s3:PutObject", "s3:ListBucket"},
			Resource: append(s.bucketPair(s.RawBucket), s.bucketPair(s.ProcessedBucket)...),
		},
		Statement{
			Sid:    "DocumentAnalysis",
			Effect: EffectAllow,
			Action: []string{
				"textract:StartDocumentAnalysis",
				"textract:GetDocumentAnalysis",
				"textract:DetectDocumentText",
			},
			Resource: []string{naming.TextractWildcardARN(s.Region, s.AccountID)},
		},
		Statement{
			Sid:      "StorageKey",
			Effect:   EffectAllow,
			Action:   []string{"kms:Decrypt", "kms:Encrypt", "kms:GenerateDataKey"},
			Resource: []string{s.StorageKeyARN},
		},
		logStatement(s, string(WorkloadIngestion)),
	)
}

// indexing reads processed chunks, embeds them via the model-inference
// endpoint, and reads the project's vector store credentials.
func indexingPolicy(s Scope) Document {
	return NewDocument(
		Statement{
			Sid:      "ProcessedRead",
			Effect:   EffectAllow,
			Action:   []string{"s3:GetObject", "s3:ListBucket"},
			Resource: s.bucketPair(s.ProcessedBucket),
		},
		modelInvokeStatement(s),
		projectSecretsStatement(s),
		logStatement(s, string(WorkloadIndexing)),
	)
}

// query reads processed and index artifacts, invokes model inference and
// translation, and reads project secrets.
func queryPolicy(s Scope) Document {
	return NewDocument(
		Statement{
			Sid:      "ArtifactsRead",
			Effect:   EffectAllow,
			Action:   []string{"s3:GetObject", "s3:ListBucket"},
			Resource: append(s.bucketPair(s.ProcessedBucket), s.bucketPair(s.IndexBucket)...),
		},
		modelInvokeStatement(s),
		Statement{
			Sid:      "Translation",
			Effect:   EffectAllow,
			Action:   []string{"translate:TranslateText"},
			Resource: []string{fmt.Sprintf("arn:aws:translate:%s:%s:*", s.Region, s.AccountID)},
		},
		projectSecretsStatement(s),
		logStatement(s, string(WorkloadQuery)),
	)
}

// ingressControllerPolicy is necessarily broad: the controller manages
// arbitrary ingress resources cluster-wide. The two wildcard-resource
// statements are the provider-mandated service-linked-role creations;
// everything else is scoped to this account and region.
func ingressControllerPolicy(s Scope) Document {
	elbPrefix := fmt.Sprintf("arn:aws:elasticloadbalancing:%s:%s", s.Region, s.AccountID)
	ec2Prefix := fmt.Sprintf("arn:aws:ec2:%s:%s", s.Region, s.AccountID)

	return NewDocument(
		Statement{
			Sid:    "ELBServiceLinkedRole",
			Effect: EffectAllow,
			Action: []string{"iam:CreateServiceLinkedRole"},
			// Service-linked-role creation cannot be resource-scoped.
			Resource: []string{"*"},
			Condition: Condition{
				"StringEquals": {"iam:AWSServiceName": "elasticloadbalancing.amazonaws.com"},
			},
		},
		Statement{
			Sid:      "SpotServiceLinkedRole",
			Effect:   EffectAllow,
			Action:   []string{"iam:CreateServiceLinkedRole"},
			Resource: []string{"*"},
			Condition: Condition{
				"StringEquals": {"iam:AWSServiceName": "spot.amazonaws.com"},
			},
		},
		Statement{
			Sid:    "LoadBalancers",
			Effect: EffectAllow,
			Action: []string{
				"elasticloadbalancing:CreateLoadBalancer",
				"elasticloadbalancing:CreateTargetGroup",
				"elasticloadbalancing:CreateListener",
				"elasticloadbalancing:CreateRule",
				"elasticloadbalancing:ModifyLoadBalancerAttributes",
				"elasticloadbalancing:ModifyTargetGroup",
				"elasticloadbalancing:ModifyTargetGroupAttributes",
				"elasticloadbalancing:ModifyListener",
				"elasticloadbalancing:ModifyRule",
				"elasticloadbalancing:RegisterTargets",
				"elasticloadbalancing:DeregisterTargets",
				"elasticloadbalancing:DeleteLoadBalancer",
				"elasticloadbalancing:DeleteTargetGroup",
				"elasticloadbalancing:DeleteListener",
				"elasticloadbalancing:DeleteRule",
				"elasticloadbalancing:AddTags",
				"elasticloadbalancing:RemoveTags",
				"elasticloadbalancing:DescribeLoadBalancers",
				"elasticloadbalancing:DescribeTargetGroups",
				"elasticloadbalancing:DescribeTargetHealth",
				"elasticloadbalancing:DescribeListeners",
				"elasticloadbalancing:DescribeRules",
				"elasticloadbalancing:DescribeTags",
			},
			Resource: []string{elbPrefix + ":*"},
		},
		Statement{
			Sid:    "SecurityGroups",
			Effect: EffectAllow,
			Action: []string{
				"ec2:CreateSecurityGroup",
				"ec2:AuthorizeSecurityGroupIngress",
				"ec2:RevokeSecurityGroupIngress",
				"ec2:DeleteSecurityGroup",
				"ec2:CreateTags",
				"ec2:DeleteTags",
				"ec2:DescribeSecurityGroups",
				"ec2:DescribeSubnets",
				"ec2:DescribeVpcs",
				"ec2:DescribeInstances",
				"ec2:DescribeNetworkInterfaces",
				"ec2:DescribeAvailabilityZones",
			},
			Resource: []string{ec2Prefix + ":*"},
		},
	)
}

// logShipperPolicy grants cluster-wide log-group create/write only.
func logShipperPolicy(s Scope) Document {
	clusterPrefix := naming.LogGroup(s.Project, "cluster")
	return NewDocument(
		Statement{
			Sid:    "ShipClusterLogs",
			Effect: EffectAllow,
			Action: []string{
				"logs:CreateLogGroup",
				"logs:CreateLogStream",
				"logs:PutLogEvents",
				"logs:DescribeLogGroups",
				"logs:DescribeLogStreams",
			},
			Resource: []string{
				naming.LogGroupARN(s.Region, s.AccountID, clusterPrefix+"/*"),
				naming.LogGroupWildcardARN(s.Region, s.AccountID, clusterPrefix+"/*"),
			},
		},
	)
}

// ciPolicy is intentionally wide: a deploy-time bootstrap identity needs to
// push images, reach the cluster, and seed storage and secrets. It is still
// scoped to this deployment's resources.
func ciPolicy(s Scope) Document {
	return NewDocument(
		Statement{
			Sid:    "PushImages",
			Effect: EffectAllow,
			Action: []string{
				"ecr:GetAuthorizationToken",
				"ecr:BatchCheckLayerAvailability",
				"ecr:InitiateLayerUpload",
				"ecr:UploadLayerPart",
				"ecr:CompleteLayerUpload",
				"ecr:PutImage",
				"ecr:BatchGetImage",
				"ecr:GetDownloadUrlForLayer",
			},
			Resource: []string{
				fmt.Sprintf("arn:aws:ecr:%s:%s:repository/%s/*", s.Region, s.AccountID, s.Project),
			},
		},
		Statement{
			Sid:      "DescribeCluster",
			Effect:   EffectAllow,
			Action:   []string{"eks:DescribeCluster"},
			Resource: []string{fmt.Sprintf("arn:aws:eks:%s:%s:cluster/%s", s.Region, s.AccountID, naming.Cluster(s.Project))},
		},
		Statement{
			Sid:    "SeedArtifacts",
			Effect: EffectAllow,
			Action: []string{"s3:GetObject", "s3:PutObject", "s3:ListBucket"},
			Resource: append(append(s.bucketPair(s.RawBucket),
				s.bucketPair(s.ProcessedBucket)...), s.bucketPair(s.IndexBucket)...),
		},
		Statement{
			Sid:      "ManageSecrets",
			Effect:   EffectAllow,
			Action:   []string{"secretsmanager:GetSecretValue", "secretsmanager:PutSecretValue"},
			Resource: []string{s.projectSecretsARN()},
		},
	)
}

func modelInvokeStatement(s Scope) Statement {
	return Statement{
		Sid:      "ModelInference",
		Effect:   EffectAllow,
		Action:   []string{"bedrock:InvokeModel", "bedrock:InvokeModelWithResponseStream"},
		Resource: []string{naming.FoundationModelARN(s.Region)},
	}
}

// projectSecretsStatement restricts secret reads to entries tagged with
// this project, on top of the name-prefix scoping.
func projectSecretsStatement(s Scope) Statement {
	return Statement{
		Sid:      "ProjectSecrets",
		Effect:   EffectAllow,
		Action:   []string{"secretsmanager:GetSecretValue", "secretsmanager:DescribeSecret"},
		Resource: []string{s.projectSecretsARN()},
		Condition: Condition{
			"StringEquals": {"secretsmanager:ResourceTag/project": s.Project},
		},
	}
}

func logStatement(s Scope, workload string) Statement {
	return Statement{
		Sid:      "OwnLogStream",
		Effect:   EffectAllow,
		Action:   []string{"logs:CreateLogStream", "logs:PutLogEvents"},
		Resource: s.logPrefix(workload),
	}
}
