package logging

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/policy"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning/kms"
)

// Provisioner handles log groups, retention, and saved diagnostic queries.
type Provisioner struct{}

// NewProvisioner creates a new logging provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "logging"
}

// workloadKeys lists the log-group owners: the three document workloads
// plus the two cluster-level streams the log shipper writes.
func workloadKeys() []string {
	return []string{
		string(policy.WorkloadIngestion),
		string(policy.WorkloadIndexing),
		string(policy.WorkloadQuery),
		"cluster/containers",
		"cluster/dataplane",
	}
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	for _, workload := range workloadKeys() {
		group := naming.LogGroup(ctx.Config.Project, workload)
		if err := p.ensureLogGroup(ctx, group); err != nil {
			return err
		}
		ctx.State.LogGroups[workload] = group
	}

	if ctx.Config.Logging.Diagnostics {
		return p.saveDiagnosticQueries(ctx)
	}
	return nil
}

func (p *Provisioner) ensureLogGroup(ctx *provisioning.Context, group string) error {
	keyARN := ctx.State.KeyARNs[kms.PurposeLogs]

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "log-group", group)
	_, err := ctx.AWS.Logs.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(group),
		KmsKeyId:     aws.String(keyARN),
		Tags:         map[string]string{"project": ctx.Config.Project},
	})
	switch {
	case err == nil:
		provisioning.LogResourceCreated(ctx.Observer, p.Name(), "log-group", group, group)
	case awsplatform.IsAlreadyExists(err):
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "log-group", group, group)
		// Converge encryption on a pre-existing group.
		_, err = ctx.AWS.Logs.AssociateKmsKey(ctx, &cloudwatchlogs.AssociateKmsKeyInput{
			LogGroupName: aws.String(group),
			KmsKeyId:     aws.String(keyARN),
		})
		if err != nil {
			return fmt.Errorf("failed to associate logs key with %s: %w", group, err)
		}
	default:
		return fmt.Errorf("failed to create log group %s: %w", group, err)
	}

	_, err = ctx.AWS.Logs.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
		LogGroupName:    aws.String(group),
		RetentionInDays: aws.Int32(ctx.Config.Logging.RetentionDays),
	})
	if err != nil {
		return fmt.Errorf("failed to set retention on %s: %w", group, err)
	}
	return nil
}

// saveDiagnosticQueries publishes the three Logs Insights queries operators
// reach for first: error rate over time, requests slower than the
// configured threshold, and document-processing completion tracking.
func (p *Provisioner) saveDiagnosticQueries(ctx *provisioning.Context) error {
	project := ctx.Config.Project
	queryGroup := naming.LogGroup(project, string(policy.WorkloadQuery))
	ingestionGroup := naming.LogGroup(project, string(policy.WorkloadIngestion))

	queries := []struct {
		name   string
		groups []string
		query  string
	}{
		{
			name:   project + "/error-rate",
			groups: []string{queryGroup, ingestionGroup},
			query: "filter level = \"error\"" +
				" | stats count() as errors by bin(5m)" +
				" | sort bin(5m) desc",
		},
		{
			name:   project + "/slow-requests",
			groups: []string{queryGroup},
			query: fmt.Sprintf("filter duration_ms > %d"+
				" | fields @timestamp, route, duration_ms"+
				" | sort duration_ms desc"+
				" | limit 50", ctx.Config.Logging.SlowRequestMs),
		},
		{
			name:   project + "/document-completion",
			groups: []string{ingestionGroup},
			query: "filter event = \"document.processed\" or event = \"document.failed\"" +
				" | stats count() as total by event, bin(1h)",
		},
	}

	for _, q := range queries {
		_, err := ctx.AWS.Logs.PutQueryDefinition(ctx, &cloudwatchlogs.PutQueryDefinitionInput{
			Name:          aws.String(q.name),
			LogGroupNames: q.groups,
			QueryString:   aws.String(q.query),
		})
		if err != nil {
			return fmt.Errorf("failed to save query %s: %w", q.name, err)
		}
		provisioning.LogResourceCreated(ctx.Observer, p.Name(), "saved-query", q.name, "")
	}
	return nil
}
