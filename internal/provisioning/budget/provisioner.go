package budget

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	budgettypes "github.com/aws/aws-sdk-go-v2/service/budgets/types"

	"github.com/AayushV4/gov-doc-rag/internal/naming"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

// Provisioner handles the monthly cost budget.
type Provisioner struct{}

// NewProvisioner creates a new budget provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "budget"
}

// Provision implements the provisioning.Phase interface. A zero limit means
// no budget is wanted.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.Config.Budget.MonthlyLimitUSD <= 0 {
		ctx.Observer.Printf("No budget limit configured, skipping")
		return nil
	}

	name := naming.Budget(ctx.Config.Project)

	_, err := ctx.AWS.Budgets.DescribeBudget(ctx, &budgets.DescribeBudgetInput{
		AccountId:  aws.String(ctx.State.AccountID),
		BudgetName: aws.String(name),
	})
	if err == nil {
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "budget", name, "")
		return nil
	}
	if !awsplatform.IsNotFound(err) {
		return fmt.Errorf("failed to describe budget %s: %w", name, err)
	}

	var subscribers []budgettypes.Subscriber
	for _, email := range ctx.Config.Budget.Emails {
		subscribers = append(subscribers, budgettypes.Subscriber{
			SubscriptionType: budgettypes.SubscriptionTypeEmail,
			Address:          aws.String(email),
		})
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "budget", name)
	_, err = ctx.AWS.Budgets.CreateBudget(ctx, &budgets.CreateBudgetInput{
		AccountId: aws.String(ctx.State.AccountID),
		Budget: &budgettypes.Budget{
			BudgetName: aws.String(name),
			BudgetType: budgettypes.BudgetTypeCost,
			TimeUnit:   budgettypes.TimeUnitMonthly,
			BudgetLimit: &budgettypes.Spend{
				Amount: aws.String(strconv.FormatFloat(ctx.Config.Budget.MonthlyLimitUSD, 'f', 2, 64)),
				Unit:   aws.String("USD"),
			},
		},
		NotificationsWithSubscribers: []budgettypes.NotificationWithSubscribers{{
			Notification: &budgettypes.Notification{
				NotificationType:   budgettypes.NotificationTypeActual,
				ComparisonOperator: budgettypes.ComparisonOperatorGreaterThan,
				Threshold:          ctx.Config.Budget.ThresholdPercent,
				ThresholdType:      budgettypes.ThresholdTypePercentage,
			},
			Subscribers: subscribers,
		}},
	})
	if err != nil && !awsplatform.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create budget %s: %w", name, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "budget", name, "")
	return nil
}
