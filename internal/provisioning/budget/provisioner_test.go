package budget

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	budgettypes "github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AayushV4/gov-doc-rag/internal/config"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

type mockBudgets struct {
	created *budgets.CreateBudgetInput
}

func (m *mockBudgets) CreateBudget(_ context.Context, params *budgets.CreateBudgetInput, _ ...func(*budgets.Options)) (*budgets.CreateBudgetOutput, error) {
	m.created = params
	return &budgets.CreateBudgetOutput{}, nil
}

func (m *mockBudgets) DescribeBudget(context.Context, *budgets.DescribeBudgetInput, ...func(*budgets.Options)) (*budgets.DescribeBudgetOutput, error) {
	return nil, &smithy.GenericAPIError{Code: "NotFoundException", Message: "not found"}
}

func (m *mockBudgets) DeleteBudget(context.Context, *budgets.DeleteBudgetInput, ...func(*budgets.Options)) (*budgets.DeleteBudgetOutput, error) {
	return &budgets.DeleteBudgetOutput{}, nil
}

type nopObserver struct{}

func (nopObserver) Printf(string, ...interface{})                      {}
func (nopObserver) Event(provisioning.Event)                           {}
func (nopObserver) WithFields(map[string]string) provisioning.Observer { return nopObserver{} }

func testContext(mock *mockBudgets, limit float64) *provisioning.Context {
	cfg := &config.Config{
		Project: "gov-doc-rag",
		Region:  "us-east-1",
		Budget: config.BudgetConfig{
			MonthlyLimitUSD:  limit,
			ThresholdPercent: 80,
			Emails:           []string{"ops@example.gov"},
		},
	}
	state := provisioning.NewState()
	state.AccountID = "123456789012"
	return &provisioning.Context{
		Context:  context.Background(),
		Config:   cfg,
		State:    state,
		AWS:      &awsplatform.Clients{Region: "us-east-1", Budgets: mock},
		Observer: nopObserver{},
	}
}

func TestProvision_MonthlyBudgetWithActualNotification(t *testing.T) {
	mock := &mockBudgets{}
	ctx := testContext(mock, 250)

	require.NoError(t, NewProvisioner().Provision(ctx))

	require.NotNil(t, mock.created)
	assert.Equal(t, "123456789012", aws.ToString(mock.created.AccountId))

	b := mock.created.Budget
	assert.Equal(t, "gov-doc-rag-monthly", aws.ToString(b.BudgetName))
	assert.Equal(t, budgettypes.BudgetTypeCost, b.BudgetType)
	assert.Equal(t, budgettypes.TimeUnitMonthly, b.TimeUnit)
	assert.Equal(t, "250.00", aws.ToString(b.BudgetLimit.Amount))
	assert.Equal(t, "USD", aws.ToString(b.BudgetLimit.Unit))

	require.Len(t, mock.created.NotificationsWithSubscribers, 1)
	n := mock.created.NotificationsWithSubscribers[0]
	assert.Equal(t, budgettypes.NotificationTypeActual, n.Notification.NotificationType)
	assert.Equal(t, budgettypes.ComparisonOperatorGreaterThan, n.Notification.ComparisonOperator)
	assert.Equal(t, float64(80), n.Notification.Threshold)
	require.Len(t, n.Subscribers, 1)
	assert.Equal(t, "ops@example.gov", aws.ToString(n.Subscribers[0].Address))
}

func TestProvision_SkipsWithoutLimit(t *testing.T) {
	mock := &mockBudgets{}
	ctx := testContext(mock, 0)

	require.NoError(t, NewProvisioner().Provision(ctx))
	assert.Nil(t, mock.created)
}
