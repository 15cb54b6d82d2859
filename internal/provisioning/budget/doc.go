// Package budget provisions the monthly cost guardrail: an AWS Budgets cost
// budget with a single actual-spend notification at the configured
// threshold.
package budget
