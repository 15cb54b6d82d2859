// Package logging provisions the log destinations: one group per document
// workload plus the cluster container and dataplane groups, all encrypted
// with the logs key and bounded by the configured retention. With
// diagnostics enabled it also saves the canned Logs Insights queries the
// operators run most.
package logging
