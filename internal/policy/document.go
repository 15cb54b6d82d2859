package policy

import (
	"encoding/json"
	"fmt"
)

// Version2012 is the IAM policy language version every document uses.
const Version2012 = "2012-10-17"

// Effect of a statement.
const (
	EffectAllow = "Allow"
	EffectDeny  = "Deny"
)

// Document is an IAM policy document.
type Document struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement grants or denies a set of actions on a set of resources,
// optionally restricted by conditions and bound to a principal (for trust
// and resource policies).
type Statement struct {
	Sid       string     `json:"Sid,omitempty"`
	Effect    string     `json:"Effect"`
	Principal *Principal `json:"Principal,omitempty"`
	Action    []string   `json:"Action"`
	Resource  []string   `json:"Resource,omitempty"`
	Condition Condition  `json:"Condition,omitempty"`
}

// Principal identifies who a trust or resource statement applies to.
type Principal struct {
	AWS       []string `json:"AWS,omitempty"`
	Service   []string `json:"Service,omitempty"`
	Federated string   `json:"Federated,omitempty"`
}

// Condition maps a condition operator to key/value requirements, e.g.
// {"StringEquals": {"aws:SourceAccount": "123456789012"}}.
type Condition map[string]map[string]string

// NewDocument returns a document with the standard version header.
func NewDocument(statements ...Statement) Document {
	return Document{Version: Version2012, Statement: statements}
}

// JSON renders the document as the JSON string the IAM API accepts.
func (d Document) JSON() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to marshal policy document: %w", err)
	}
	return string(data), nil
}

// Resources returns every resource ARN referenced by the document.
func (d Document) Resources() []string {
	var out []string
	for _, s := range d.Statement {
		out = append(out, s.Resource...)
	}
	return out
}
