// Package identity provides the IAM role component.
//
// A role's trust policy is declared as one of three variants: a service
// trust, an AWS account trust, or raw policy JSON. The variant is resolved
// into a canonical policy document once, at the component boundary, before
// any resource is emitted.
package identity

import (
	"encoding/json"
	"fmt"

	"github.com/lex00/wetwire-stacks-go/components/tags"
	"github.com/lex00/wetwire-stacks-go/internal/defaults"
	"github.com/lex00/wetwire-stacks-go/internal/validate"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
	"github.com/lex00/wetwire-stacks-go/resources/iam"
	"github.com/lex00/wetwire-stacks-go/stack"
)

// Trust is the tagged union of supported trust policy variants.
// Exactly one variant backs each Trust value.
type Trust interface {
	// document resolves the variant to a canonical policy document value.
	document() (any, error)
}

// TrustDocument resolves a trust variant to its policy document as JSON.
// Exporters that cannot embed structured documents use this form.
func TrustDocument(t Trust) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("identity: trust is required")
	}
	doc, err := t.document()
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// ServiceTrust allows AWS services to assume the role.
type ServiceTrust struct {
	// Services are service principals like "lambda.amazonaws.com".
	Services []string
	// ExternalID, when set, is required in the sts:AssumeRole call.
	ExternalID string
}

func (t ServiceTrust) document() (any, error) {
	if len(t.Services) == 0 {
		return nil, fmt.Errorf("identity: service trust needs at least one service principal")
	}
	principals := make(intrinsics.ServicePrincipal, 0, len(t.Services))
	for _, svc := range t.Services {
		if err := validate.ServicePrincipal(svc); err != nil {
			return nil, fmt.Errorf("identity: %w", err)
		}
		principals = append(principals, svc)
	}

	stmt := intrinsics.PolicyStatement{
		Effect:    "Allow",
		Principal: principals,
		Action:    "sts:AssumeRole",
	}
	if t.ExternalID != "" {
		stmt.Condition = intrinsics.Json{
			intrinsics.StringEquals: intrinsics.Json{"sts:ExternalId": t.ExternalID},
		}
	}
	return intrinsics.NewPolicyDocument(stmt), nil
}

// AccountTrust allows another AWS account to assume the role.
type AccountTrust struct {
	// AccountID is the 12-digit trusting account.
	AccountID string
	// ExternalID, when set, is required in the sts:AssumeRole call.
	ExternalID string
}

func (t AccountTrust) document() (any, error) {
	if err := validate.AccountID(t.AccountID); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}

	stmt := intrinsics.PolicyStatement{
		Effect:    "Allow",
		Principal: intrinsics.AWSPrincipal{fmt.Sprintf("arn:aws:iam::%s:root", t.AccountID)},
		Action:    "sts:AssumeRole",
	}
	if t.ExternalID != "" {
		stmt.Condition = intrinsics.Json{
			intrinsics.StringEquals: intrinsics.Json{"sts:ExternalId": t.ExternalID},
		}
	}
	return intrinsics.NewPolicyDocument(stmt), nil
}

// RawPolicyText carries a caller-supplied trust policy as JSON. It is
// parsed once so the template embeds a structured document rather than an
// opaque string.
type RawPolicyText struct {
	JSON string
}

func (t RawPolicyText) document() (any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(t.JSON), &doc); err != nil {
		return nil, fmt.Errorf("identity: parsing raw trust policy: %w", err)
	}
	if _, ok := doc["Statement"]; !ok {
		return nil, fmt.Errorf("identity: raw trust policy has no Statement")
	}
	return doc, nil
}

// InlinePolicy is a named policy embedded in the role.
type InlinePolicy struct {
	Name       string
	Statements []intrinsics.PolicyStatement
}

// Config describes the desired role. Zero fields pick up Defaults.
type Config struct {
	// RoleName must follow IAM naming rules. Required.
	RoleName string

	// Trust is the role's trust policy variant. Required.
	Trust Trust

	Description        string
	Path               string
	MaxSessionDuration int

	InlinePolicies    []InlinePolicy
	ManagedPolicyArns []string

	// PermissionsBoundary caps the role's effective permissions.
	PermissionsBoundary string

	Tags map[string]string
}

// Defaults is the baseline config: one-hour sessions under the root path.
var Defaults = Config{
	Path:               "/",
	MaxSessionDuration: 3600,
}

// Role exposes the identifiers downstream components need.
type Role struct {
	// ID is a Ref to the role (resolves to the role name).
	ID intrinsics.Ref
	// Arn is the role's ARN attribute.
	Arn any
}

// New validates cfg, merges Defaults, resolves the trust variant, and adds
// the role to s under a logical ID prefixed with name.
func New(s *stack.Stack, name string, cfg Config) (*Role, error) {
	if err := validate.ComponentName(name); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	if err := defaults.Apply(&cfg, Defaults); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	if err := validate.RoleName(cfg.RoleName); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	if cfg.Trust == nil {
		return nil, fmt.Errorf("identity: role %q has no trust policy", cfg.RoleName)
	}
	if cfg.MaxSessionDuration < 3600 || cfg.MaxSessionDuration > 43200 {
		return nil, fmt.Errorf("identity: max session duration %d outside 3600-43200", cfg.MaxSessionDuration)
	}

	trustDoc, err := cfg.Trust.document()
	if err != nil {
		return nil, err
	}

	role := &iam.Role{
		RoleName:                 cfg.RoleName,
		AssumeRolePolicyDocument: trustDoc,
		Description:              cfg.Description,
		Path:                     cfg.Path,
		MaxSessionDuration:       cfg.MaxSessionDuration,
		Tags:                     tags.List(cfg.Tags, "role"),
	}
	if cfg.PermissionsBoundary != "" {
		role.PermissionsBoundary = cfg.PermissionsBoundary
	}
	for _, arn := range cfg.ManagedPolicyArns {
		role.ManagedPolicyArns = append(role.ManagedPolicyArns, arn)
	}
	for _, p := range cfg.InlinePolicies {
		if p.Name == "" {
			return nil, fmt.Errorf("identity: inline policy on role %q has no name", cfg.RoleName)
		}
		statements := make([]any, len(p.Statements))
		for i, stmt := range p.Statements {
			statements[i] = stmt
		}
		role.Policies = append(role.Policies, iam.Role_Policy{
			PolicyName:     p.Name,
			PolicyDocument: intrinsics.NewPolicyDocument(statements...),
		})
	}

	roleID := name + "Role"
	if err := s.Add(roleID, role); err != nil {
		return nil, err
	}

	return &Role{
		ID:  intrinsics.Ref{LogicalName: roleID},
		Arn: role.Arn,
	}, nil
}
