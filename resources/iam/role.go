// Package iam provides typed declarations for the IAM resources the
// identity component emits.
package iam

import (
	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
)

// Role is an AWS::IAM::Role resource.
type Role struct {
	RoleName                 any              `json:"RoleName,omitempty"`
	AssumeRolePolicyDocument any              `json:"AssumeRolePolicyDocument,omitempty"`
	Description              string           `json:"Description,omitempty"`
	Path                     string           `json:"Path,omitempty"`
	MaxSessionDuration       int              `json:"MaxSessionDuration,omitempty"`
	ManagedPolicyArns        []any            `json:"ManagedPolicyArns,omitempty"`
	PermissionsBoundary      any              `json:"PermissionsBoundary,omitempty"`
	Policies                 []Role_Policy    `json:"Policies,omitempty"`
	Tags                     []intrinsics.Tag `json:"Tags,omitempty"`

	// Attributes
	Arn    wetwire.AttrRef `json:"-"`
	RoleId wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (Role) ResourceType() string { return "AWS::IAM::Role" }

// Role_Policy is an inline policy attached to a role.
type Role_Policy struct {
	PolicyName     string `json:"PolicyName,omitempty"`
	PolicyDocument any    `json:"PolicyDocument,omitempty"`
}

// ManagedPolicy is an AWS::IAM::ManagedPolicy resource.
type ManagedPolicy struct {
	ManagedPolicyName string `json:"ManagedPolicyName,omitempty"`
	Description       string `json:"Description,omitempty"`
	Path              string `json:"Path,omitempty"`
	PolicyDocument    any    `json:"PolicyDocument,omitempty"`
	Roles             []any  `json:"Roles,omitempty"`

	// Attributes
	PolicyArn wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (ManagedPolicy) ResourceType() string { return "AWS::IAM::ManagedPolicy" }

// InstanceProfile is an AWS::IAM::InstanceProfile resource.
type InstanceProfile struct {
	InstanceProfileName string `json:"InstanceProfileName,omitempty"`
	Path                string `json:"Path,omitempty"`
	Roles               []any  `json:"Roles,omitempty"`

	// Attributes
	Arn wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (InstanceProfile) ResourceType() string { return "AWS::IAM::InstanceProfile" }
