// Package validate implements the string pattern checks components run on
// user-supplied configuration before emitting any resources.
package validate

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalid wraps all validation failures so callers can test for the
// class with errors.Is.
var ErrInvalid = errors.New("invalid configuration")

var (
	// Bucket names: 3-63 chars, lowercase letters, digits, dots, hyphens,
	// starting and ending with a letter or digit.
	bucketNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

	// IAM role names: up to 64 chars of the IAM-permitted character set.
	roleNamePattern = regexp.MustCompile(`^[\w+=,.@-]{1,64}$`)

	// Alarm names: printable, no leading/trailing whitespace, ≤255 chars.
	alarmNamePattern = regexp.MustCompile(`^\S(.{0,253}\S)?$`)

	// Component names become CloudFormation logical ID prefixes.
	componentNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{0,127}$`)

	// Service principals like lambda.amazonaws.com.
	servicePrincipalPattern = regexp.MustCompile(`^[a-z0-9-]+(\.[a-z0-9-]+)*\.amazonaws\.com$`)

	awsAccountPattern = regexp.MustCompile(`^\d{12}$`)
)

// BucketName checks S3 bucket naming rules.
func BucketName(name string) error {
	if !bucketNamePattern.MatchString(name) {
		return fmt.Errorf("%w: bucket name %q must be 3-63 lowercase letters, digits, dots, or hyphens", ErrInvalid, name)
	}
	return nil
}

// RoleName checks IAM role naming rules.
func RoleName(name string) error {
	if !roleNamePattern.MatchString(name) {
		return fmt.Errorf("%w: role name %q must be 1-64 characters of [A-Za-z0-9+=,.@_-]", ErrInvalid, name)
	}
	return nil
}

// AlarmName checks CloudWatch alarm naming rules.
func AlarmName(name string) error {
	if !alarmNamePattern.MatchString(name) || len(name) > 255 {
		return fmt.Errorf("%w: alarm name %q must be 1-255 characters without surrounding whitespace", ErrInvalid, name)
	}
	return nil
}

// ComponentName checks that a component name is usable as a CloudFormation
// logical ID prefix.
func ComponentName(name string) error {
	if !componentNamePattern.MatchString(name) {
		return fmt.Errorf("%w: component name %q must be alphanumeric and start with a letter", ErrInvalid, name)
	}
	return nil
}

// ServicePrincipal checks an AWS service principal hostname.
func ServicePrincipal(principal string) error {
	if !servicePrincipalPattern.MatchString(principal) {
		return fmt.Errorf("%w: service principal %q must end in .amazonaws.com", ErrInvalid, principal)
	}
	return nil
}

// AccountID checks a 12-digit AWS account ID.
func AccountID(id string) error {
	if !awsAccountPattern.MatchString(id) {
		return fmt.Errorf("%w: account ID %q must be 12 digits", ErrInvalid, id)
	}
	return nil
}
