// Package storage provides the object storage component.
//
// It emits an S3 bucket hardened by default: server-side encryption,
// versioning, all public access blocked, and a bucket policy denying
// requests that arrive without TLS. Every default can be overridden, but
// overrides that weaken the posture are surfaced by the config linter.
package storage

import (
	"fmt"

	"github.com/lex00/wetwire-stacks-go/components/tags"
	"github.com/lex00/wetwire-stacks-go/internal/defaults"
	"github.com/lex00/wetwire-stacks-go/internal/validate"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
	"github.com/lex00/wetwire-stacks-go/resources/s3"
	"github.com/lex00/wetwire-stacks-go/stack"
)

// Encryption selects the server-side encryption algorithm.
type Encryption struct {
	// Algorithm is "AES256" or "aws:kms".
	Algorithm string
	// KeyArn selects a customer-managed KMS key when Algorithm is "aws:kms".
	KeyArn string
}

// Config describes the desired bucket. Zero fields pick up Defaults.
type Config struct {
	// BucketName must follow S3 naming rules. Required.
	BucketName string

	Versioning        *bool
	Encryption        Encryption
	ForceSSL          *bool
	BlockPublicAccess *bool

	// ExpireAfterDays adds a lifecycle rule expiring objects. Zero keeps
	// objects forever.
	ExpireAfterDays int

	Tags map[string]string
}

func boolPtr(b bool) *bool { return &b }

// Defaults is the secure baseline: AES256 encryption, versioning, public
// access blocked, TLS required.
var Defaults = Config{
	Versioning:        boolPtr(true),
	Encryption:        Encryption{Algorithm: "AES256"},
	ForceSSL:          boolPtr(true),
	BlockPublicAccess: boolPtr(true),
}

// Bucket exposes the identifiers downstream components need.
type Bucket struct {
	// ID is a Ref to the bucket (resolves to the bucket name).
	ID intrinsics.Ref
	// Arn is the bucket's ARN attribute.
	Arn any
}

// New validates cfg, merges Defaults, and adds the bucket (and its policy,
// when ForceSSL is set) to s under logical IDs prefixed with name.
func New(s *stack.Stack, name string, cfg Config) (*Bucket, error) {
	if err := validate.ComponentName(name); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := defaults.Apply(&cfg, Defaults); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := validate.BucketName(cfg.BucketName); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if cfg.Encryption.Algorithm != "AES256" && cfg.Encryption.Algorithm != "aws:kms" {
		return nil, fmt.Errorf("storage: unsupported encryption algorithm %q", cfg.Encryption.Algorithm)
	}
	// A KMS key with SSEAlgorithm AES256 is a combination CloudFormation
	// rejects; KeyArn set without an algorithm merges AES256 from Defaults.
	if cfg.Encryption.KeyArn != "" && cfg.Encryption.Algorithm != "aws:kms" {
		return nil, fmt.Errorf("storage: encryption key ARN requires the aws:kms algorithm, got %q", cfg.Encryption.Algorithm)
	}

	bucketID := name + "Bucket"
	bucket := &s3.Bucket{
		BucketName: cfg.BucketName,
		BucketEncryption: &s3.Bucket_BucketEncryption{
			ServerSideEncryptionConfiguration: []s3.Bucket_ServerSideEncryptionRule{
				encryptionRule(cfg.Encryption),
			},
		},
		Tags: tags.List(cfg.Tags, "bucket"),
	}
	if *cfg.Versioning {
		bucket.VersioningConfiguration = &s3.Bucket_VersioningConfiguration{Status: "Enabled"}
	}
	if *cfg.BlockPublicAccess {
		bucket.PublicAccessBlockConfiguration = &s3.Bucket_PublicAccessBlock{
			BlockPublicAcls:       true,
			BlockPublicPolicy:     true,
			IgnorePublicAcls:      true,
			RestrictPublicBuckets: true,
		}
	}
	if cfg.ExpireAfterDays > 0 {
		bucket.LifecycleConfiguration = &s3.Bucket_LifecycleConfiguration{
			Rules: []s3.Bucket_LifecycleRule{{
				Id:               "expire-objects",
				Status:           "Enabled",
				ExpirationInDays: cfg.ExpireAfterDays,
			}},
		}
	}

	if err := s.Add(bucketID, bucket); err != nil {
		return nil, err
	}

	out := &Bucket{
		ID:  intrinsics.Ref{LogicalName: bucketID},
		Arn: bucket.Arn,
	}

	if *cfg.ForceSSL {
		policy := &s3.BucketPolicy{
			Bucket:         out.ID,
			PolicyDocument: denyInsecureTransport(bucket),
		}
		if err := s.Add(bucketID+"Policy", policy); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func encryptionRule(enc Encryption) s3.Bucket_ServerSideEncryptionRule {
	byDefault := &s3.Bucket_ServerSideEncryptionByDefault{SSEAlgorithm: enc.Algorithm}
	if enc.KeyArn != "" {
		byDefault.KMSMasterKeyID = enc.KeyArn
	}
	return s3.Bucket_ServerSideEncryptionRule{
		ServerSideEncryptionByDefault: byDefault,
		BucketKeyEnabled:              enc.Algorithm == "aws:kms",
	}
}

// denyInsecureTransport builds the policy refusing non-TLS access to the
// bucket and everything in it.
func denyInsecureTransport(bucket *s3.Bucket) intrinsics.PolicyDocument {
	return intrinsics.NewPolicyDocument(intrinsics.PolicyStatement{
		Sid:       "DenyInsecureTransport",
		Effect:    "Deny",
		Principal: intrinsics.AWSPrincipal{intrinsics.AllPrincipal},
		Action:    "s3:*",
		Resource: []any{
			bucket.Arn,
			intrinsics.Join{Delimiter: "", Values: []any{bucket.Arn, "/*"}},
		},
		Condition: intrinsics.Json{
			intrinsics.Bool: intrinsics.Json{"aws:SecureTransport": "false"},
		},
	})
}
