// Package s3 provides typed declarations for the S3 resources the storage
// component emits.
package s3

import (
	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
)

// Bucket is an AWS::S3::Bucket resource.
type Bucket struct {
	BucketName                     any                             `json:"BucketName,omitempty"`
	BucketEncryption               *Bucket_BucketEncryption        `json:"BucketEncryption,omitempty"`
	VersioningConfiguration        *Bucket_VersioningConfiguration `json:"VersioningConfiguration,omitempty"`
	PublicAccessBlockConfiguration *Bucket_PublicAccessBlock       `json:"PublicAccessBlockConfiguration,omitempty"`
	LifecycleConfiguration         *Bucket_LifecycleConfiguration  `json:"LifecycleConfiguration,omitempty"`
	Tags                           []intrinsics.Tag                `json:"Tags,omitempty"`

	// Attributes
	Arn        wetwire.AttrRef `json:"-"`
	DomainName wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (Bucket) ResourceType() string { return "AWS::S3::Bucket" }

// Bucket_BucketEncryption is the BucketEncryption property.
type Bucket_BucketEncryption struct {
	ServerSideEncryptionConfiguration []Bucket_ServerSideEncryptionRule `json:"ServerSideEncryptionConfiguration,omitempty"`
}

// Bucket_ServerSideEncryptionRule is a single encryption rule.
type Bucket_ServerSideEncryptionRule struct {
	ServerSideEncryptionByDefault *Bucket_ServerSideEncryptionByDefault `json:"ServerSideEncryptionByDefault,omitempty"`
	BucketKeyEnabled              bool                                  `json:"BucketKeyEnabled,omitempty"`
}

// Bucket_ServerSideEncryptionByDefault selects the default encryption algorithm.
type Bucket_ServerSideEncryptionByDefault struct {
	SSEAlgorithm   string `json:"SSEAlgorithm,omitempty"`
	KMSMasterKeyID any    `json:"KMSMasterKeyID,omitempty"`
}

// Bucket_VersioningConfiguration is the VersioningConfiguration property.
type Bucket_VersioningConfiguration struct {
	Status string `json:"Status,omitempty"`
}

// Bucket_PublicAccessBlock is the PublicAccessBlockConfiguration property.
type Bucket_PublicAccessBlock struct {
	BlockPublicAcls       bool `json:"BlockPublicAcls,omitempty"`
	BlockPublicPolicy     bool `json:"BlockPublicPolicy,omitempty"`
	IgnorePublicAcls      bool `json:"IgnorePublicAcls,omitempty"`
	RestrictPublicBuckets bool `json:"RestrictPublicBuckets,omitempty"`
}

// Bucket_LifecycleConfiguration is the LifecycleConfiguration property.
type Bucket_LifecycleConfiguration struct {
	Rules []Bucket_LifecycleRule `json:"Rules,omitempty"`
}

// Bucket_LifecycleRule is a single lifecycle rule.
type Bucket_LifecycleRule struct {
	Id                                string `json:"Id,omitempty"`
	Status                            string `json:"Status,omitempty"`
	ExpirationInDays                  int    `json:"ExpirationInDays,omitempty"`
	NoncurrentVersionExpirationInDays int    `json:"NoncurrentVersionExpirationInDays,omitempty"`
}

// BucketPolicy is an AWS::S3::BucketPolicy resource.
type BucketPolicy struct {
	Bucket         any `json:"Bucket,omitempty"`
	PolicyDocument any `json:"PolicyDocument,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (BucketPolicy) ResourceType() string { return "AWS::S3::BucketPolicy" }
