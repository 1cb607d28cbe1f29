package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-stacks-go/stack"
)

func TestNewSecureDefaults(t *testing.T) {
	s := stack.New("test")

	bucket, err := New(s, "Data", Config{BucketName: "data-bucket"})
	require.NoError(t, err)
	assert.Equal(t, "DataBucket", bucket.ID.LogicalName)

	tmpl, err := s.Template()
	require.NoError(t, err)

	props := tmpl.Resources["DataBucket"].Properties
	require.NotNil(t, props)
	assert.Equal(t, "data-bucket", props["BucketName"])

	versioning, ok := props["VersioningConfiguration"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Enabled", versioning["Status"])

	pab, ok := props["PublicAccessBlockConfiguration"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, pab["BlockPublicAcls"])
	assert.Equal(t, true, pab["RestrictPublicBuckets"])

	// Deny-insecure-transport policy is emitted by default.
	policy := tmpl.Resources["DataBucketPolicy"]
	assert.Equal(t, "AWS::S3::BucketPolicy", policy.Type)
}

func TestNewKmsEncryption(t *testing.T) {
	s := stack.New("test")

	_, err := New(s, "Data", Config{
		BucketName: "data-bucket",
		Encryption: Encryption{
			Algorithm: "aws:kms",
			KeyArn:    "arn:aws:kms:us-east-1:123456789012:key/abc",
		},
	})
	require.NoError(t, err)

	tmpl, err := s.Template()
	require.NoError(t, err)

	props := tmpl.Resources["DataBucket"].Properties
	enc, ok := props["BucketEncryption"].(map[string]any)
	require.True(t, ok)
	rules, ok := enc["ServerSideEncryptionConfiguration"].([]any)
	require.True(t, ok)
	require.Len(t, rules, 1)

	rule := rules[0].(map[string]any)
	assert.Equal(t, true, rule["BucketKeyEnabled"])
	byDefault := rule["ServerSideEncryptionByDefault"].(map[string]any)
	assert.Equal(t, "aws:kms", byDefault["SSEAlgorithm"])
	assert.Equal(t, "arn:aws:kms:us-east-1:123456789012:key/abc", byDefault["KMSMasterKeyID"])
}

func TestNewOptOuts(t *testing.T) {
	s := stack.New("test")

	_, err := New(s, "Scratch", Config{
		BucketName:        "scratch-bucket",
		Versioning:        boolPtr(false),
		ForceSSL:          boolPtr(false),
		BlockPublicAccess: boolPtr(false),
		ExpireAfterDays:   7,
	})
	require.NoError(t, err)

	tmpl, err := s.Template()
	require.NoError(t, err)

	props := tmpl.Resources["ScratchBucket"].Properties
	assert.NotContains(t, props, "VersioningConfiguration")
	assert.NotContains(t, props, "PublicAccessBlockConfiguration")
	assert.NotContains(t, tmpl.Resources, "ScratchBucketPolicy")

	lifecycle, ok := props["LifecycleConfiguration"].(map[string]any)
	require.True(t, ok)
	rules := lifecycle["Rules"].([]any)
	require.Len(t, rules, 1)
	assert.Equal(t, int64(7), rules[0].(map[string]any)["ExpirationInDays"])
}

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		comp string
		cfg  Config
	}{
		{"missing bucket name", "Data", Config{}},
		{"uppercase bucket name", "Data", Config{BucketName: "MyBucket"}},
		{"bad component name", "data-bucket", Config{BucketName: "data"}},
		{"unknown algorithm", "Data", Config{BucketName: "data", Encryption: Encryption{Algorithm: "rot13"}}},
		{"key arn without kms", "Data", Config{BucketName: "data", Encryption: Encryption{KeyArn: "arn:aws:kms:us-west-2:123456789012:key/abc"}}},
		{"key arn with aes256", "Data", Config{BucketName: "data", Encryption: Encryption{Algorithm: "AES256", KeyArn: "arn:aws:kms:us-west-2:123456789012:key/abc"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stack.New("test")
			_, err := New(s, tt.comp, tt.cfg)
			assert.Error(t, err)
		})
	}
}
