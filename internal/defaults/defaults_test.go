package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type encryption struct {
	Algorithm string
	KeyArn    string
}

type bucketConfig struct {
	Name       string
	Versioning *bool
	Encryption encryption
	Tags       map[string]string
}

func boolPtr(b bool) *bool { return &b }

func TestApplyFillsZeroFields(t *testing.T) {
	def := bucketConfig{
		Versioning: boolPtr(true),
		Encryption: encryption{Algorithm: "AES256"},
		Tags:       map[string]string{"ManagedBy": "wetwire-stacks"},
	}

	cfg := bucketConfig{Name: "data"}
	require.NoError(t, Apply(&cfg, def))

	assert.Equal(t, "data", cfg.Name)
	require.NotNil(t, cfg.Versioning)
	assert.True(t, *cfg.Versioning)
	assert.Equal(t, "AES256", cfg.Encryption.Algorithm)
	assert.Equal(t, "wetwire-stacks", cfg.Tags["ManagedBy"])
}

func TestApplyUserValuesWin(t *testing.T) {
	def := bucketConfig{
		Versioning: boolPtr(true),
		Encryption: encryption{Algorithm: "AES256"},
	}

	cfg := bucketConfig{
		Name:       "logs",
		Versioning: boolPtr(false),
		Encryption: encryption{Algorithm: "aws:kms", KeyArn: "arn:aws:kms:us-east-1:123456789012:key/abc"},
	}
	require.NoError(t, Apply(&cfg, def))

	require.NotNil(t, cfg.Versioning)
	assert.False(t, *cfg.Versioning, "explicit false must not be overwritten")
	assert.Equal(t, "aws:kms", cfg.Encryption.Algorithm)
}

func TestApplyMergesNestedStructPartially(t *testing.T) {
	def := bucketConfig{
		Encryption: encryption{Algorithm: "AES256", KeyArn: ""},
	}

	cfg := bucketConfig{
		Encryption: encryption{KeyArn: "arn:aws:kms:us-east-1:123456789012:key/abc"},
	}
	require.NoError(t, Apply(&cfg, def))

	assert.Equal(t, "AES256", cfg.Encryption.Algorithm, "nested zero field should pick up default")
	assert.Equal(t, "arn:aws:kms:us-east-1:123456789012:key/abc", cfg.Encryption.KeyArn)
}

func TestApplyIsPure(t *testing.T) {
	def := bucketConfig{Tags: map[string]string{"ManagedBy": "wetwire-stacks"}}

	first := bucketConfig{}
	second := bucketConfig{}
	require.NoError(t, Apply(&first, def))
	require.NoError(t, Apply(&second, def))

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]string{"ManagedBy": "wetwire-stacks"}, def.Tags, "defaults must not be mutated")
}

func TestApplyNilConfig(t *testing.T) {
	var cfg *bucketConfig
	assert.Error(t, Apply(cfg, bucketConfig{}))
}
