package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wetwire "github.com/lex00/wetwire-stacks-go"
)

type testBucket struct {
	BucketName string          `json:"BucketName,omitempty"`
	Tags       []testTag       `json:"Tags,omitempty"`
	Versioning *testVersioning `json:"VersioningConfiguration,omitempty"`

	Arn wetwire.AttrRef `json:"-"`
}

type testTag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

type testVersioning struct {
	Status string `json:"Status"`
}

func TestProperties_SimpleStruct(t *testing.T) {
	bucket := testBucket{
		BucketName: "my-bucket",
	}

	props, err := Properties(bucket)
	require.NoError(t, err)

	assert.Equal(t, "my-bucket", props["BucketName"])
	assert.NotContains(t, props, "Tags")                    // empty slice omitted
	assert.NotContains(t, props, "VersioningConfiguration") // nil pointer omitted
}

func TestProperties_NestedStruct(t *testing.T) {
	bucket := testBucket{
		BucketName: "my-bucket",
		Versioning: &testVersioning{Status: "Enabled"},
	}

	props, err := Properties(bucket)
	require.NoError(t, err)

	versioning, ok := props["VersioningConfiguration"].(map[string]any)
	require.True(t, ok, "VersioningConfiguration should be a map")
	assert.Equal(t, "Enabled", versioning["Status"])
}

func TestProperties_SliceOfStructs(t *testing.T) {
	bucket := testBucket{
		BucketName: "my-bucket",
		Tags: []testTag{
			{Key: "Name", Value: "data"},
			{Key: "Env", Value: "prod"},
		},
	}

	props, err := Properties(bucket)
	require.NoError(t, err)

	tags, ok := props["Tags"].([]any)
	require.True(t, ok)
	require.Len(t, tags, 2)

	first, ok := tags[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Name", first["Key"])
	assert.Equal(t, "data", first["Value"])
}

func TestProperties_SkipsAttrFields(t *testing.T) {
	bucket := testBucket{
		BucketName: "my-bucket",
		Arn:        wetwire.AttrRef{Resource: "DataBucket", Attribute: "Arn"},
	}

	props, err := Properties(bucket)
	require.NoError(t, err)

	assert.NotContains(t, props, "Arn")
	assert.NotContains(t, props, "-")
}

func TestProperties_AttrRefValue(t *testing.T) {
	type natGateway struct {
		AllocationId any `json:"AllocationId,omitempty"`
	}

	nat := natGateway{
		AllocationId: wetwire.AttrRef{Resource: "NatEIP", Attribute: "AllocationId"},
	}

	props, err := Properties(nat)
	require.NoError(t, err)

	getAtt, ok := props["AllocationId"].(map[string]any)
	require.True(t, ok, "AttrRef should serialize to a Fn::GetAtt map")
	assert.Equal(t, []any{"NatEIP", "AllocationId"}, getAtt["Fn::GetAtt"])
}

func TestProperties_NonStruct(t *testing.T) {
	props, err := Properties("not a struct")
	require.NoError(t, err)
	assert.Nil(t, props)
}

func TestLogicalID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"data-bucket", "DataBucket"},
		{"core", "Core"},
		{"app_role", "AppRole"},
		{"HighCpu", "HighCpu"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, LogicalID(tt.in))
		})
	}
}
