package validation

import (
	"testing"

	"github.com/lex00/cfn-lint-go/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintFileMissing(t *testing.T) {
	result, err := LintFile("testdata/does-not-exist.json")
	require.NoError(t, err)

	assert.False(t, result.Passed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "not found")
}

func TestLintTemplate(t *testing.T) {
	template := []byte(`{
  "AWSTemplateFormatVersion": "2010-09-09",
  "Resources": {
    "DataBucket": {
      "Type": "AWS::S3::Bucket",
      "Properties": {"BucketName": "validation-test-data"}
    }
  }
}`)

	result, err := LintTemplate(template)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Errors)
}

func TestTotalIssues(t *testing.T) {
	r := Result{
		Errors:        []string{"a"},
		Warnings:      []string{"b", "c"},
		Informational: []string{"d"},
	}
	assert.Equal(t, 4, r.TotalIssues())
}

func TestFormatMatch(t *testing.T) {
	match := lint.Match{
		Rule:    lint.MatchRule{ID: "E3001"},
		Message: "bad resource",
	}
	assert.Equal(t, "E3001: bad resource", formatMatch(match))

	match.Location = lint.MatchLocation{Path: []any{"Resources", "DataBucket"}}
	assert.Equal(t, "E3001: bad resource (at Resources/DataBucket)", formatMatch(match))
}
