package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-stacks-go/intrinsics"
	"github.com/lex00/wetwire-stacks-go/stack"
)

func TestNewServiceTrust(t *testing.T) {
	s := stack.New("test")

	role, err := New(s, "App", Config{
		RoleName: "app-role",
		Trust:    ServiceTrust{Services: []string{"lambda.amazonaws.com"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "AppRole", role.ID.LogicalName)

	tmpl, err := s.Template()
	require.NoError(t, err)

	props := tmpl.Resources["AppRole"].Properties
	assert.Equal(t, "app-role", props["RoleName"])
	assert.Equal(t, "/", props["Path"])
	assert.Equal(t, int64(3600), props["MaxSessionDuration"])

	doc, ok := props["AssumeRolePolicyDocument"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2012-10-17", doc["Version"])

	statements := doc["Statement"].([]any)
	require.Len(t, statements, 1)
	stmt := statements[0].(map[string]any)
	assert.Equal(t, "Allow", stmt["Effect"])
	assert.Equal(t, "sts:AssumeRole", stmt["Action"])
	principal := stmt["Principal"].(map[string]any)
	assert.Equal(t, "lambda.amazonaws.com", principal["Service"])
}

func TestNewAccountTrustWithExternalID(t *testing.T) {
	s := stack.New("test")

	_, err := New(s, "Partner", Config{
		RoleName: "partner-role",
		Trust:    AccountTrust{AccountID: "123456789012", ExternalID: "deadbeef"},
	})
	require.NoError(t, err)

	tmpl, err := s.Template()
	require.NoError(t, err)

	doc := tmpl.Resources["PartnerRole"].Properties["AssumeRolePolicyDocument"].(map[string]any)
	stmt := doc["Statement"].([]any)[0].(map[string]any)

	principal := stmt["Principal"].(map[string]any)
	assert.Equal(t, "arn:aws:iam::123456789012:root", principal["AWS"])

	condition := stmt["Condition"].(map[string]any)
	equals := condition["StringEquals"].(map[string]any)
	assert.Equal(t, "deadbeef", equals["sts:ExternalId"])
}

func TestNewRawPolicyText(t *testing.T) {
	s := stack.New("test")

	raw := `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"Service":"ec2.amazonaws.com"},"Action":"sts:AssumeRole"}]}`
	_, err := New(s, "Raw", Config{
		RoleName: "raw-role",
		Trust:    RawPolicyText{JSON: raw},
	})
	require.NoError(t, err)

	tmpl, err := s.Template()
	require.NoError(t, err)

	doc := tmpl.Resources["RawRole"].Properties["AssumeRolePolicyDocument"].(map[string]any)
	assert.Equal(t, "2012-10-17", doc["Version"])
	assert.NotEmpty(t, doc["Statement"])
}

func TestNewInlineAndManagedPolicies(t *testing.T) {
	s := stack.New("test")

	_, err := New(s, "App", Config{
		RoleName: "app-role",
		Trust:    ServiceTrust{Services: []string{"lambda.amazonaws.com"}},
		InlinePolicies: []InlinePolicy{{
			Name: "logs",
			Statements: []intrinsics.PolicyStatement{{
				Effect:   "Allow",
				Action:   []any{"logs:CreateLogStream", "logs:PutLogEvents"},
				Resource: "arn:aws:logs:*:*:*",
			}},
		}},
		ManagedPolicyArns: []string{"arn:aws:iam::aws:policy/ReadOnlyAccess"},
	})
	require.NoError(t, err)

	tmpl, err := s.Template()
	require.NoError(t, err)

	props := tmpl.Resources["AppRole"].Properties
	policies := props["Policies"].([]any)
	require.Len(t, policies, 1)
	inline := policies[0].(map[string]any)
	assert.Equal(t, "logs", inline["PolicyName"])

	managed := props["ManagedPolicyArns"].([]any)
	assert.Equal(t, []any{"arn:aws:iam::aws:policy/ReadOnlyAccess"}, managed)
}

func TestNewRejectsBadInput(t *testing.T) {
	validTrust := ServiceTrust{Services: []string{"lambda.amazonaws.com"}}

	tests := []struct {
		name string
		comp string
		cfg  Config
	}{
		{"missing trust", "App", Config{RoleName: "app-role"}},
		{"bad role name", "App", Config{RoleName: "has space", Trust: validTrust}},
		{"empty service trust", "App", Config{RoleName: "app-role", Trust: ServiceTrust{}}},
		{"non-aws service", "App", Config{RoleName: "app-role", Trust: ServiceTrust{Services: []string{"evil.example.com"}}}},
		{"bad account", "App", Config{RoleName: "app-role", Trust: AccountTrust{AccountID: "123"}}},
		{"invalid raw json", "App", Config{RoleName: "app-role", Trust: RawPolicyText{JSON: "{"}}},
		{"raw json without statement", "App", Config{RoleName: "app-role", Trust: RawPolicyText{JSON: `{"Version":"2012-10-17"}`}}},
		{"session too long", "App", Config{RoleName: "app-role", Trust: validTrust, MaxSessionDuration: 99999}},
		{"unnamed inline policy", "App", Config{RoleName: "app-role", Trust: validTrust, InlinePolicies: []InlinePolicy{{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stack.New("test")
			_, err := New(s, tt.comp, tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewResolvesTrustOnce(t *testing.T) {
	s := stack.New("test")

	// Two roles from the same config value must produce identical documents.
	cfg := Config{RoleName: "app-role", Trust: validServiceTrust()}
	_, err := New(s, "A", cfg)
	require.NoError(t, err)

	cfg.RoleName = "app-role-b"
	_, err = New(s, "B", cfg)
	require.NoError(t, err)

	tmpl, err := s.Template()
	require.NoError(t, err)

	docA := tmpl.Resources["ARole"].Properties["AssumeRolePolicyDocument"]
	docB := tmpl.Resources["BRole"].Properties["AssumeRolePolicyDocument"]
	assert.Equal(t, docA, docB)
}

func validServiceTrust() Trust {
	return ServiceTrust{Services: []string{"lambda.amazonaws.com"}}
}
