package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-stacks-go/manifest"
)

func boolPtr(b bool) *bool { return &b }

func cleanManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Name: "web",
		Tags: map[string]string{"Name": "web"},
		Components: []manifest.Component{
			{
				Name: "Core", Type: manifest.TypeNetwork,
				Network: &manifest.NetworkConfig{CidrBlock: "10.0.0.0/16", ZoneCount: 2},
			},
			{
				Name: "Data", Type: manifest.TypeStorage,
				Storage: &manifest.StorageConfig{BucketName: "web-data"},
			},
			{
				Name: "Ops", Type: manifest.TypeMonitoring,
				Monitoring: &manifest.MonitoringConfig{
					Alarms: []manifest.AlarmConfig{{
						Name: "high-cpu", Namespace: "AWS/EC2", MetricName: "CPUUtilization",
						AlarmActions: []string{"arn:aws:sns:us-west-2:123456789012:ops"},
					}},
				},
			},
		},
	}
}

func TestLint_CleanManifest(t *testing.T) {
	result := Lint(cleanManifest(), Options{})

	assert.True(t, result.Success)
	assert.Len(t, result.Issues, 0)
}

func TestZoneCountExceedsTier(t *testing.T) {
	m := cleanManifest()
	m.Components[0].Network.ZoneCount = 11

	result := Lint(m, Options{})
	require.False(t, result.Success)

	issue := findIssue(t, result.Issues, "WST001")
	assert.Equal(t, "Core", issue.Component)
	assert.Equal(t, SeverityError, issue.Severity)
}

func TestWeakenedBucketBaseline(t *testing.T) {
	m := cleanManifest()
	m.Components[1].Storage.Versioning = boolPtr(false)
	m.Components[1].Storage.ForceSSL = boolPtr(false)

	result := Lint(m, Options{})
	require.False(t, result.Success)

	var count int
	for _, issue := range result.Issues {
		if issue.Rule == "WST002" {
			count++
			assert.Equal(t, "Data", issue.Component)
			assert.Equal(t, SeverityWarning, issue.Severity)
		}
	}
	assert.Equal(t, 2, count)
}

func TestWeakenedBucketBaseline_ExplicitTrueIsClean(t *testing.T) {
	m := cleanManifest()
	m.Components[1].Storage.Versioning = boolPtr(true)

	result := Lint(m, Options{})
	assert.True(t, result.Success)
}

func TestWildcardTrustPrincipal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"bare star", `{"Statement":[{"Effect":"Allow","Principal":"*","Action":"sts:AssumeRole"}]}`, true},
		{"aws star", `{"Statement":[{"Effect":"Allow","Principal":{"AWS":"*"},"Action":"sts:AssumeRole"}]}`, true},
		{"aws star in list", `{"Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":"sts:AssumeRole"}]}`, true},
		{"scoped", `{"Statement":[{"Effect":"Allow","Principal":{"Service":"ec2.amazonaws.com"},"Action":"sts:AssumeRole"}]}`, false},
		{"unparseable left to validation", `{not json`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := cleanManifest()
			m.Components = append(m.Components, manifest.Component{
				Name: "App", Type: manifest.TypeIdentity,
				Identity: &manifest.IdentityConfig{
					RoleName: "app-role",
					Trust:    &manifest.TrustConfig{RawJSON: tt.raw},
				},
			})

			result := Lint(m, Options{EnabledRules: []string{"WST003"}})
			if tt.want {
				issue := findIssue(t, result.Issues, "WST003")
				assert.Equal(t, "App", issue.Component)
			} else {
				assert.True(t, result.Success)
			}
		})
	}
}

func TestWildcardTrust_ServiceTrustIsClean(t *testing.T) {
	m := cleanManifest()
	m.Components = append(m.Components, manifest.Component{
		Name: "App", Type: manifest.TypeIdentity,
		Identity: &manifest.IdentityConfig{
			RoleName: "app-role",
			Trust:    &manifest.TrustConfig{Services: []string{"lambda.amazonaws.com"}},
		},
	})

	result := Lint(m, Options{EnabledRules: []string{"WST003"}})
	assert.True(t, result.Success)
}

func TestAlarmWithoutActions(t *testing.T) {
	m := cleanManifest()
	m.Components[2].Monitoring.Alarms[0].AlarmActions = nil

	result := Lint(m, Options{})
	require.False(t, result.Success)

	issue := findIssue(t, result.Issues, "WST004")
	assert.Equal(t, "Ops", issue.Component)
	assert.Contains(t, issue.Message, "high-cpu")
}

func TestMissingNameTag(t *testing.T) {
	m := cleanManifest()
	m.Tags = nil

	result := Lint(m, Options{EnabledRules: []string{"WST005"}})
	require.False(t, result.Success)
	assert.Len(t, result.Issues, 3)
	assert.Equal(t, SeverityInfo, result.Issues[0].Severity)
}

func TestMissingNameTag_ComponentTagCounts(t *testing.T) {
	m := cleanManifest()
	m.Tags = nil
	m.Components[1].Storage.Tags = map[string]string{"Name": "web-data"}

	result := Lint(m, Options{EnabledRules: []string{"WST005"}})
	require.Len(t, result.Issues, 2)
	for _, issue := range result.Issues {
		assert.NotEqual(t, "Data", issue.Component)
	}
}

func TestLint_EnabledRulesFilter(t *testing.T) {
	m := cleanManifest()
	m.Components[0].Network.ZoneCount = 11
	m.Components[1].Storage.ForceSSL = boolPtr(false)

	result := Lint(m, Options{EnabledRules: []string{"WST002"}})
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "WST002", result.Issues[0].Rule)
}

func TestAllRules_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range AllRules() {
		assert.False(t, seen[rule.ID()], "duplicate rule ID %s", rule.ID())
		seen[rule.ID()] = true
		assert.NotEmpty(t, rule.Description())
	}
}

func findIssue(t *testing.T, issues []Issue, ruleID string) Issue {
	t.Helper()
	for _, issue := range issues {
		if issue.Rule == ruleID {
			return issue
		}
	}
	t.Fatalf("no issue for rule %s", ruleID)
	return Issue{}
}
