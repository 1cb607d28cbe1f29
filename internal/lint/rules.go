package lint

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lex00/wetwire-stacks-go/cidr"
	"github.com/lex00/wetwire-stacks-go/manifest"
)

// ZoneCountExceedsTier flags network components whose zone count would push
// public /24 blocks into the private subnet tier.
type ZoneCountExceedsTier struct{}

func (r ZoneCountExceedsTier) ID() string { return "WST001" }
func (r ZoneCountExceedsTier) Description() string {
	return "Zone count must stay within the private subnet tier offset"
}

func (r ZoneCountExceedsTier) Check(m *manifest.Manifest) []Issue {
	var issues []Issue
	for _, c := range m.Components {
		if c.Network == nil {
			continue
		}
		if c.Network.ZoneCount > cidr.MaxZones {
			issues = append(issues, Issue{
				Rule:       r.ID(),
				Component:  c.Name,
				Message:    fmt.Sprintf("zone count %d exceeds %d; public /24 blocks would collide with the private tier", c.Network.ZoneCount, cidr.MaxZones),
				Suggestion: fmt.Sprintf("use at most %d zones", cidr.MaxZones),
				Severity:   SeverityError,
			})
		}
	}
	return issues
}

// WeakenedBucketBaseline flags storage components that explicitly disable a
// protection the secure defaults would enable.
type WeakenedBucketBaseline struct{}

func (r WeakenedBucketBaseline) ID() string { return "WST002" }
func (r WeakenedBucketBaseline) Description() string {
	return "Bucket overrides that weaken the secure baseline"
}

func (r WeakenedBucketBaseline) Check(m *manifest.Manifest) []Issue {
	var issues []Issue
	for _, c := range m.Components {
		if c.Storage == nil {
			continue
		}
		s := c.Storage

		weaken := func(field string) {
			issues = append(issues, Issue{
				Rule:       r.ID(),
				Component:  c.Name,
				Message:    field + " is explicitly disabled",
				Suggestion: "remove the override to keep the secure default",
				Severity:   SeverityWarning,
			})
		}
		if s.Versioning != nil && !*s.Versioning {
			weaken("versioning")
		}
		if s.ForceSSL != nil && !*s.ForceSSL {
			weaken("forceSsl")
		}
		if s.BlockPublicAccess != nil && !*s.BlockPublicAccess {
			weaken("blockPublicAccess")
		}
	}
	return issues
}

// WildcardTrustPrincipal flags raw trust policies whose principal is "*",
// which lets any AWS identity assume the role.
type WildcardTrustPrincipal struct{}

func (r WildcardTrustPrincipal) ID() string { return "WST003" }
func (r WildcardTrustPrincipal) Description() string {
	return "Wildcard principals in role trust policies"
}

func (r WildcardTrustPrincipal) Check(m *manifest.Manifest) []Issue {
	var issues []Issue
	for _, c := range m.Components {
		if c.Identity == nil || c.Identity.Trust == nil || c.Identity.Trust.RawJSON == "" {
			continue
		}
		if hasWildcardPrincipal(c.Identity.Trust.RawJSON) {
			issues = append(issues, Issue{
				Rule:       r.ID(),
				Component:  c.Name,
				Message:    "trust policy allows any principal to assume the role",
				Suggestion: "scope the principal to a service or account",
				Severity:   SeverityError,
			})
		}
	}
	return issues
}

// hasWildcardPrincipal parses the trust document and walks its statements
// looking for a "*" principal. Unparseable documents are left to the
// component's own validation.
func hasWildcardPrincipal(raw string) bool {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return false
	}

	statements, ok := doc["Statement"].([]any)
	if !ok {
		return false
	}
	for _, raw := range statements {
		stmt, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		switch p := stmt["Principal"].(type) {
		case string:
			if p == "*" {
				return true
			}
		case map[string]any:
			for _, v := range p {
				if principalIsWildcard(v) {
					return true
				}
			}
		}
	}
	return false
}

func principalIsWildcard(v any) bool {
	switch p := v.(type) {
	case string:
		return p == "*"
	case []any:
		for _, e := range p {
			if s, ok := e.(string); ok && s == "*" {
				return true
			}
		}
	}
	return false
}

// AlarmWithoutActions flags alarms that fire into the void.
type AlarmWithoutActions struct{}

func (r AlarmWithoutActions) ID() string { return "WST004" }
func (r AlarmWithoutActions) Description() string {
	return "Alarms with no actions configured"
}

func (r AlarmWithoutActions) Check(m *manifest.Manifest) []Issue {
	var issues []Issue
	for _, c := range m.Components {
		if c.Monitoring == nil {
			continue
		}
		for _, a := range c.Monitoring.Alarms {
			if len(a.AlarmActions) == 0 && len(a.OKActions) == 0 {
				issues = append(issues, Issue{
					Rule:       r.ID(),
					Component:  c.Name,
					Message:    fmt.Sprintf("alarm %q has no alarm or OK actions", a.Name),
					Suggestion: "add an SNS topic ARN to alarmActions",
					Severity:   SeverityWarning,
				})
			}
		}
	}
	return issues
}

// MissingNameTag notes components that will fall back to the generated
// stack-derived Name tag.
type MissingNameTag struct{}

func (r MissingNameTag) ID() string { return "WST005" }
func (r MissingNameTag) Description() string {
	return "No Name tag defined; generated default will apply"
}

func (r MissingNameTag) Check(m *manifest.Manifest) []Issue {
	if hasNameTag(m.Tags) {
		return nil
	}

	var issues []Issue
	for _, c := range m.Components {
		var tags map[string]string
		switch {
		case c.Network != nil:
			tags = c.Network.Tags
		case c.Storage != nil:
			tags = c.Storage.Tags
		case c.Identity != nil:
			tags = c.Identity.Tags
		case c.Monitoring != nil:
			tags = c.Monitoring.Tags
		}
		if hasNameTag(tags) {
			continue
		}
		issues = append(issues, Issue{
			Rule:       r.ID(),
			Component:  c.Name,
			Message:    "no Name tag defined; resources get a stack-derived name",
			Suggestion: "set a Name tag in the manifest or the component",
			Severity:   SeverityInfo,
		})
	}
	return issues
}

func hasNameTag(tags map[string]string) bool {
	for k := range tags {
		if strings.EqualFold(k, "Name") {
			return true
		}
	}
	return false
}
