// Package lint provides lint rules for stack manifests.
//
// The rules catch configurations that build successfully (or fail late) but
// deviate from the secure baseline or known platform limits. Each rule
// provides a clear message and, where possible, a suggestion.
//
// Rules:
//
//	WST001: Zone count must stay within the private subnet tier offset
//	WST002: Bucket overrides that weaken the secure baseline
//	WST003: Wildcard principals in role trust policies
//	WST004: Alarms with no actions configured
//	WST005: No Name tag defined; generated default will apply
package lint

import (
	"github.com/lex00/wetwire-stacks-go/manifest"
)

// Severity classifies an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single finding.
type Issue struct {
	Rule       string
	Component  string
	Message    string
	Suggestion string
	Severity   Severity
}

// Rule is the interface for manifest lint rules.
type Rule interface {
	ID() string
	Description() string
	Check(m *manifest.Manifest) []Issue
}

// Result contains the outcome of linting.
type Result struct {
	Success bool
	Issues  []Issue
}

// Options configures the linter.
type Options struct {
	// EnabledRules to run. If empty, all rules are enabled.
	EnabledRules []string
}

// Lint runs the configured rules over the manifest.
func Lint(m *manifest.Manifest, opts Options) Result {
	var issues []Issue
	for _, rule := range getRules(opts) {
		issues = append(issues, rule.Check(m)...)
	}
	return Result{
		Success: len(issues) == 0,
		Issues:  issues,
	}
}

// AllRules returns every rule in ID order.
func AllRules() []Rule {
	return []Rule{
		ZoneCountExceedsTier{},
		WeakenedBucketBaseline{},
		WildcardTrustPrincipal{},
		AlarmWithoutActions{},
		MissingNameTag{},
	}
}

func getRules(opts Options) []Rule {
	all := AllRules()
	if len(opts.EnabledRules) == 0 {
		return all
	}

	enabled := make(map[string]bool, len(opts.EnabledRules))
	for _, id := range opts.EnabledRules {
		enabled[id] = true
	}

	var rules []Rule
	for _, rule := range all {
		if enabled[rule.ID()] {
			rules = append(rules, rule)
		}
	}
	return rules
}
