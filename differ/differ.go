// Package differ provides semantic comparison of CloudFormation templates.
//
// Differences are reported per resource (added, removed, modified) with
// property-level change paths, independent of key order in the source
// documents.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	wetwire "github.com/lex00/wetwire-stacks-go"
)

// Result contains the difference between two templates.
type Result struct {
	Diff    wetwire.TemplateDiff
	Summary wetwire.DiffSummary
}

// Compare returns the semantic differences between two templates. Entries
// are sorted by resource name so output is stable.
func Compare(before, after *wetwire.Template) *Result {
	result := &Result{}

	for name, def := range after.Resources {
		if _, exists := before.Resources[name]; !exists {
			result.Diff.Added = append(result.Diff.Added, wetwire.DiffEntry{
				Resource: name,
				Type:     def.Type,
			})
		}
	}

	for name, def := range before.Resources {
		if _, exists := after.Resources[name]; !exists {
			result.Diff.Removed = append(result.Diff.Removed, wetwire.DiffEntry{
				Resource: name,
				Type:     def.Type,
			})
		}
	}

	for name, defBefore := range before.Resources {
		defAfter, exists := after.Resources[name]
		if !exists {
			continue
		}
		changes := compareResources(defBefore, defAfter)
		if len(changes) > 0 {
			result.Diff.Modified = append(result.Diff.Modified, wetwire.DiffEntry{
				Resource: name,
				Type:     defBefore.Type,
				Changes:  changes,
			})
		}
	}

	sortEntries(result.Diff.Added)
	sortEntries(result.Diff.Removed)
	sortEntries(result.Diff.Modified)

	result.Summary = wetwire.DiffSummary{
		Added:    len(result.Diff.Added),
		Removed:  len(result.Diff.Removed),
		Modified: len(result.Diff.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result
}

// CompareFiles compares two template files.
func CompareFiles(beforePath, afterPath string) (*Result, error) {
	before, err := LoadTemplate(beforePath)
	if err != nil {
		return nil, fmt.Errorf("differ: loading %s: %w", beforePath, err)
	}

	after, err := LoadTemplate(afterPath)
	if err != nil {
		return nil, fmt.Errorf("differ: loading %s: %w", afterPath, err)
	}

	return Compare(before, after), nil
}

// LoadTemplate reads a CloudFormation template from a JSON or YAML file.
func LoadTemplate(path string) (*wetwire.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var template wetwire.Template
	if err := json.Unmarshal(data, &template); err != nil {
		if err := yaml.Unmarshal(data, &template); err != nil {
			return nil, fmt.Errorf("not valid JSON or YAML: %w", err)
		}
	}

	return &template, nil
}

func compareResources(before, after wetwire.ResourceDef) []string {
	var changes []string

	if before.Type != after.Type {
		changes = append(changes, fmt.Sprintf("Type changed: %s -> %s", before.Type, after.Type))
	}

	changes = append(changes, compareProperties("", before.Properties, after.Properties)...)

	if !equalStringSlices(before.DependsOn, after.DependsOn) {
		changes = append(changes, "DependsOn changed")
	}

	return changes
}

// compareProperties recursively compares property maps, reporting dotted
// paths for nested changes.
func compareProperties(prefix string, before, after map[string]any) []string {
	var changes []string

	for key, afterVal := range after {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		beforeVal, exists := before[key]
		if !exists {
			changes = append(changes, path+" added")
			continue
		}
		if reflect.DeepEqual(beforeVal, afterVal) {
			continue
		}

		// Recurse into nested maps so the path names the changed leaf.
		beforeMap, okBefore := beforeVal.(map[string]any)
		afterMap, okAfter := afterVal.(map[string]any)
		if okBefore && okAfter {
			changes = append(changes, compareProperties(path, beforeMap, afterMap)...)
			continue
		}

		changes = append(changes, path+" modified")
	}

	for key := range before {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if _, exists := after[key]; !exists {
			changes = append(changes, path+" removed")
		}
	}

	sort.Strings(changes)
	return changes
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortEntries(entries []wetwire.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Resource < entries[j].Resource
	})
}
