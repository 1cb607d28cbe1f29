// Package stack collects declarative resource definitions and builds
// CloudFormation templates from them.
//
// Components add resources under logical IDs; the stack serializes each
// resource's properties, records Ref/GetAtt dependencies, rejects duplicate
// IDs and dependency cycles, and renders a deterministic template. The
// actual provisioning (plan, diff, apply) is CloudFormation's job.
package stack

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/internal/serialize"
	"github.com/lex00/wetwire-stacks-go/internal/validate"
)

// ErrDuplicateID is returned when a logical ID is added twice.
var ErrDuplicateID = errors.New("stack: duplicate logical ID")

// Stack accumulates resources for a single CloudFormation template.
type Stack struct {
	name        string
	description string

	resources map[string]entry
	order     []string
	params    map[string]wetwire.Parameter
	outputs   map[string]wetwire.Output
}

type entry struct {
	def  wetwire.ResourceDef
	deps []string
}

// Option configures a Stack.
type Option func(*Stack)

// WithDescription sets the template description.
func WithDescription(desc string) Option {
	return func(s *Stack) { s.description = desc }
}

// New creates an empty stack.
func New(name string, opts ...Option) *Stack {
	s := &Stack{
		name:      name,
		resources: make(map[string]entry),
		params:    make(map[string]wetwire.Parameter),
		outputs:   make(map[string]wetwire.Output),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the stack name.
func (s *Stack) Name() string { return s.name }

// Add serializes r and records it under logicalID. Explicit orderings that
// CloudFormation cannot infer from references (gateway attachments, bucket
// policies) go in dependsOn.
//
// If r is a pointer, its AttrRef fields are bound to logicalID so the
// caller can hand attributes (r.Arn, r.AllocationId) to other resources.
func (s *Stack) Add(logicalID string, r wetwire.Resource, dependsOn ...string) error {
	if err := validate.ComponentName(logicalID); err != nil {
		return fmt.Errorf("stack: %w", err)
	}
	if _, exists := s.resources[logicalID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, logicalID)
	}

	bindAttrs(logicalID, r)

	props, err := serialize.Properties(r)
	if err != nil {
		return fmt.Errorf("stack: serializing %s: %w", logicalID, err)
	}

	deps := append([]string(nil), dependsOn...)
	deps = append(deps, referencedIDs(props)...)

	s.resources[logicalID] = entry{
		def: wetwire.ResourceDef{
			Type:       r.ResourceType(),
			Properties: props,
			DependsOn:  dedupeSorted(dependsOn),
		},
		deps: dedupeSorted(deps),
	}
	s.order = append(s.order, logicalID)
	return nil
}

// AddParameter records a template parameter.
func (s *Stack) AddParameter(name string, p wetwire.Parameter) error {
	if _, exists := s.params[name]; exists {
		return fmt.Errorf("%w: parameter %s", ErrDuplicateID, name)
	}
	s.params[name] = p
	return nil
}

// AddOutput records a template output.
func (s *Stack) AddOutput(name string, o wetwire.Output) error {
	if _, exists := s.outputs[name]; exists {
		return fmt.Errorf("%w: output %s", ErrDuplicateID, name)
	}
	s.outputs[name] = o
	return nil
}

// Resources returns logical IDs in insertion order.
func (s *Stack) Resources() []string {
	return append([]string(nil), s.order...)
}

// ResourceType returns the CloudFormation type of a resource, or "" if the
// ID is unknown.
func (s *Stack) ResourceType(logicalID string) string {
	return s.resources[logicalID].def.Type
}

// Dependencies returns the logical IDs that logicalID references, sorted.
func (s *Stack) Dependencies(logicalID string) []string {
	return append([]string(nil), s.resources[logicalID].deps...)
}

// Template assembles the CloudFormation template. It fails on dependency
// cycles and on references to logical IDs that were never added.
func (s *Stack) Template() (*wetwire.Template, error) {
	if _, err := s.topologicalSort(); err != nil {
		return nil, err
	}

	for id, e := range s.resources {
		for _, dep := range e.deps {
			if _, ok := s.resources[dep]; ok {
				continue
			}
			if _, ok := s.params[dep]; ok {
				continue
			}
			return nil, fmt.Errorf("stack: %s references unknown logical ID %s", id, dep)
		}
	}

	tmpl := &wetwire.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              s.description,
		Resources:                make(map[string]wetwire.ResourceDef, len(s.resources)),
	}
	for id, e := range s.resources {
		tmpl.Resources[id] = e.def
	}
	if len(s.params) > 0 {
		tmpl.Parameters = make(map[string]wetwire.Parameter, len(s.params))
		for name, p := range s.params {
			tmpl.Parameters[name] = p
		}
	}
	if len(s.outputs) > 0 {
		tmpl.Outputs = make(map[string]wetwire.Output, len(s.outputs))
		for name, o := range s.outputs {
			tmpl.Outputs[name] = o
		}
	}
	return tmpl, nil
}

// topologicalSort orders resources dependency-first using Kahn's algorithm.
// Ties break alphabetically so the order is stable across runs.
func (s *Stack) topologicalSort() ([]string, error) {
	graph := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range s.resources {
		graph[name] = nil
		inDegree[name] = 0
	}

	for name, e := range s.resources {
		for _, dep := range e.deps {
			if _, exists := s.resources[dep]; exists {
				graph[dep] = append(graph[dep], name)
				inDegree[name]++
			}
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range graph[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(s.resources) {
		var stuck []string
		for name, degree := range inDegree {
			if degree > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("stack: circular dependency among %s", strings.Join(stuck, ", "))
	}

	return result, nil
}

// ToJSON serializes the template to indented JSON.
func ToJSON(t *wetwire.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *wetwire.Template) ([]byte, error) {
	return yaml.Marshal(t)
}

// bindAttrs points every AttrRef field of *r at logicalID. The attribute
// name is the field name.
func bindAttrs(logicalID string, r wetwire.Resource) {
	val := reflect.ValueOf(r)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return
	}

	attrType := reflect.TypeOf(wetwire.AttrRef{})
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Type() != attrType || !field.CanSet() {
			continue
		}
		field.Set(reflect.ValueOf(wetwire.AttrRef{
			Resource:  logicalID,
			Attribute: val.Type().Field(i).Name,
		}))
	}
}

// referencedIDs walks serialized properties collecting Ref and Fn::GetAtt
// targets. Pseudo-parameters (AWS::*) are not dependencies.
func referencedIDs(v any) []string {
	var ids []string
	walkRefs(v, &ids)
	return ids
}

func walkRefs(v any, ids *[]string) {
	switch val := v.(type) {
	case map[string]any:
		if ref, ok := val["Ref"].(string); ok && len(val) == 1 {
			if !strings.HasPrefix(ref, "AWS::") {
				*ids = append(*ids, ref)
			}
			return
		}
		if getAtt, ok := val["Fn::GetAtt"]; ok && len(val) == 1 {
			switch target := getAtt.(type) {
			case []any:
				if len(target) > 0 {
					if name, ok := target[0].(string); ok {
						*ids = append(*ids, name)
					}
				}
			case []string:
				if len(target) > 0 {
					*ids = append(*ids, target[0])
				}
			}
			return
		}
		for _, nested := range val {
			walkRefs(nested, ids)
		}
	case []any:
		for _, nested := range val {
			walkRefs(nested, ids)
		}
	}
}

// dedupeSorted returns a sorted copy of in with duplicates removed; empty
// input yields nil so omitempty drops the field.
func dedupeSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
