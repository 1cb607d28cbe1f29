// Package ack exports manifest components as AWS Controllers for
// Kubernetes (ACK) custom resources.
//
// Network components map to VPC and Subnet CRDs, identity components to
// Role CRDs. Storage and monitoring components have no ACK mirror here and
// are skipped.
package ack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/lex00/wetwire-stacks-go/cidr"
	"github.com/lex00/wetwire-stacks-go/components/identity"
	"github.com/lex00/wetwire-stacks-go/components/network"
	"github.com/lex00/wetwire-stacks-go/internal/defaults"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
	"github.com/lex00/wetwire-stacks-go/manifest"
	ec2v1alpha1 "github.com/lex00/wetwire-stacks-go/resources/k8s/ec2/v1alpha1"
	iamv1alpha1 "github.com/lex00/wetwire-stacks-go/resources/k8s/iam/v1alpha1"
)

// Exporter converts manifests to ACK objects.
type Exporter struct {
	// Namespace for the exported objects. Defaults to "default".
	Namespace string
}

// Export returns the ACK objects for the manifest's exportable components,
// in manifest order.
func (e *Exporter) Export(m *manifest.Manifest) ([]any, error) {
	var objects []any
	for _, c := range m.Components {
		switch {
		case c.Network != nil:
			objs, err := e.exportNetwork(m, c)
			if err != nil {
				return nil, fmt.Errorf("ack: component %q: %w", c.Name, err)
			}
			objects = append(objects, objs...)
		case c.Identity != nil:
			obj, err := e.exportIdentity(m, c)
			if err != nil {
				return nil, fmt.Errorf("ack: component %q: %w", c.Name, err)
			}
			objects = append(objects, obj)
		}
	}
	return objects, nil
}

// RenderYAML renders the objects as a multi-document YAML stream. Field
// names follow the CRD schema (the objects' JSON tags), so the output can
// be applied with kubectl.
func (e *Exporter) RenderYAML(objects []any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	for _, obj := range objects {
		data, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("ack: %w", err)
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("ack: %w", err)
		}
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("ack: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("ack: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) exportNetwork(m *manifest.Manifest, c manifest.Component) ([]any, error) {
	cfg := network.Config{
		CidrBlock:          c.Network.CidrBlock,
		ZoneCount:          c.Network.ZoneCount,
		AvailabilityZones:  c.Network.AvailabilityZones,
		EnableDnsHostnames: c.Network.EnableDnsHostnames,
		EnableDnsSupport:   c.Network.EnableDnsSupport,
		InstanceTenancy:    c.Network.InstanceTenancy,
	}
	if err := defaults.Apply(&cfg, network.Defaults); err != nil {
		return nil, err
	}

	alloc, err := cidr.AllocateChecked(cfg.CidrBlock, cfg.ZoneCount)
	if err != nil {
		return nil, err
	}

	base := kebab(c.Name)
	crdTags := ec2Tags(m.Tags, c.Network.Tags)

	vpcName := base + "-vpc"
	vpc := ec2v1alpha1.VPC{
		TypeMeta:   typeMeta(ec2v1alpha1.APIVersion, "VPC"),
		ObjectMeta: e.objectMeta(vpcName),
		Spec: ec2v1alpha1.VPCSpec{
			CIDRBlocks:         []*string{&cfg.CidrBlock},
			EnableDNSHostnames: cfg.EnableDnsHostnames,
			EnableDNSSupport:   cfg.EnableDnsSupport,
			InstanceTenancy:    &cfg.InstanceTenancy,
			Tags:               crdTags,
		},
	}

	objects := []any{vpc}
	subnet := func(name, block string, zone int, public bool) ec2v1alpha1.Subnet {
		s := ec2v1alpha1.Subnet{
			TypeMeta:   typeMeta(ec2v1alpha1.APIVersion, "Subnet"),
			ObjectMeta: e.objectMeta(name),
			Spec: ec2v1alpha1.SubnetSpec{
				CIDRBlock: strPtr(block),
				VPCRef: &ec2v1alpha1.AWSResourceReferenceWrapper{
					From: &ec2v1alpha1.AWSResourceReference{Name: &vpcName},
				},
				Tags: crdTags,
			},
		}
		if public {
			s.Spec.MapPublicIPOnLaunch = boolPtr(true)
		}
		if zone < len(cfg.AvailabilityZones) {
			s.Spec.AvailabilityZone = strPtr(cfg.AvailabilityZones[zone])
		}
		return s
	}

	for i, block := range alloc.Public {
		objects = append(objects, subnet(fmt.Sprintf("%s-public-%d", base, i), block, i, true))
	}
	for i, block := range alloc.Private {
		objects = append(objects, subnet(fmt.Sprintf("%s-private-%d", base, i), block, i, false))
	}
	return objects, nil
}

func (e *Exporter) exportIdentity(m *manifest.Manifest, c manifest.Component) (any, error) {
	cfg := c.Identity

	trust, err := cfg.Trust.Trust()
	if err != nil {
		return nil, err
	}
	doc, err := identity.TrustDocument(trust)
	if err != nil {
		return nil, err
	}
	trustJSON := string(doc)

	role := iamv1alpha1.Role{
		TypeMeta:   typeMeta(iamv1alpha1.APIVersion, "Role"),
		ObjectMeta: e.objectMeta(kebab(c.Name) + "-role"),
		Spec: iamv1alpha1.RoleSpec{
			Name:                     cfg.RoleName,
			AssumeRolePolicyDocument: &trustJSON,
			Tags:                     iamTags(m.Tags, cfg.Tags),
		},
	}
	if cfg.Description != "" {
		role.Spec.Description = &cfg.Description
	}
	if cfg.Path != "" {
		role.Spec.Path = &cfg.Path
	}
	if cfg.MaxSessionDuration > 0 {
		d := int64(cfg.MaxSessionDuration)
		role.Spec.MaxSessionDuration = &d
	}
	for _, arn := range cfg.ManagedPolicyArns {
		role.Spec.Policies = append(role.Spec.Policies, strPtr(arn))
	}
	if len(cfg.InlinePolicies) > 0 {
		role.Spec.InlinePolicies = make(map[string]*string, len(cfg.InlinePolicies))
		for _, p := range cfg.InlinePolicies {
			stmts := make([]any, 0, len(p.Statements))
			for _, stmt := range p.PolicyStatements() {
				stmts = append(stmts, stmt)
			}
			data, err := json.Marshal(intrinsics.NewPolicyDocument(stmts...))
			if err != nil {
				return nil, err
			}
			role.Spec.InlinePolicies[p.Name] = strPtr(string(data))
		}
	}
	return role, nil
}

func (e *Exporter) objectMeta(name string) metav1.ObjectMeta {
	namespace := e.Namespace
	if namespace == "" {
		namespace = "default"
	}
	return metav1.ObjectMeta{Name: name, Namespace: namespace}
}

func typeMeta(apiVersion, kind string) metav1.TypeMeta {
	return metav1.TypeMeta{APIVersion: apiVersion, Kind: kind}
}

// mergedTagKeys merges manifest and component tags (component wins) and
// returns the merged map with its keys sorted.
func mergedTagKeys(global, local map[string]string) (map[string]string, []string) {
	merged := make(map[string]string, len(global)+len(local))
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range local {
		merged[k] = v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return merged, keys
}

func ec2Tags(global, local map[string]string) []*ec2v1alpha1.Tag {
	merged, keys := mergedTagKeys(global, local)
	if len(keys) == 0 {
		return nil
	}
	out := make([]*ec2v1alpha1.Tag, 0, len(keys))
	for _, k := range keys {
		key, value := k, merged[k]
		out = append(out, &ec2v1alpha1.Tag{Key: &key, Value: &value})
	}
	return out
}

func iamTags(global, local map[string]string) []*iamv1alpha1.Tag {
	merged, keys := mergedTagKeys(global, local)
	if len(keys) == 0 {
		return nil
	}
	out := make([]*iamv1alpha1.Tag, 0, len(keys))
	for _, k := range keys {
		key, value := k, merged[k]
		out = append(out, &iamv1alpha1.Tag{Key: &key, Value: &value})
	}
	return out
}

// kebab converts a component name like "WebApp" to "web-app".
func kebab(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
