package manifest

import (
	"fmt"

	"github.com/lex00/wetwire-stacks-go/components/identity"
	"github.com/lex00/wetwire-stacks-go/components/monitoring"
	"github.com/lex00/wetwire-stacks-go/components/network"
	"github.com/lex00/wetwire-stacks-go/components/storage"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
	"github.com/lex00/wetwire-stacks-go/stack"
)

// BuildOption adjusts manifest expansion.
type BuildOption func(*buildOptions)

type buildOptions struct {
	availabilityZones []string
}

// WithAvailabilityZones pins network components without explicit zones to
// the given zone names instead of the GetAZs intrinsic.
func WithAvailabilityZones(zones []string) BuildOption {
	return func(o *buildOptions) {
		o.availabilityZones = zones
	}
}

// Build expands the manifest into a stack by running each component
// constructor in manifest order. Manifest-level tags apply to every
// component; component tags win on conflict.
func Build(m *Manifest, opts ...BuildOption) (*stack.Stack, error) {
	var bo buildOptions
	for _, opt := range opts {
		opt(&bo)
	}

	s := stack.New(m.Name, stack.WithDescription(m.Description))

	for _, c := range m.Components {
		var err error
		switch c.Type {
		case TypeNetwork:
			_, err = network.New(s, c.Name, networkConfig(c.Network, m.Tags, bo))
		case TypeStorage:
			_, err = storage.New(s, c.Name, storageConfig(c.Storage, m.Tags))
		case TypeIdentity:
			var cfg identity.Config
			cfg, err = identityConfig(c.Identity, m.Tags)
			if err == nil {
				_, err = identity.New(s, c.Name, cfg)
			}
		case TypeMonitoring:
			_, err = monitoring.New(s, c.Name, monitoringConfig(c.Monitoring, m.Tags))
		default:
			err = fmt.Errorf("manifest: unknown component type %q", c.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("manifest: component %q: %w", c.Name, err)
		}
	}

	return s, nil
}

func mergeTags(global, local map[string]string) map[string]string {
	if len(global) == 0 {
		return local
	}
	merged := make(map[string]string, len(global)+len(local))
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range local {
		merged[k] = v
	}
	return merged
}

func networkConfig(c *NetworkConfig, globalTags map[string]string, bo buildOptions) network.Config {
	zones := c.AvailabilityZones
	if len(zones) == 0 {
		zones = bo.availabilityZones
	}
	return network.Config{
		CidrBlock:          c.CidrBlock,
		ZoneCount:          c.ZoneCount,
		AvailabilityZones:  zones,
		EnableNat:          c.EnableNat,
		SingleNatGateway:   c.SingleNatGateway,
		EnableDnsHostnames: c.EnableDnsHostnames,
		EnableDnsSupport:   c.EnableDnsSupport,
		InstanceTenancy:    c.InstanceTenancy,
		Tags:               mergeTags(globalTags, c.Tags),
	}
}

func storageConfig(c *StorageConfig, globalTags map[string]string) storage.Config {
	cfg := storage.Config{
		BucketName:        c.BucketName,
		Versioning:        c.Versioning,
		ForceSSL:          c.ForceSSL,
		BlockPublicAccess: c.BlockPublicAccess,
		ExpireAfterDays:   c.ExpireAfterDays,
		Tags:              mergeTags(globalTags, c.Tags),
	}
	if c.Encryption != nil {
		cfg.Encryption = storage.Encryption{
			Algorithm: c.Encryption.Algorithm,
			KeyArn:    c.Encryption.KeyArn,
		}
	}
	return cfg
}

func identityConfig(c *IdentityConfig, globalTags map[string]string) (identity.Config, error) {
	cfg := identity.Config{
		RoleName:           c.RoleName,
		Description:        c.Description,
		Path:               c.Path,
		MaxSessionDuration: c.MaxSessionDuration,
		ManagedPolicyArns:  c.ManagedPolicyArns,
		Tags:               mergeTags(globalTags, c.Tags),
	}

	trust, err := c.Trust.Trust()
	if err != nil {
		return identity.Config{}, err
	}
	cfg.Trust = trust

	for _, p := range c.InlinePolicies {
		cfg.InlinePolicies = append(cfg.InlinePolicies, identity.InlinePolicy{
			Name:       p.Name,
			Statements: p.PolicyStatements(),
		})
	}
	return cfg, nil
}

// Trust maps the YAML trust block to the trust union. Exactly one of
// services, accountId, or rawJson selects the variant.
func (t *TrustConfig) Trust() (identity.Trust, error) {
	if t == nil {
		return nil, fmt.Errorf("trust is required")
	}

	variants := 0
	if len(t.Services) > 0 {
		variants++
	}
	if t.AccountID != "" {
		variants++
	}
	if t.RawJSON != "" {
		variants++
	}
	if variants != 1 {
		return nil, fmt.Errorf("trust needs exactly one of services, accountId, or rawJson, found %d", variants)
	}

	switch {
	case len(t.Services) > 0:
		return identity.ServiceTrust{Services: t.Services, ExternalID: t.ExternalID}, nil
	case t.AccountID != "":
		return identity.AccountTrust{AccountID: t.AccountID, ExternalID: t.ExternalID}, nil
	default:
		return identity.RawPolicyText{JSON: t.RawJSON}, nil
	}
}

// PolicyStatements converts the policy's YAML statements into policy
// document statements.
func (p PolicyConfig) PolicyStatements() []intrinsics.PolicyStatement {
	out := make([]intrinsics.PolicyStatement, 0, len(p.Statements))
	for _, sc := range p.Statements {
		stmt := intrinsics.PolicyStatement{
			Sid:      sc.Sid,
			Effect:   sc.Effect,
			Action:   anySlice(sc.Action),
			Resource: anySlice(sc.Resource),
		}
		if len(sc.Condition) > 0 {
			cond := intrinsics.Json{}
			for op, kv := range sc.Condition {
				inner := intrinsics.Json{}
				for k, v := range kv {
					inner[k] = v
				}
				cond[op] = inner
			}
			stmt.Condition = cond
		}
		out = append(out, stmt)
	}
	return out
}

func monitoringConfig(c *MonitoringConfig, globalTags map[string]string) monitoring.Config {
	cfg := monitoring.Config{
		Tags: mergeTags(globalTags, c.Tags),
	}
	for _, a := range c.Alarms {
		cfg.Alarms = append(cfg.Alarms, monitoring.AlarmConfig{
			Name:               a.Name,
			Description:        a.Description,
			Namespace:          a.Namespace,
			MetricName:         a.MetricName,
			Dimensions:         anyMap(a.Dimensions),
			Statistic:          a.Statistic,
			Period:             a.Period,
			EvaluationPeriods:  a.EvaluationPeriods,
			DatapointsToAlarm:  a.DatapointsToAlarm,
			Threshold:          a.Threshold,
			ComparisonOperator: a.ComparisonOperator,
			TreatMissingData:   a.TreatMissingData,
			AlarmActions:       anySlice(a.AlarmActions),
			OKActions:          anySlice(a.OKActions),
		})
	}
	if c.Composite != nil {
		cfg.Composite = &monitoring.CompositeConfig{
			Name:        c.Composite.Name,
			Description: c.Composite.Description,
			Actions:     anySlice(c.Composite.Actions),
		}
	}
	if c.Dashboard != nil {
		cfg.Dashboard = &monitoring.DashboardConfig{Name: c.Dashboard.Name}
	}
	return cfg
}

func anySlice(in []string) []any {
	if len(in) == 0 {
		return nil
	}
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func anyMap(in map[string]string) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
