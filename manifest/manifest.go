// Package manifest loads YAML stack manifests and expands them into stacks.
//
// A manifest declares a named stack as an ordered list of components. Each
// component entry carries the config block for its type:
//
//	name: web
//	components:
//	  - name: Core
//	    type: network
//	    network:
//	      cidrBlock: 10.0.0.0/16
//	      zoneCount: 2
//	  - name: Data
//	    type: storage
//	    storage:
//	      bucketName: web-data
package manifest

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lex00/wetwire-stacks-go/internal/validate"
)

// Component types accepted in a manifest.
const (
	TypeNetwork    = "network"
	TypeStorage    = "storage"
	TypeIdentity   = "identity"
	TypeMonitoring = "monitoring"
)

// Manifest is the root document.
type Manifest struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Tags        map[string]string `yaml:"tags,omitempty"`
	Components  []Component       `yaml:"components"`
}

// Component is one entry in the components list. Exactly one config block,
// matching Type, must be set.
type Component struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	Network    *NetworkConfig    `yaml:"network,omitempty"`
	Storage    *StorageConfig    `yaml:"storage,omitempty"`
	Identity   *IdentityConfig   `yaml:"identity,omitempty"`
	Monitoring *MonitoringConfig `yaml:"monitoring,omitempty"`
}

// NetworkConfig mirrors components/network.Config.
type NetworkConfig struct {
	CidrBlock          string            `yaml:"cidrBlock,omitempty"`
	ZoneCount          int               `yaml:"zoneCount,omitempty"`
	AvailabilityZones  []string          `yaml:"availabilityZones,omitempty"`
	EnableNat          *bool             `yaml:"enableNat,omitempty"`
	SingleNatGateway   *bool             `yaml:"singleNatGateway,omitempty"`
	EnableDnsHostnames *bool             `yaml:"enableDnsHostnames,omitempty"`
	EnableDnsSupport   *bool             `yaml:"enableDnsSupport,omitempty"`
	InstanceTenancy    string            `yaml:"instanceTenancy,omitempty"`
	Tags               map[string]string `yaml:"tags,omitempty"`
}

// StorageConfig mirrors components/storage.Config.
type StorageConfig struct {
	BucketName        string            `yaml:"bucketName"`
	Versioning        *bool             `yaml:"versioning,omitempty"`
	Encryption        *EncryptionConfig `yaml:"encryption,omitempty"`
	ForceSSL          *bool             `yaml:"forceSsl,omitempty"`
	BlockPublicAccess *bool             `yaml:"blockPublicAccess,omitempty"`
	ExpireAfterDays   int               `yaml:"expireAfterDays,omitempty"`
	Tags              map[string]string `yaml:"tags,omitempty"`
}

// EncryptionConfig selects the bucket encryption algorithm.
type EncryptionConfig struct {
	Algorithm string `yaml:"algorithm,omitempty"`
	KeyArn    string `yaml:"keyArn,omitempty"`
}

// IdentityConfig mirrors components/identity.Config.
type IdentityConfig struct {
	RoleName           string            `yaml:"roleName"`
	Description        string            `yaml:"description,omitempty"`
	Path               string            `yaml:"path,omitempty"`
	MaxSessionDuration int               `yaml:"maxSessionDuration,omitempty"`
	Trust              *TrustConfig      `yaml:"trust"`
	InlinePolicies     []PolicyConfig    `yaml:"inlinePolicies,omitempty"`
	ManagedPolicyArns  []string          `yaml:"managedPolicyArns,omitempty"`
	Tags               map[string]string `yaml:"tags,omitempty"`
}

// TrustConfig is the YAML form of the trust union. Exactly one of Services,
// AccountID, or RawJSON must be set.
type TrustConfig struct {
	Services   []string `yaml:"services,omitempty"`
	AccountID  string   `yaml:"accountId,omitempty"`
	RawJSON    string   `yaml:"rawJson,omitempty"`
	ExternalID string   `yaml:"externalId,omitempty"`
}

// PolicyConfig is a named inline policy.
type PolicyConfig struct {
	Name       string            `yaml:"name"`
	Statements []StatementConfig `yaml:"statements"`
}

// StatementConfig is one policy statement.
type StatementConfig struct {
	Sid       string                       `yaml:"sid,omitempty"`
	Effect    string                       `yaml:"effect"`
	Action    []string                     `yaml:"action"`
	Resource  []string                     `yaml:"resource"`
	Condition map[string]map[string]string `yaml:"condition,omitempty"`
}

// MonitoringConfig mirrors components/monitoring.Config.
type MonitoringConfig struct {
	Alarms    []AlarmConfig     `yaml:"alarms"`
	Composite *CompositeConfig  `yaml:"composite,omitempty"`
	Dashboard *DashboardConfig  `yaml:"dashboard,omitempty"`
	Tags      map[string]string `yaml:"tags,omitempty"`
}

// AlarmConfig is one metric alarm.
type AlarmConfig struct {
	Name               string            `yaml:"name"`
	Description        string            `yaml:"description,omitempty"`
	Namespace          string            `yaml:"namespace"`
	MetricName         string            `yaml:"metricName"`
	Dimensions         map[string]string `yaml:"dimensions,omitempty"`
	Statistic          string            `yaml:"statistic,omitempty"`
	Period             int               `yaml:"period,omitempty"`
	EvaluationPeriods  int               `yaml:"evaluationPeriods,omitempty"`
	DatapointsToAlarm  int               `yaml:"datapointsToAlarm,omitempty"`
	Threshold          float64           `yaml:"threshold,omitempty"`
	ComparisonOperator string            `yaml:"comparisonOperator,omitempty"`
	TreatMissingData   string            `yaml:"treatMissingData,omitempty"`
	AlarmActions       []string          `yaml:"alarmActions,omitempty"`
	OKActions          []string          `yaml:"okActions,omitempty"`
}

// CompositeConfig is the optional composite alarm.
type CompositeConfig struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Actions     []string `yaml:"actions,omitempty"`
}

// DashboardConfig is the optional dashboard.
type DashboardConfig struct {
	Name string `yaml:"name"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest YAML. Unknown fields are rejected so
// typos in config keys surface as errors instead of silent defaults.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks structural rules the YAML schema cannot express.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: stack name is required")
	}
	if len(m.Components) == 0 {
		return fmt.Errorf("manifest: at least one component is required")
	}

	seen := make(map[string]bool, len(m.Components))
	for i, c := range m.Components {
		if err := validate.ComponentName(c.Name); err != nil {
			return fmt.Errorf("manifest: component %d: %w", i, err)
		}
		if seen[c.Name] {
			return fmt.Errorf("manifest: duplicate component name %q", c.Name)
		}
		seen[c.Name] = true

		if err := c.validateShape(); err != nil {
			return fmt.Errorf("manifest: component %q: %w", c.Name, err)
		}
	}
	return nil
}

func (c *Component) validateShape() error {
	blocks := 0
	if c.Network != nil {
		blocks++
	}
	if c.Storage != nil {
		blocks++
	}
	if c.Identity != nil {
		blocks++
	}
	if c.Monitoring != nil {
		blocks++
	}
	if blocks != 1 {
		return fmt.Errorf("exactly one config block is required, found %d", blocks)
	}

	switch c.Type {
	case TypeNetwork:
		if c.Network == nil {
			return fmt.Errorf("type %q needs a network block", c.Type)
		}
	case TypeStorage:
		if c.Storage == nil {
			return fmt.Errorf("type %q needs a storage block", c.Type)
		}
	case TypeIdentity:
		if c.Identity == nil {
			return fmt.Errorf("type %q needs an identity block", c.Type)
		}
	case TypeMonitoring:
		if c.Monitoring == nil {
			return fmt.Errorf("type %q needs a monitoring block", c.Type)
		}
	default:
		return fmt.Errorf("unknown component type %q", c.Type)
	}
	return nil
}
