// Package monitoring provides the CloudWatch monitoring component.
//
// It emits metric alarms with conservative evaluation defaults, an optional
// composite alarm aggregating them, and an optional dashboard generated from
// the alarm definitions.
package monitoring

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/lex00/wetwire-stacks-go/components/tags"
	"github.com/lex00/wetwire-stacks-go/internal/defaults"
	"github.com/lex00/wetwire-stacks-go/internal/validate"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
	"github.com/lex00/wetwire-stacks-go/resources/cloudwatch"
	"github.com/lex00/wetwire-stacks-go/stack"
)

// AlarmConfig describes one metric alarm. Zero evaluation fields pick up
// AlarmDefaults.
type AlarmConfig struct {
	// Name is the alarm name. Required.
	Name        string
	Description string

	// Namespace and MetricName identify the metric. Required.
	Namespace  string
	MetricName string
	Dimensions map[string]any

	Statistic          string
	Period             int
	EvaluationPeriods  int
	DatapointsToAlarm  int
	Threshold          float64
	ComparisonOperator string
	TreatMissingData   string

	AlarmActions []any
	OKActions    []any
}

// CompositeConfig aggregates the component's alarms into one. The composite
// fires when any child alarm is in ALARM state.
type CompositeConfig struct {
	// Name is the composite alarm name. Required.
	Name        string
	Description string
	Actions     []any
}

// DashboardConfig renders the component's alarms as a metric dashboard.
type DashboardConfig struct {
	// Name is the dashboard name. Required.
	Name string
}

// Config describes the desired monitoring setup.
type Config struct {
	Alarms    []AlarmConfig
	Composite *CompositeConfig
	Dashboard *DashboardConfig

	Tags map[string]string
}

// AlarmDefaults is the conservative baseline: five-minute average, three
// consecutive breaching periods, missing data treated as missing.
var AlarmDefaults = AlarmConfig{
	Statistic:          "Average",
	Period:             300,
	EvaluationPeriods:  3,
	ComparisonOperator: "GreaterThanThreshold",
	TreatMissingData:   "missing",
}

var comparisonOperators = map[string]bool{
	"GreaterThanThreshold":                     true,
	"GreaterThanOrEqualToThreshold":            true,
	"LessThanThreshold":                        true,
	"LessThanOrEqualToThreshold":               true,
	"LessThanLowerOrGreaterThanUpperThreshold": true,
}

var missingDataModes = map[string]bool{
	"breaching":    true,
	"notBreaching": true,
	"ignore":       true,
	"missing":      true,
}

// Monitoring exposes the identifiers downstream components need.
type Monitoring struct {
	// AlarmIDs are Refs to the alarms, in config order.
	AlarmIDs []intrinsics.Ref
	// CompositeID refers to the composite alarm when one was configured.
	CompositeID *intrinsics.Ref
}

// New validates cfg, applies alarm defaults, and adds the alarms (plus
// composite and dashboard, when configured) to s under logical IDs prefixed
// with name.
func New(s *stack.Stack, name string, cfg Config) (*Monitoring, error) {
	if err := validate.ComponentName(name); err != nil {
		return nil, fmt.Errorf("monitoring: %w", err)
	}
	if len(cfg.Alarms) == 0 {
		return nil, fmt.Errorf("monitoring: at least one alarm is required")
	}

	mon := &Monitoring{}
	alarmNames := make([]string, 0, len(cfg.Alarms))
	resolved := make([]AlarmConfig, 0, len(cfg.Alarms))

	for i := range cfg.Alarms {
		a := cfg.Alarms[i]
		if err := defaults.Apply(&a, AlarmDefaults); err != nil {
			return nil, fmt.Errorf("monitoring: %w", err)
		}
		if err := validateAlarm(a); err != nil {
			return nil, fmt.Errorf("monitoring: alarm %d: %w", i, err)
		}
		resolved = append(resolved, a)

		alarmID := fmt.Sprintf("%sAlarm%d", name, i)
		alarm := &cloudwatch.Alarm{
			AlarmName:          a.Name,
			AlarmDescription:   a.Description,
			Namespace:          a.Namespace,
			MetricName:         a.MetricName,
			Dimensions:         dimensionList(a.Dimensions),
			Statistic:          a.Statistic,
			Period:             a.Period,
			EvaluationPeriods:  a.EvaluationPeriods,
			DatapointsToAlarm:  a.DatapointsToAlarm,
			Threshold:          &a.Threshold,
			ComparisonOperator: a.ComparisonOperator,
			TreatMissingData:   a.TreatMissingData,
			AlarmActions:       a.AlarmActions,
			OKActions:          a.OKActions,
			Tags:               tags.List(cfg.Tags, "alarm"),
		}
		if err := s.Add(alarmID, alarm); err != nil {
			return nil, err
		}

		mon.AlarmIDs = append(mon.AlarmIDs, intrinsics.Ref{LogicalName: alarmID})
		alarmNames = append(alarmNames, a.Name)
	}

	if cfg.Composite != nil {
		if err := addComposite(s, name, *cfg.Composite, alarmNames, mon); err != nil {
			return nil, err
		}
	}

	// The dashboard renders from the defaulted alarm configs, so its widgets
	// carry the same stat and period as the alarm resources.
	if cfg.Dashboard != nil {
		if err := addDashboard(s, name, *cfg.Dashboard, resolved, mon); err != nil {
			return nil, err
		}
	}

	return mon, nil
}

func validateAlarm(a AlarmConfig) error {
	if err := validate.AlarmName(a.Name); err != nil {
		return err
	}
	if a.Namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	if a.MetricName == "" {
		return fmt.Errorf("metric name is required")
	}
	if !validPeriod(a.Period) {
		return fmt.Errorf("period %d is not 10, 30, or a multiple of 60", a.Period)
	}
	if a.EvaluationPeriods < 1 {
		return fmt.Errorf("evaluation periods %d must be at least 1", a.EvaluationPeriods)
	}
	if a.DatapointsToAlarm > a.EvaluationPeriods {
		return fmt.Errorf("datapoints to alarm %d exceeds evaluation periods %d", a.DatapointsToAlarm, a.EvaluationPeriods)
	}
	if !comparisonOperators[a.ComparisonOperator] {
		return fmt.Errorf("unknown comparison operator %q", a.ComparisonOperator)
	}
	if !missingDataModes[a.TreatMissingData] {
		return fmt.Errorf("unknown missing data treatment %q", a.TreatMissingData)
	}
	return nil
}

func validPeriod(p int) bool {
	return p == 10 || p == 30 || (p > 0 && p%60 == 0)
}

// dimensionList sorts dimensions by name so serialization is stable.
func dimensionList(dims map[string]any) []cloudwatch.Alarm_Dimension {
	if len(dims) == 0 {
		return nil
	}
	names := make([]string, 0, len(dims))
	for k := range dims {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make([]cloudwatch.Alarm_Dimension, 0, len(names))
	for _, n := range names {
		out = append(out, cloudwatch.Alarm_Dimension{Name: n, Value: dims[n]})
	}
	return out
}

func addComposite(s *stack.Stack, name string, cfg CompositeConfig, alarmNames []string, mon *Monitoring) error {
	if err := validate.AlarmName(cfg.Name); err != nil {
		return fmt.Errorf("monitoring: composite: %w", err)
	}

	terms := make([]string, 0, len(alarmNames))
	for _, n := range alarmNames {
		terms = append(terms, fmt.Sprintf("ALARM(%q)", n))
	}

	compositeID := name + "Composite"
	composite := &cloudwatch.CompositeAlarm{
		AlarmName:        cfg.Name,
		AlarmDescription: cfg.Description,
		AlarmRule:        strings.Join(terms, " OR "),
		AlarmActions:     cfg.Actions,
	}

	// The rule references child alarms by name, invisible to the reference
	// scanner, so the dependencies are declared explicitly.
	deps := make([]string, 0, len(mon.AlarmIDs))
	for _, ref := range mon.AlarmIDs {
		deps = append(deps, ref.LogicalName)
	}
	if err := s.Add(compositeID, composite, deps...); err != nil {
		return err
	}

	mon.CompositeID = &intrinsics.Ref{LogicalName: compositeID}
	return nil
}

func addDashboard(s *stack.Stack, name string, cfg DashboardConfig, alarms []AlarmConfig, mon *Monitoring) error {
	if cfg.Name == "" {
		return fmt.Errorf("monitoring: dashboard name is required")
	}

	body, err := dashboardBody(alarms)
	if err != nil {
		return fmt.Errorf("monitoring: %w", err)
	}

	dashboard := &cloudwatch.Dashboard{
		DashboardName: cfg.Name,
		DashboardBody: body,
	}
	deps := make([]string, 0, len(mon.AlarmIDs))
	for _, ref := range mon.AlarmIDs {
		deps = append(deps, ref.LogicalName)
	}
	return s.Add(name+"Dashboard", dashboard, deps...)
}

// dashboardBody lays the alarms out as metric widgets, two per row, and
// renders the body as canonical JSON (encoding/json sorts map keys, so the
// output is byte-stable for a given config).
func dashboardBody(alarms []AlarmConfig) (string, error) {
	const widgetWidth, widgetHeight = 12, 6

	widgets := make([]map[string]any, 0, len(alarms))
	for i, a := range alarms {
		metric := []any{a.Namespace, a.MetricName}
		for _, d := range dimensionList(a.Dimensions) {
			metric = append(metric, d.Name, d.Value)
		}

		widgets = append(widgets, map[string]any{
			"type":   "metric",
			"x":      (i % 2) * widgetWidth,
			"y":      (i / 2) * widgetHeight,
			"width":  widgetWidth,
			"height": widgetHeight,
			"properties": map[string]any{
				"title":   a.Name,
				"metrics": []any{metric},
				"stat":    a.Statistic,
				"period":  a.Period,
				"annotations": map[string]any{
					"horizontal": []any{
						map[string]any{"label": a.ComparisonOperator, "value": a.Threshold},
					},
				},
			},
		})
	}

	data, err := json.Marshal(map[string]any{"widgets": widgets})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
