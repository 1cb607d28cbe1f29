// Package cloudwatch provides typed declarations for the CloudWatch
// resources the monitoring component emits.
package cloudwatch

import (
	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
)

// Alarm is an AWS::CloudWatch::Alarm resource.
type Alarm struct {
	AlarmName         any               `json:"AlarmName,omitempty"`
	AlarmDescription  string            `json:"AlarmDescription,omitempty"`
	Namespace         string            `json:"Namespace,omitempty"`
	MetricName        string            `json:"MetricName,omitempty"`
	Dimensions        []Alarm_Dimension `json:"Dimensions,omitempty"`
	Statistic         string            `json:"Statistic,omitempty"`
	ExtendedStatistic string            `json:"ExtendedStatistic,omitempty"`
	Period            int               `json:"Period,omitempty"`
	EvaluationPeriods int               `json:"EvaluationPeriods,omitempty"`
	DatapointsToAlarm int               `json:"DatapointsToAlarm,omitempty"`

	// Threshold is a pointer so a zero threshold ("errors > 0") still
	// serializes instead of being dropped as a zero value.
	Threshold          *float64         `json:"Threshold,omitempty"`
	ComparisonOperator string           `json:"ComparisonOperator,omitempty"`
	TreatMissingData   string           `json:"TreatMissingData,omitempty"`
	AlarmActions       []any            `json:"AlarmActions,omitempty"`
	OKActions          []any            `json:"OKActions,omitempty"`
	Tags               []intrinsics.Tag `json:"Tags,omitempty"`

	// Attributes
	Arn wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (Alarm) ResourceType() string { return "AWS::CloudWatch::Alarm" }

// Alarm_Dimension is a metric dimension.
type Alarm_Dimension struct {
	Name  string `json:"Name,omitempty"`
	Value any    `json:"Value,omitempty"`
}

// CompositeAlarm is an AWS::CloudWatch::CompositeAlarm resource.
type CompositeAlarm struct {
	AlarmName        any    `json:"AlarmName,omitempty"`
	AlarmDescription string `json:"AlarmDescription,omitempty"`
	AlarmRule        any    `json:"AlarmRule,omitempty"`
	AlarmActions     []any  `json:"AlarmActions,omitempty"`

	// Attributes
	Arn wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (CompositeAlarm) ResourceType() string { return "AWS::CloudWatch::CompositeAlarm" }

// Dashboard is an AWS::CloudWatch::Dashboard resource.
type Dashboard struct {
	DashboardName any `json:"DashboardName,omitempty"`
	DashboardBody any `json:"DashboardBody,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Dashboard) ResourceType() string { return "AWS::CloudWatch::Dashboard" }
