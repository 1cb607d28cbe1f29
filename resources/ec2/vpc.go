package ec2

import (
	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
)

// VPC is an AWS::EC2::VPC resource.
type VPC struct {
	CidrBlock          string           `json:"CidrBlock,omitempty"`
	EnableDnsHostnames bool             `json:"EnableDnsHostnames,omitempty"`
	EnableDnsSupport   bool             `json:"EnableDnsSupport,omitempty"`
	InstanceTenancy    string           `json:"InstanceTenancy,omitempty"`
	Tags               []intrinsics.Tag `json:"Tags,omitempty"`

	// Attributes
	DefaultNetworkAcl    wetwire.AttrRef `json:"-"`
	DefaultSecurityGroup wetwire.AttrRef `json:"-"`
	VpcId                wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (VPC) ResourceType() string { return "AWS::EC2::VPC" }

// InternetGateway is an AWS::EC2::InternetGateway resource.
type InternetGateway struct {
	Tags []intrinsics.Tag `json:"Tags,omitempty"`

	// Attributes
	InternetGatewayId wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (InternetGateway) ResourceType() string { return "AWS::EC2::InternetGateway" }

// VPCGatewayAttachment is an AWS::EC2::VPCGatewayAttachment resource.
type VPCGatewayAttachment struct {
	InternetGatewayId any `json:"InternetGatewayId,omitempty"`
	VpcId             any `json:"VpcId,omitempty"`
	VpnGatewayId      any `json:"VpnGatewayId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (VPCGatewayAttachment) ResourceType() string { return "AWS::EC2::VPCGatewayAttachment" }
