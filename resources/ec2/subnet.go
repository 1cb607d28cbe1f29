package ec2

import (
	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
)

// Subnet is an AWS::EC2::Subnet resource.
type Subnet struct {
	VpcId               any              `json:"VpcId,omitempty"`
	CidrBlock           string           `json:"CidrBlock,omitempty"`
	AvailabilityZone    any              `json:"AvailabilityZone,omitempty"`
	MapPublicIpOnLaunch bool             `json:"MapPublicIpOnLaunch,omitempty"`
	Tags                []intrinsics.Tag `json:"Tags,omitempty"`

	// Attributes
	SubnetId wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (Subnet) ResourceType() string { return "AWS::EC2::Subnet" }

// RouteTable is an AWS::EC2::RouteTable resource.
type RouteTable struct {
	VpcId any              `json:"VpcId,omitempty"`
	Tags  []intrinsics.Tag `json:"Tags,omitempty"`

	// Attributes
	RouteTableId wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (RouteTable) ResourceType() string { return "AWS::EC2::RouteTable" }

// Route is an AWS::EC2::Route resource.
type Route struct {
	RouteTableId         any    `json:"RouteTableId,omitempty"`
	DestinationCidrBlock string `json:"DestinationCidrBlock,omitempty"`
	GatewayId            any    `json:"GatewayId,omitempty"`
	NatGatewayId         any    `json:"NatGatewayId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Route) ResourceType() string { return "AWS::EC2::Route" }

// SubnetRouteTableAssociation is an AWS::EC2::SubnetRouteTableAssociation resource.
type SubnetRouteTableAssociation struct {
	SubnetId     any `json:"SubnetId,omitempty"`
	RouteTableId any `json:"RouteTableId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (SubnetRouteTableAssociation) ResourceType() string {
	return "AWS::EC2::SubnetRouteTableAssociation"
}
