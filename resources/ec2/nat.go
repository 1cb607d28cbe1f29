package ec2

import (
	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
)

// EIP is an AWS::EC2::EIP resource.
type EIP struct {
	Domain string           `json:"Domain,omitempty"`
	Tags   []intrinsics.Tag `json:"Tags,omitempty"`

	// Attributes
	AllocationId wetwire.AttrRef `json:"-"`
	PublicIp     wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (EIP) ResourceType() string { return "AWS::EC2::EIP" }

// NatGateway is an AWS::EC2::NatGateway resource.
type NatGateway struct {
	AllocationId any              `json:"AllocationId,omitempty"`
	SubnetId     any              `json:"SubnetId,omitempty"`
	Tags         []intrinsics.Tag `json:"Tags,omitempty"`

	// Attributes
	NatGatewayId wetwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (NatGateway) ResourceType() string { return "AWS::EC2::NatGateway" }
