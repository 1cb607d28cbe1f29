// Package network provides the VPC networking component.
//
// Given an address block and a zone count it emits a VPC, an internet
// gateway, one public and one private subnet per availability zone, NAT
// gateways, and the route tables wiring them together:
//
//	VPC (10.0.0.0/16)
//	|
//	+-- Public Subnet zone 0 (10.0.0.0/24)
//	|   +-- NAT Gateway -> private subnet routing
//	+-- Public Subnet zone 1 (10.0.1.0/24)
//	+-- Private Subnet zone 0 (10.0.10.0/24)
//	+-- Private Subnet zone 1 (10.0.11.0/24)
//
// Subnet addresses come from the cidr allocator, so rebuilding the same
// config never reassigns addresses.
package network

import (
	"fmt"

	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/cidr"
	"github.com/lex00/wetwire-stacks-go/components/tags"
	"github.com/lex00/wetwire-stacks-go/internal/defaults"
	"github.com/lex00/wetwire-stacks-go/internal/validate"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
	"github.com/lex00/wetwire-stacks-go/resources/ec2"
	"github.com/lex00/wetwire-stacks-go/stack"
)

// Config describes the desired network. Zero fields pick up Defaults.
type Config struct {
	// CidrBlock is the /16 address block for the VPC.
	CidrBlock string

	// ZoneCount is the number of availability zones to span. Each zone
	// gets one public and one private subnet.
	ZoneCount int

	// AvailabilityZones pins subnets to explicit zone names. When empty,
	// zones are selected with the GetAZs intrinsic at deploy time.
	AvailabilityZones []string

	// EnableNat provisions NAT gateways for private subnet egress.
	EnableNat *bool

	// SingleNatGateway shares one NAT gateway across all private subnets
	// instead of one per zone. Cheaper, but zone 0 becomes a single point
	// of failure for private egress.
	SingleNatGateway *bool

	EnableDnsHostnames *bool
	EnableDnsSupport   *bool
	InstanceTenancy    string

	// Tags are applied to every taggable resource in the component.
	Tags map[string]string
}

func boolPtr(b bool) *bool { return &b }

// Defaults is the secure baseline config: two zones, DNS on, NAT on with a
// single shared gateway.
var Defaults = Config{
	CidrBlock:          "10.0.0.0/16",
	ZoneCount:          2,
	EnableNat:          boolPtr(true),
	SingleNatGateway:   boolPtr(true),
	EnableDnsHostnames: boolPtr(true),
	EnableDnsSupport:   boolPtr(true),
	InstanceTenancy:    "default",
}

// Network exposes the identifiers downstream components need.
type Network struct {
	// VpcID is a Ref to the VPC.
	VpcID intrinsics.Ref

	// PublicSubnetIDs and PrivateSubnetIDs are Refs ordered by zone index.
	PublicSubnetIDs  []intrinsics.Ref
	PrivateSubnetIDs []intrinsics.Ref

	// Allocation is the computed subnet addressing.
	Allocation cidr.Allocation
}

// New validates cfg, merges Defaults, and adds the network's resources to s
// under logical IDs prefixed with name.
func New(s *stack.Stack, name string, cfg Config) (*Network, error) {
	if err := validate.ComponentName(name); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}
	if err := defaults.Apply(&cfg, Defaults); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}
	if len(cfg.AvailabilityZones) > 0 && len(cfg.AvailabilityZones) < cfg.ZoneCount {
		return nil, fmt.Errorf("network: %d availability zones given for %d zones",
			len(cfg.AvailabilityZones), cfg.ZoneCount)
	}

	alloc, err := cidr.AllocateChecked(cfg.CidrBlock, cfg.ZoneCount)
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	net := &Network{Allocation: alloc}

	vpcID := name + "Vpc"
	vpc := &ec2.VPC{
		CidrBlock:          cfg.CidrBlock,
		EnableDnsHostnames: *cfg.EnableDnsHostnames,
		EnableDnsSupport:   *cfg.EnableDnsSupport,
		InstanceTenancy:    cfg.InstanceTenancy,
		Tags:               tags.List(cfg.Tags, "vpc"),
	}
	if err := s.Add(vpcID, vpc); err != nil {
		return nil, err
	}
	net.VpcID = intrinsics.Ref{LogicalName: vpcID}

	igwID := name + "Igw"
	if err := s.Add(igwID, &ec2.InternetGateway{Tags: tags.List(cfg.Tags, "igw")}); err != nil {
		return nil, err
	}
	attachmentID := name + "IgwAttachment"
	attachment := &ec2.VPCGatewayAttachment{
		InternetGatewayId: intrinsics.Ref{LogicalName: igwID},
		VpcId:             net.VpcID,
	}
	if err := s.Add(attachmentID, attachment); err != nil {
		return nil, err
	}

	for i := 0; i < cfg.ZoneCount; i++ {
		subnetID := fmt.Sprintf("%sPublicSubnet%d", name, i)
		subnet := &ec2.Subnet{
			VpcId:               net.VpcID,
			CidrBlock:           alloc.Public[i],
			AvailabilityZone:    zone(cfg, i),
			MapPublicIpOnLaunch: true,
			Tags:                tags.List(cfg.Tags, fmt.Sprintf("public-%d", i)),
		}
		if err := s.Add(subnetID, subnet); err != nil {
			return nil, err
		}
		net.PublicSubnetIDs = append(net.PublicSubnetIDs, intrinsics.Ref{LogicalName: subnetID})
	}
	for i := 0; i < cfg.ZoneCount; i++ {
		subnetID := fmt.Sprintf("%sPrivateSubnet%d", name, i)
		subnet := &ec2.Subnet{
			VpcId:            net.VpcID,
			CidrBlock:        alloc.Private[i],
			AvailabilityZone: zone(cfg, i),
			Tags:             tags.List(cfg.Tags, fmt.Sprintf("private-%d", i)),
		}
		if err := s.Add(subnetID, subnet); err != nil {
			return nil, err
		}
		net.PrivateSubnetIDs = append(net.PrivateSubnetIDs, intrinsics.Ref{LogicalName: subnetID})
	}

	if err := addPublicRouting(s, name, net, igwID, attachmentID, cfg); err != nil {
		return nil, err
	}
	if err := addPrivateRouting(s, name, net, attachmentID, cfg); err != nil {
		return nil, err
	}

	if err := s.AddOutput(vpcID+"Id", wetwire.Output{
		Description: "VPC ID",
		Value:       net.VpcID,
	}); err != nil {
		return nil, err
	}
	return net, nil
}

// zone returns the AvailabilityZone value for zone index i.
func zone(cfg Config, i int) any {
	if len(cfg.AvailabilityZones) > 0 {
		return cfg.AvailabilityZones[i]
	}
	return intrinsics.Select{Index: i, List: intrinsics.GetAZs{}}
}

func addPublicRouting(s *stack.Stack, name string, net *Network, igwID, attachmentID string, cfg Config) error {
	tableID := name + "PublicRoutes"
	table := &ec2.RouteTable{VpcId: net.VpcID, Tags: tags.List(cfg.Tags, "public-rt")}
	if err := s.Add(tableID, table); err != nil {
		return err
	}

	// The default route must not be created before the gateway is attached.
	route := &ec2.Route{
		RouteTableId:         intrinsics.Ref{LogicalName: tableID},
		DestinationCidrBlock: "0.0.0.0/0",
		GatewayId:            intrinsics.Ref{LogicalName: igwID},
	}
	if err := s.Add(name+"PublicDefaultRoute", route, attachmentID); err != nil {
		return err
	}

	for i, subnetRef := range net.PublicSubnetIDs {
		assoc := &ec2.SubnetRouteTableAssociation{
			SubnetId:     subnetRef,
			RouteTableId: intrinsics.Ref{LogicalName: tableID},
		}
		if err := s.Add(fmt.Sprintf("%sPublicSubnet%dRoutes", name, i), assoc); err != nil {
			return err
		}
	}
	return nil
}

func addPrivateRouting(s *stack.Stack, name string, net *Network, attachmentID string, cfg Config) error {
	if len(net.PrivateSubnetIDs) == 0 {
		return nil
	}
	if !*cfg.EnableNat {
		// Isolated private subnets still need a route table per zone group.
		tableID := name + "PrivateRoutes"
		if err := s.Add(tableID, &ec2.RouteTable{VpcId: net.VpcID, Tags: tags.List(cfg.Tags, "private-rt")}); err != nil {
			return err
		}
		return associatePrivate(s, name, net, tableID, -1)
	}

	natCount := len(net.PrivateSubnetIDs)
	if *cfg.SingleNatGateway {
		natCount = 1
	}
	if natCount > 0 && len(net.PublicSubnetIDs) == 0 {
		return fmt.Errorf("network: NAT requires at least one public subnet")
	}

	for n := 0; n < natCount; n++ {
		suffix := ""
		if !*cfg.SingleNatGateway {
			suffix = fmt.Sprintf("%d", n)
		}

		eip := &ec2.EIP{Domain: "vpc", Tags: tags.List(cfg.Tags, "nat-eip"+suffix)}
		eipID := name + "NatEIP" + suffix
		if err := s.Add(eipID, eip); err != nil {
			return err
		}

		nat := &ec2.NatGateway{
			AllocationId: eip.AllocationId,
			SubnetId:     net.PublicSubnetIDs[n%len(net.PublicSubnetIDs)],
			Tags:         tags.List(cfg.Tags, "nat"+suffix),
		}
		natID := name + "Nat" + suffix
		if err := s.Add(natID, nat, attachmentID); err != nil {
			return err
		}

		tableID := name + "PrivateRoutes" + suffix
		if err := s.Add(tableID, &ec2.RouteTable{VpcId: net.VpcID, Tags: tags.List(cfg.Tags, "private-rt"+suffix)}); err != nil {
			return err
		}
		route := &ec2.Route{
			RouteTableId:         intrinsics.Ref{LogicalName: tableID},
			DestinationCidrBlock: "0.0.0.0/0",
			NatGatewayId:         intrinsics.Ref{LogicalName: natID},
		}
		if err := s.Add(name+"PrivateDefaultRoute"+suffix, route); err != nil {
			return err
		}

		if *cfg.SingleNatGateway {
			return associatePrivate(s, name, net, tableID, -1)
		}
		if err := associatePrivate(s, name, net, tableID, n); err != nil {
			return err
		}
	}
	return nil
}

// associatePrivate associates private subnets with a route table. zoneIndex
// -1 associates all zones.
func associatePrivate(s *stack.Stack, name string, net *Network, tableID string, zoneIndex int) error {
	for i, subnetRef := range net.PrivateSubnetIDs {
		if zoneIndex >= 0 && i != zoneIndex {
			continue
		}
		assoc := &ec2.SubnetRouteTableAssociation{
			SubnetId:     subnetRef,
			RouteTableId: intrinsics.Ref{LogicalName: tableID},
		}
		if err := s.Add(fmt.Sprintf("%sPrivateSubnet%dRoutes", name, i), assoc); err != nil {
			return err
		}
	}
	return nil
}
