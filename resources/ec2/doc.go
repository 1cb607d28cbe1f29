// Package ec2 provides typed declarations for the EC2 networking resources
// the network component emits: VPCs, subnets, gateways, and route tables.
//
// Field names match CloudFormation property names and serialize as-is.
// Fields typed `any` accept literals, intrinsics, or AttrRefs. AttrRef
// fields tagged `json:"-"` are the resource's GetAtt attributes; they are
// populated when the resource is added to a stack.
package ec2
