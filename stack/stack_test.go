package stack

import (
	"errors"
	"strings"
	"testing"

	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/intrinsics"
	"github.com/lex00/wetwire-stacks-go/resources/ec2"
	"github.com/lex00/wetwire-stacks-go/resources/s3"
)

func TestAddAndTemplate(t *testing.T) {
	s := New("test", WithDescription("test stack"))

	vpc := &ec2.VPC{CidrBlock: "10.0.0.0/16", EnableDnsSupport: true}
	if err := s.Add("Vpc", vpc); err != nil {
		t.Fatalf("Add(Vpc) error = %v", err)
	}

	subnet := &ec2.Subnet{
		VpcId:     intrinsics.Ref{LogicalName: "Vpc"},
		CidrBlock: "10.0.0.0/24",
	}
	if err := s.Add("PublicSubnet0", subnet); err != nil {
		t.Fatalf("Add(PublicSubnet0) error = %v", err)
	}

	tmpl, err := s.Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	if tmpl.AWSTemplateFormatVersion != "2010-09-09" {
		t.Errorf("format version = %q", tmpl.AWSTemplateFormatVersion)
	}
	if tmpl.Description != "test stack" {
		t.Errorf("description = %q", tmpl.Description)
	}
	if len(tmpl.Resources) != 2 {
		t.Fatalf("len(Resources) = %d, want 2", len(tmpl.Resources))
	}
	if tmpl.Resources["Vpc"].Type != "AWS::EC2::VPC" {
		t.Errorf("Vpc type = %q", tmpl.Resources["Vpc"].Type)
	}
	if got := tmpl.Resources["PublicSubnet0"].Properties["CidrBlock"]; got != "10.0.0.0/24" {
		t.Errorf("subnet CidrBlock = %v", got)
	}
}

func TestAddBindsAttrRefs(t *testing.T) {
	s := New("test")

	eip := &ec2.EIP{Domain: "vpc"}
	if err := s.Add("NatEIP", eip); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if eip.AllocationId.Resource != "NatEIP" || eip.AllocationId.Attribute != "AllocationId" {
		t.Errorf("AllocationId = %+v, want bound to NatEIP", eip.AllocationId)
	}
}

func TestAddDuplicateID(t *testing.T) {
	s := New("test")

	if err := s.Add("Bucket", &s3.Bucket{BucketName: "a"}); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}
	err := s.Add("Bucket", &s3.Bucket{BucketName: "b"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("second Add() error = %v, want ErrDuplicateID", err)
	}
}

func TestAddRejectsBadLogicalID(t *testing.T) {
	s := New("test")
	if err := s.Add("not-a-logical-id", &s3.Bucket{}); err == nil {
		t.Error("Add() should reject hyphenated logical IDs")
	}
}

func TestDependencyExtraction(t *testing.T) {
	s := New("test")

	if err := s.Add("Vpc", &ec2.VPC{CidrBlock: "10.0.0.0/16"}); err != nil {
		t.Fatal(err)
	}

	eip := &ec2.EIP{Domain: "vpc"}
	if err := s.Add("NatEIP", eip); err != nil {
		t.Fatal(err)
	}

	nat := &ec2.NatGateway{
		AllocationId: eip.AllocationId,
		SubnetId:     intrinsics.Ref{LogicalName: "Vpc"},
	}
	if err := s.Add("Nat", nat); err != nil {
		t.Fatal(err)
	}

	deps := s.Dependencies("Nat")
	want := []string{"NatEIP", "Vpc"}
	if len(deps) != len(want) {
		t.Fatalf("Dependencies(Nat) = %v, want %v", deps, want)
	}
	for i := range want {
		if deps[i] != want[i] {
			t.Errorf("Dependencies(Nat)[%d] = %s, want %s", i, deps[i], want[i])
		}
	}
}

func TestTemplateUnknownReference(t *testing.T) {
	s := New("test")

	subnet := &ec2.Subnet{VpcId: intrinsics.Ref{LogicalName: "Ghost"}, CidrBlock: "10.0.0.0/24"}
	if err := s.Add("Subnet", subnet); err != nil {
		t.Fatal(err)
	}

	_, err := s.Template()
	if err == nil || !strings.Contains(err.Error(), "Ghost") {
		t.Errorf("Template() error = %v, want unknown reference to Ghost", err)
	}
}

func TestTemplateAllowsParameterReference(t *testing.T) {
	s := New("test")
	if err := s.AddParameter("Env", wetwire.Parameter{Type: "String", Default: "dev"}); err != nil {
		t.Fatal(err)
	}
	bucket := &s3.Bucket{BucketName: intrinsics.Ref{LogicalName: "Env"}}
	if err := s.Add("Bucket", bucket); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Template(); err != nil {
		t.Errorf("Template() error = %v, want parameter refs allowed", err)
	}
}

func TestTemplateCycleDetection(t *testing.T) {
	s := New("test")

	a := &ec2.Route{RouteTableId: intrinsics.Ref{LogicalName: "B"}}
	b := &ec2.Route{RouteTableId: intrinsics.Ref{LogicalName: "A"}}
	if err := s.Add("A", a); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("B", b); err != nil {
		t.Fatal(err)
	}

	_, err := s.Template()
	if err == nil || !strings.Contains(err.Error(), "circular") {
		t.Errorf("Template() error = %v, want circular dependency", err)
	}
}

func TestExplicitDependsOn(t *testing.T) {
	s := New("test")

	if err := s.Add("Igw", &ec2.InternetGateway{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("Vpc", &ec2.VPC{CidrBlock: "10.0.0.0/16"}); err != nil {
		t.Fatal(err)
	}
	route := &ec2.Route{
		RouteTableId:         intrinsics.Ref{LogicalName: "Vpc"},
		DestinationCidrBlock: "0.0.0.0/0",
		GatewayId:            intrinsics.Ref{LogicalName: "Igw"},
	}
	if err := s.Add("PublicRoute", route, "Igw"); err != nil {
		t.Fatal(err)
	}

	tmpl, err := s.Template()
	if err != nil {
		t.Fatal(err)
	}
	dependsOn := tmpl.Resources["PublicRoute"].DependsOn
	if len(dependsOn) != 1 || dependsOn[0] != "Igw" {
		t.Errorf("DependsOn = %v, want [Igw]", dependsOn)
	}
}

func TestTemplateDeterministic(t *testing.T) {
	build := func() string {
		s := New("test")
		_ = s.Add("Vpc", &ec2.VPC{CidrBlock: "10.0.0.0/16"})
		_ = s.Add("Bucket", &s3.Bucket{BucketName: "data"})
		tmpl, err := s.Template()
		if err != nil {
			t.Fatal(err)
		}
		data, err := ToJSON(tmpl)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	if build() != build() {
		t.Error("identical stacks rendered different JSON")
	}
}
