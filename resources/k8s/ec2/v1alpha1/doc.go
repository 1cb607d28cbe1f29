// Package v1alpha1 contains ACK EC2 resource types for exporting networks
// as Kubernetes CRDs.
//
// These types mirror the AWS Controllers for Kubernetes (ACK) EC2 CRD
// schema, so an exported network can be applied to a cluster running the
// ACK EC2 controller:
//
//	import (
//		ec2v1alpha1 "github.com/lex00/wetwire-stacks-go/resources/k8s/ec2/v1alpha1"
//		metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
//	)
//
//	vpc := ec2v1alpha1.VPC{
//		ObjectMeta: metav1.ObjectMeta{
//			Name:      "core-vpc",
//			Namespace: "ack-system",
//		},
//		Spec: ec2v1alpha1.VPCSpec{
//			CIDRBlocks:         []*string{strPtr("10.0.0.0/16")},
//			EnableDNSHostnames: boolPtr(true),
//		},
//	}
package v1alpha1
