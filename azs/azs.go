// Package azs looks up availability zone names for a region so builds can
// pin subnets to concrete zones instead of the GetAZs intrinsic.
package azs

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// EC2Client is the slice of the EC2 API the lookup needs.
type EC2Client interface {
	DescribeAvailabilityZones(ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error)
}

// Compile-time check that the SDK client satisfies the interface.
var _ EC2Client = (*ec2.Client)(nil)

// Resolver fetches availability zones for a region.
type Resolver struct {
	client EC2Client
}

// NewResolver wraps an EC2 client.
func NewResolver(client EC2Client) *Resolver {
	return &Resolver{client: client}
}

// NewResolverForRegion loads the default AWS config and returns a resolver
// backed by a real EC2 client. An empty region keeps the config's default.
func NewResolverForRegion(ctx context.Context, region string) (*Resolver, error) {
	var optFns []func(*config.LoadOptions) error
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("azs: loading AWS config: %w", err)
	}
	return NewResolver(ec2.NewFromConfig(cfg)), nil
}

// Zones returns the names of the available zones, sorted, so allocation
// order is stable across runs.
func (r *Resolver) Zones(ctx context.Context) ([]string, error) {
	out, err := r.client.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{
		Filters: []types.Filter{
			{Name: aws.String("state"), Values: []string{"available"}},
			{Name: aws.String("zone-type"), Values: []string{"availability-zone"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("azs: describing availability zones: %w", err)
	}

	zones := make([]string, 0, len(out.AvailabilityZones))
	for _, az := range out.AvailabilityZones {
		if az.ZoneName != nil {
			zones = append(zones, *az.ZoneName)
		}
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("azs: no available zones returned")
	}

	sort.Strings(zones)
	return zones, nil
}
