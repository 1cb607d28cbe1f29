package azs

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEC2 struct {
	zones []string
	err   error

	gotInput *ec2.DescribeAvailabilityZonesInput
}

func (f *fakeEC2) DescribeAvailabilityZones(ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error) {
	f.gotInput = params
	if f.err != nil {
		return nil, f.err
	}

	out := &ec2.DescribeAvailabilityZonesOutput{}
	for _, z := range f.zones {
		out.AvailabilityZones = append(out.AvailabilityZones, types.AvailabilityZone{
			ZoneName: aws.String(z),
		})
	}
	return out, nil
}

func TestZones(t *testing.T) {
	fake := &fakeEC2{zones: []string{"us-west-2c", "us-west-2a", "us-west-2b"}}
	resolver := NewResolver(fake)

	zones, err := resolver.Zones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"us-west-2a", "us-west-2b", "us-west-2c"}, zones)
}

func TestZonesFiltersToAvailable(t *testing.T) {
	fake := &fakeEC2{zones: []string{"us-west-2a"}}
	resolver := NewResolver(fake)

	_, err := resolver.Zones(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fake.gotInput)

	var names []string
	for _, f := range fake.gotInput.Filters {
		names = append(names, aws.ToString(f.Name))
	}
	assert.Contains(t, names, "state")
	assert.Contains(t, names, "zone-type")
}

func TestZonesErrors(t *testing.T) {
	resolver := NewResolver(&fakeEC2{err: errors.New("throttled")})
	_, err := resolver.Zones(context.Background())
	assert.Error(t, err)

	resolver = NewResolver(&fakeEC2{})
	_, err = resolver.Zones(context.Background())
	assert.Error(t, err, "empty zone list should error")
}
