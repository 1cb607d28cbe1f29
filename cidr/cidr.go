// Package cidr computes subnet address ranges for a VPC address block.
//
// The allocator is the deterministic core behind the network component: given
// a /16 network block and a zone count it assigns one public and one private
// /24 per availability zone. Identical inputs always produce identical,
// order-stable output, so rebuilding a stack never reshuffles live subnet
// addresses.
package cidr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// privateTierOffset is the third-octet offset where private subnets begin.
// Octets 0-9 are reserved for public-tier growth, so public zone 0 gets
// .0.0/24 and private zone 0 gets .10.0/24.
const privateTierOffset = 10

// MaxZones is the largest zone count the fixed offset supports without the
// public and private tiers colliding.
const MaxZones = privateTierOffset

// cidrPattern matches a dotted-quad IPv4 CIDR block.
var cidrPattern = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})/(\d{1,2})$`)

// Allocation holds the computed subnet CIDR blocks, ordered by zone index.
type Allocation struct {
	// Public holds one /24 per zone, starting at the network base.
	Public []string
	// Private holds one /24 per zone, starting at the private tier offset.
	Private []string
}

// ErrTooManyZones is returned by AllocateChecked when the zone count exceeds
// MaxZones and the public and private tiers would overlap.
var ErrTooManyZones = errors.New("cidr: zone count exceeds private tier offset")

// ErrInvalidBlock is returned by AllocateChecked for inputs that are not a
// dotted-quad /16 CIDR block.
var ErrInvalidBlock = errors.New("cidr: network block must be a /16 dotted-quad CIDR")

// Allocate computes public and private /24 subnet blocks within networkCidr,
// one pair per zone. The first two octets of networkCidr are used as the
// allocation base; the block is assumed to be a /16.
//
// Public zone i maps to {o1}.{o2}.{i}.0/24 and private zone i to
// {o1}.{o2}.{10+i}.0/24. Allocate performs no validation: a malformed block
// or a zone count above MaxZones produces unguarded output (above MaxZones
// the tiers overlap). Use AllocateChecked to reject both.
func Allocate(networkCidr string, zoneCount int) Allocation {
	base := baseOctets(networkCidr)

	alloc := Allocation{
		Public:  make([]string, 0, zoneCount),
		Private: make([]string, 0, zoneCount),
	}
	for i := 0; i < zoneCount; i++ {
		alloc.Public = append(alloc.Public, fmt.Sprintf("%s.%d.0/24", base, i))
		alloc.Private = append(alloc.Private, fmt.Sprintf("%s.%d.0/24", base, privateTierOffset+i))
	}
	return alloc
}

// AllocateChecked is Allocate with input validation. It rejects blocks that
// are not /16 dotted-quad CIDRs, negative zone counts, and zone counts above
// MaxZones (which would silently produce overlapping tiers).
func AllocateChecked(networkCidr string, zoneCount int) (Allocation, error) {
	m := cidrPattern.FindStringSubmatch(networkCidr)
	if m == nil {
		return Allocation{}, fmt.Errorf("%w: %q", ErrInvalidBlock, networkCidr)
	}
	for _, octet := range m[1:5] {
		if n, _ := strconv.Atoi(octet); n > 255 {
			return Allocation{}, fmt.Errorf("%w: %q", ErrInvalidBlock, networkCidr)
		}
	}
	if prefix, _ := strconv.Atoi(m[5]); prefix != 16 {
		return Allocation{}, fmt.Errorf("%w: %q", ErrInvalidBlock, networkCidr)
	}
	if zoneCount < 0 {
		return Allocation{}, fmt.Errorf("cidr: zone count must be non-negative, got %d", zoneCount)
	}
	if zoneCount > MaxZones {
		return Allocation{}, fmt.Errorf("%w: %d > %d", ErrTooManyZones, zoneCount, MaxZones)
	}
	return Allocate(networkCidr, zoneCount), nil
}

// baseOctets returns the first two dotted fields of the block, unvalidated.
func baseOctets(networkCidr string) string {
	fields := strings.SplitN(networkCidr, ".", 3)
	if len(fields) < 2 {
		return networkCidr
	}
	return fields[0] + "." + fields[1]
}
