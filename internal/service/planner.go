package service

import (
	"math/bits"

	"github.com/rs/zerolog"

	"github.com/dotX12/subnetcalc/internal/domain"
)

// PlannerService divides a parent network into equal-size subnets
type PlannerService struct {
	logger zerolog.Logger
}

// NewPlannerService creates a new planner service
func NewPlannerService(logger zerolog.Logger) *PlannerService {
	return &PlannerService{
		logger: logger,
	}
}

// DivideByCount splits parent into at least count equal subnets. The subnet
// count is rounded up to the next power of two (requesting 3 subnets yields
// 4), matching standard subnetting practice; callers asking for a non-power
// count get the extra subnets back rather than an error.
func (s *PlannerService) DivideByCount(parent domain.Network, count int) ([]domain.Network, error) {
	if count < 1 {
		return nil, &domain.InvalidPrefixError{Prefix: int(parent.Prefix), Reason: "subnet count must be at least 1"}
	}

	bitsNeeded := bits.Len(uint(count - 1)) // ceil(log2(count))
	newPrefix := int(parent.Prefix) + bitsNeeded
	if newPrefix > 32 {
		return nil, &domain.CapacityError{
			Parent:    parent,
			Requested: count,
			Reason:    "more subnets than the parent has addressable bits",
		}
	}

	s.logger.Debug().
		Stringer("parent", parent).
		Int("count", count).
		Int("borrowed_bits", bitsNeeded).
		Int("new_prefix", newPrefix).
		Msg("Dividing network by subnet count")

	if bitsNeeded == 0 {
		return []domain.Network{parent}, nil
	}

	return s.DivideByPrefix(parent, newPrefix)
}

// DivideByPrefix splits parent into the contiguous subnets of the given
// prefix length, in ascending order of base address. The ordering is a
// contract relied upon by the VLSM allocator and the aggregator.
func (s *PlannerService) DivideByPrefix(parent domain.Network, newPrefix int) ([]domain.Network, error) {
	if newPrefix <= int(parent.Prefix) || newPrefix > 32 {
		return nil, &domain.InvalidPrefixError{
			Prefix: newPrefix,
			Reason: "new prefix must be longer than the parent's and at most 32",
		}
	}

	count := uint64(1) << (newPrefix - int(parent.Prefix))
	step := domain.Prefix(newPrefix).Size()

	subnets := make([]domain.Network, 0, count)
	base := uint64(parent.Base)
	for i := uint64(0); i < count; i++ {
		subnets = append(subnets, domain.Network{
			Base:   domain.Address(base + i*step),
			Prefix: domain.Prefix(newPrefix),
		})
	}

	s.logger.Debug().
		Stringer("parent", parent).
		Int("new_prefix", newPrefix).
		Uint64("subnets", count).
		Msg("Divided network by prefix")

	return subnets, nil
}

// DivideByHosts splits parent into subnets each holding at least hostsPer
// usable hosts, filling the parent with as many such subnets as fit
func (s *PlannerService) DivideByHosts(parent domain.Network, hostsPer int) ([]domain.Network, error) {
	prefix, err := domain.PrefixForHosts(hostsPer)
	if err != nil {
		return nil, err
	}

	if int(prefix) < int(parent.Prefix) {
		return nil, &domain.CapacityError{
			Parent:    parent,
			Requested: hostsPer,
			Reason:    "a single subnet of that size is larger than the parent",
		}
	}

	if prefix == parent.Prefix {
		return []domain.Network{parent}, nil
	}

	return s.DivideByPrefix(parent, int(prefix))
}
