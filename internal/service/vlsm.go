package service

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/dotX12/subnetcalc/internal/domain"
)

// AllocatedSubnet is one VLSM assignment: the subnet plus the request it
// satisfies, identified by its position in the original requirement list
type AllocatedSubnet struct {
	Network        domain.Network `json:"network"`
	RequestIndex   int            `json:"request_index"`
	RequestedHosts int            `json:"requested_hosts"`
}

// Allocation is the result of a VLSM run: one subnet per requirement in the
// original request order, plus the unallocated remainder of the parent split
// into maximal CIDR blocks
type Allocation struct {
	Parent  domain.Network    `json:"parent"`
	Subnets []AllocatedSubnet `json:"subnets"`
	Spare   []domain.Network  `json:"spare"`
}

// SpareAddresses returns the total number of unallocated addresses
func (a *Allocation) SpareAddresses() uint64 {
	var total uint64
	for _, n := range a.Spare {
		total += n.Size()
	}
	return total
}

// VLSMService allocates variably-sized subnets from a parent network
type VLSMService struct {
	logger zerolog.Logger
}

// NewVLSMService creates a new VLSM allocator service
func NewVLSMService(logger zerolog.Logger) *VLSMService {
	return &VLSMService{
		logger: logger,
	}
}

type vlsmRequest struct {
	index  int
	hosts  int
	prefix domain.Prefix
}

// Allocate assigns the smallest adequate subnet to every host-count
// requirement using the greedy largest-first strategy: requirements are
// sorted by descending block size (stable, so equal sizes keep their input
// order), packed from the parent's base with each subnet aligned to its own
// size, and the results are returned in the original request order.
// Allocation is all-or-nothing: if any requirement does not fit, no subnets
// are returned.
func (s *VLSMService) Allocate(parent domain.Network, hosts []int) (*Allocation, error) {
	if len(hosts) == 0 {
		return nil, &domain.InvalidPrefixError{Prefix: int(parent.Prefix), Reason: "no host requirements given"}
	}

	requests, err := s.sizeRequests(parent, hosts)
	if err != nil {
		return nil, err
	}

	sorted := make([]vlsmRequest, len(requests))
	copy(sorted, requests)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].prefix < sorted[j].prefix // bigger blocks first
	})

	cursor := uint64(parent.Base)
	end := uint64(parent.Broadcast()) + 1
	subnets := make([]AllocatedSubnet, 0, len(sorted))

	var gaps []addressSpan
	for _, req := range sorted {
		size := req.prefix.Size()

		// a subnet must start on a multiple of its own size
		aligned := (cursor + size - 1) &^ (size - 1)
		if aligned > cursor {
			gaps = append(gaps, addressSpan{start: cursor, end: aligned})
		}

		if aligned+size > end {
			return nil, &domain.InsufficientSpaceError{
				RequestIndex:       req.index,
				RequestedHosts:     req.hosts,
				RequiredAddresses:  size,
				RemainingAddresses: end - cursor,
			}
		}

		subnet := domain.Network{Base: domain.Address(aligned), Prefix: req.prefix}
		subnets = append(subnets, AllocatedSubnet{
			Network:        subnet,
			RequestIndex:   req.index,
			RequestedHosts: req.hosts,
		})
		cursor = aligned + size

		s.logger.Debug().
			Int("request_index", req.index).
			Int("requested_hosts", req.hosts).
			Stringer("subnet", subnet).
			Msg("Allocated subnet")
	}

	if cursor < end {
		gaps = append(gaps, addressSpan{start: cursor, end: end})
	}

	// restore the caller's requirement order
	sort.Slice(subnets, func(i, j int) bool {
		return subnets[i].RequestIndex < subnets[j].RequestIndex
	})

	var spare []domain.Network
	for _, gap := range gaps {
		spare = append(spare, splitSpan(gap)...)
	}

	s.logger.Debug().
		Stringer("parent", parent).
		Int("subnets", len(subnets)).
		Int("spare_blocks", len(spare)).
		Msg("Allocation complete")

	return &Allocation{Parent: parent, Subnets: subnets, Spare: spare}, nil
}

// sizeRequests converts host counts to minimal prefixes, reporting every
// invalid requirement rather than stopping at the first
func (s *VLSMService) sizeRequests(parent domain.Network, hosts []int) ([]vlsmRequest, error) {
	requests := make([]vlsmRequest, 0, len(hosts))

	var merr *multierror.Error
	for i, h := range hosts {
		prefix, err := domain.PrefixForHosts(h)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("requirement %d: %w", i, err))
			continue
		}

		if prefix < parent.Prefix {
			// bigger than the whole parent: a space failure, not a sizing one
			merr = multierror.Append(merr, &domain.InsufficientSpaceError{
				RequestIndex:       i,
				RequestedHosts:     h,
				RequiredAddresses:  prefix.Size(),
				RemainingAddresses: parent.Size(),
			})
			continue
		}

		requests = append(requests, vlsmRequest{index: i, hosts: h, prefix: prefix})
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	return requests, nil
}

// addressSpan is a half-open range of addresses [start, end)
type addressSpan struct {
	start uint64
	end   uint64
}

// splitSpan decomposes an arbitrary address range into the minimal sequence
// of CIDR-aligned blocks covering it exactly
func splitSpan(span addressSpan) []domain.Network {
	var out []domain.Network

	start, end := span.start, span.end
	for start < end {
		size := uint64(1) << 32
		if start != 0 {
			size = start & -start // largest block aligned at start
		}
		for size > end-start {
			size >>= 1
		}

		prefix := 32 - bits.TrailingZeros64(size)
		out = append(out, domain.Network{Base: domain.Address(start), Prefix: domain.Prefix(prefix)})
		start += size
	}

	return out
}
