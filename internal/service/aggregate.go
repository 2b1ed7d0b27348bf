package service

import (
	"math/bits"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dotX12/subnetcalc/internal/domain"
)

// AggregatorService merges networks into covering routes (supernetting)
type AggregatorService struct {
	logger zerolog.Logger
}

// NewAggregatorService creates a new aggregator service
func NewAggregatorService(logger zerolog.Logger) *AggregatorService {
	return &AggregatorService{
		logger: logger,
	}
}

// CanMerge reports whether a and b are buddy blocks: equal-size, adjacent,
// and bit-aligned halves of the same parent at prefix-1. Adjacency alone is
// not enough; 192.168.1.0/24 and 192.168.2.0/24 touch but share no parent.
func (s *AggregatorService) CanMerge(a, b domain.Network) bool {
	if a.Prefix != b.Prefix || a.Prefix == 0 {
		return false
	}

	lo, hi := a, b
	if hi.Base < lo.Base {
		lo, hi = hi, lo
	}

	if uint64(lo.Broadcast())+1 != uint64(hi.Base) {
		return false
	}

	// the lower half must sit on the parent's boundary
	parentMask := domain.Prefix(a.Prefix - 1).MaskAddress()
	return lo.Base&parentMask == lo.Base
}

// Summarize reduces a set of networks to the minimal covering set: exact
// duplicates and networks contained in another input are dropped, then buddy
// pairs are merged repeatedly until no merge remains possible.
func (s *AggregatorService) Summarize(networks []domain.Network) []domain.Network {
	if len(networks) == 0 {
		return nil
	}

	merged := s.dropSubsumed(networks)

	for {
		next := make([]domain.Network, 0, len(merged))
		changed := false

		for i := 0; i < len(merged); i++ {
			if i+1 < len(merged) && s.CanMerge(merged[i], merged[i+1]) {
				parent := domain.Network{Base: merged[i].Base, Prefix: merged[i].Prefix - 1}
				next = append(next, parent)
				changed = true
				i++

				s.logger.Debug().
					Stringer("low", merged[i-1]).
					Stringer("high", merged[i]).
					Stringer("parent", parent).
					Msg("Merged buddy blocks")

				continue
			}
			next = append(next, merged[i])
		}

		merged = next
		if !changed {
			break
		}
	}

	s.logger.Debug().
		Int("input", len(networks)).
		Int("output", len(merged)).
		Msg("Summarization complete")

	return merged
}

// dropSubsumed sorts by base address (bigger blocks first on ties) and
// removes duplicates and networks fully contained in an earlier one
func (s *AggregatorService) dropSubsumed(networks []domain.Network) []domain.Network {
	sorted := make([]domain.Network, len(networks))
	copy(sorted, networks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Base != sorted[j].Base {
			return sorted[i].Base < sorted[j].Base
		}
		return sorted[i].Prefix < sorted[j].Prefix
	})

	kept := sorted[:0]
	for _, n := range sorted {
		if len(kept) > 0 && kept[len(kept)-1].ContainsNetwork(n) {
			continue
		}
		kept = append(kept, n)
	}

	return kept
}

// Span returns the single smallest network covering every input, the
// classical supernet of the set. Unlike Summarize it may over-approximate:
// the result can contain addresses outside every input.
func (s *AggregatorService) Span(networks []domain.Network) (domain.Network, error) {
	if len(networks) == 0 {
		return domain.Network{}, &domain.InvalidPrefixError{Prefix: 0, Reason: "no networks to span"}
	}

	lo := networks[0].Base
	hi := networks[0].Broadcast()
	for _, n := range networks[1:] {
		if n.Base < lo {
			lo = n.Base
		}
		if b := n.Broadcast(); b > hi {
			hi = b
		}
	}

	prefix := domain.Prefix(32 - bits.Len32(uint32(lo^hi)))
	span, _, err := domain.NormalizeNetwork(lo, prefix)
	if err != nil {
		return domain.Network{}, err
	}

	s.logger.Debug().
		Int("networks", len(networks)).
		Stringer("span", span).
		Msg("Computed covering supernet")

	return span, nil
}
