package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Network is a CIDR block: a base address with all host bits cleared plus a
// prefix length. Construct it through NewNetwork, NormalizeNetwork or the
// CIDR parsers so the base invariant always holds.
type Network struct {
	Base   Address
	Prefix Prefix
}

// NewNetwork builds a Network and fails with InvalidNetworkError when base
// has host bits set beyond prefix
func NewNetwork(base Address, prefix Prefix) (Network, error) {
	if _, err := NewPrefix(int(prefix)); err != nil {
		return Network{}, err
	}

	if hostBits := base &^ prefix.MaskAddress(); hostBits != 0 {
		return Network{}, &InvalidNetworkError{Address: base, Prefix: prefix, HostBits: hostBits}
	}

	return Network{Base: base, Prefix: prefix}, nil
}

// NormalizeNetwork masks addr down to its network address and returns the
// host bits that were dropped, so callers can report the normalization
// instead of hiding it
func NormalizeNetwork(addr Address, prefix Prefix) (Network, Address, error) {
	if _, err := NewPrefix(int(prefix)); err != nil {
		return Network{}, 0, err
	}

	dropped := addr &^ prefix.MaskAddress()
	return Network{Base: addr & prefix.MaskAddress(), Prefix: prefix}, dropped, nil
}

// ParseCIDR parses "address/prefix" strictly: the address part must already
// be the network address, otherwise InvalidNetworkError is returned
func ParseCIDR(s string) (Network, error) {
	addr, prefix, err := splitCIDR(s)
	if err != nil {
		return Network{}, err
	}
	return NewNetwork(addr, prefix)
}

// ParseCIDRNormalize parses "address/prefix", masking the address down to its
// network address and returning the dropped host bits
func ParseCIDRNormalize(s string) (Network, Address, error) {
	addr, prefix, err := splitCIDR(s)
	if err != nil {
		return Network{}, 0, err
	}
	return NormalizeNetwork(addr, prefix)
}

func splitCIDR(s string) (Address, Prefix, error) {
	addrPart, prefixPart, found := strings.Cut(s, "/")
	if !found {
		return 0, 0, &ParseError{Input: s, Reason: "missing '/' separator"}
	}

	addr, err := ParseAddress(addrPart)
	if err != nil {
		return 0, 0, err
	}

	prefix, err := ParsePrefix(prefixPart)
	if err != nil {
		return 0, 0, err
	}

	return addr, prefix, nil
}

// String returns the CIDR form "base/prefix"
func (n Network) String() string {
	return fmt.Sprintf("%s/%d", n.Base, int(n.Prefix))
}

// Broadcast returns the highest address of the block. For /31 and /32 this is
// the top of the range rather than a dedicated broadcast address.
func (n Network) Broadcast() Address {
	return n.Base | n.Prefix.Wildcard()
}

// Size returns the number of addresses in the block
func (n Network) Size() uint64 {
	return n.Prefix.Size()
}

// Contains reports whether a falls inside the block
func (n Network) Contains(a Address) bool {
	return a&n.Prefix.MaskAddress() == n.Base
}

// ContainsNetwork reports whether o is fully inside the block
func (n Network) ContainsNetwork(o Network) bool {
	return o.Prefix >= n.Prefix && n.Contains(o.Base)
}

// HostRange describes the usable addresses of a network
type HostRange struct {
	Network     Address `json:"network_address"`
	FirstUsable Address `json:"first_usable"`
	LastUsable  Address `json:"last_usable"`
	Broadcast   Address `json:"broadcast_address"`
	UsableHosts uint64  `json:"usable_hosts"`
}

// HostRange returns the usable address range of the block: for prefixes up to
// /30 the network and broadcast addresses are excluded, a /31 is a
// point-to-point pair with both addresses usable (RFC 3021), and a /32 is a
// single host route.
func (n Network) HostRange() HostRange {
	broadcast := n.Broadcast()

	switch n.Prefix {
	case 32:
		return HostRange{Network: n.Base, FirstUsable: n.Base, LastUsable: n.Base, Broadcast: n.Base, UsableHosts: 1}
	case 31:
		return HostRange{Network: n.Base, FirstUsable: n.Base, LastUsable: broadcast, Broadcast: broadcast, UsableHosts: 2}
	default:
		return HostRange{
			Network:     n.Base,
			FirstUsable: n.Base + 1,
			LastUsable:  broadcast - 1,
			Broadcast:   broadcast,
			UsableHosts: n.Size() - 2,
		}
	}
}

// MarshalJSON encodes the network in CIDR form
func (n Network) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}
