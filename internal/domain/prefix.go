package domain

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Prefix is the count of leading network bits in a 32-bit address.
// 0 is the default route, 32 a host route.
type Prefix int

// NewPrefix validates that p is in [0,32]
func NewPrefix(p int) (Prefix, error) {
	if p < 0 || p > 32 {
		return 0, &InvalidPrefixError{Prefix: p, Reason: "must be in [0,32]"}
	}
	return Prefix(p), nil
}

// ParsePrefix parses a prefix length from its decimal form
func ParsePrefix(s string) (Prefix, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Input: s, Reason: "prefix is not a decimal number"}
	}
	return NewPrefix(p)
}

// Mask returns the netmask: p leading one-bits followed by 32-p zero-bits.
// The endpoints are handled explicitly so no shift ever reaches 32 bits.
func (p Prefix) Mask() uint32 {
	switch {
	case p <= 0:
		return 0
	case p >= 32:
		return 0xFFFFFFFF
	default:
		return 0xFFFFFFFF << (32 - p)
	}
}

// MaskAddress returns the netmask in address form
func (p Prefix) MaskAddress() Address {
	return Address(p.Mask())
}

// Wildcard returns the inverted mask (host bits set)
func (p Prefix) Wildcard() Address {
	return Address(^p.Mask())
}

// Size returns the number of addresses in a block of this prefix
func (p Prefix) Size() uint64 {
	return uint64(1) << (32 - p)
}

// HostCapacity returns the number of usable host addresses in a block of this
// prefix: 1 for /32, 2 for /31 (RFC 3021), otherwise size minus the network
// and broadcast addresses.
func (p Prefix) HostCapacity() uint64 {
	switch p {
	case 32:
		return 1
	case 31:
		return 2
	default:
		return p.Size() - 2
	}
}

// String returns the prefix in "/n" form
func (p Prefix) String() string {
	return fmt.Sprintf("/%d", int(p))
}

// PrefixForHosts returns the longest prefix whose block holds at least n
// usable hosts: /32 for one host, /31 for two, otherwise the smallest block
// with n hosts plus the network and broadcast addresses.
func PrefixForHosts(n int) (Prefix, error) {
	switch {
	case n <= 0:
		return 0, &InvalidPrefixError{Prefix: 0, Reason: fmt.Sprintf("host count %d must be positive", n)}
	case n == 1:
		return 32, nil
	case n == 2:
		return 31, nil
	}

	hostBits := bits.Len64(uint64(n) + 2 - 1) // ceil(log2(n+2))
	if hostBits > 32 {
		return 0, &InvalidPrefixError{Prefix: 32 - hostBits, Reason: fmt.Sprintf("host count %d exceeds the IPv4 address space", n)}
	}

	return Prefix(32 - hostBits), nil
}
