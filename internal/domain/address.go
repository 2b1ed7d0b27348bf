package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Address is an IPv4 address stored as a 32-bit unsigned integer. The integer
// form is the source of truth; the dotted-decimal form is always derived.
type Address uint32

// ParseAddress parses a dotted-decimal IPv4 address. Exactly four decimal
// octets are required, each in [0,255]. Octets with leading zeros are rejected
// because "010" is ambiguous between decimal and octal readings.
func ParseAddress(s string) (Address, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, &ParseError{Input: s, Reason: fmt.Sprintf("expected 4 octets, got %d", len(parts))}
	}

	var v uint32
	for _, part := range parts {
		if part == "" {
			return 0, &ParseError{Input: s, Reason: "empty octet"}
		}
		if len(part) > 1 && part[0] == '0' {
			return 0, &ParseError{Input: s, Reason: fmt.Sprintf("octet %q has a leading zero", part)}
		}

		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return 0, &ParseError{Input: s, Reason: fmt.Sprintf("octet %q is not a decimal number", part)}
		}
		if n > 255 {
			return 0, &ParseError{Input: s, Reason: fmt.Sprintf("octet %q is out of range [0,255]", part)}
		}

		v = v<<8 | uint32(n)
	}

	return Address(v), nil
}

// String returns the canonical dotted-decimal form
func (a Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(a>>24), byte(a>>16), byte(a>>8), byte(a))
}

// Octets returns the four octets in network order
func (a Address) Octets() [4]byte {
	return [4]byte{byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a)}
}

// Binary returns the dotted binary form, e.g. "11000000.10101000.00000001.00000001"
func (a Address) Binary() string {
	o := a.Octets()
	return fmt.Sprintf("%08b.%08b.%08b.%08b", o[0], o[1], o[2], o[3])
}

// Hex returns the address as eight uppercase hex digits
func (a Address) Hex() string {
	return fmt.Sprintf("%08X", uint32(a))
}

// Class returns the classful designation of the address (A-E)
func (a Address) Class() string {
	switch first := byte(a >> 24); {
	case first >= 1 && first <= 126:
		return "A"
	case first >= 128 && first <= 191:
		return "B"
	case first >= 192 && first <= 223:
		return "C"
	case first >= 224 && first <= 239:
		return "D (Multicast)"
	case first >= 240:
		return "E (Reserved)"
	default:
		return "Unknown"
	}
}

// IsPrivate reports whether the address is in an RFC 1918 range
func (a Address) IsPrivate() bool {
	return a>>24 == 10 || // 10.0.0.0/8
		a>>20 == 0xAC1 || // 172.16.0.0/12
		a>>16 == 0xC0A8 // 192.168.0.0/16
}

// IsLoopback reports whether the address is in 127.0.0.0/8
func (a Address) IsLoopback() bool {
	return a>>24 == 127
}

// IsLinkLocal reports whether the address is in 169.254.0.0/16
func (a Address) IsLinkLocal() bool {
	return a>>16 == 0xA9FE
}

// IsMulticast reports whether the address is in 224.0.0.0/4
func (a Address) IsMulticast() bool {
	return a>>28 == 0xE
}

// MarshalJSON encodes the address as its dotted-decimal string
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}
