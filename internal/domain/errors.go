package domain

import "fmt"

// ParseError reports a malformed address or CIDR string
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}

// InvalidPrefixError reports a prefix outside [0,32] or a structurally
// impossible sizing request
type InvalidPrefixError struct {
	Prefix int
	Reason string
}

func (e *InvalidPrefixError) Error() string {
	return fmt.Sprintf("invalid prefix /%d: %s", e.Prefix, e.Reason)
}

// InvalidNetworkError reports an address with host bits set where a masked
// network address was required
type InvalidNetworkError struct {
	Address  Address
	Prefix   Prefix
	HostBits Address
}

func (e *InvalidNetworkError) Error() string {
	return fmt.Sprintf("%s/%d is not a network address: host bits %s are set", e.Address, e.Prefix, e.HostBits)
}

// CapacityError reports an equal-subnetting request that exceeds the
// addressable bits of the parent network
type CapacityError struct {
	Parent    Network
	Requested int
	Reason    string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot divide %s into %d subnets: %s", e.Parent, e.Requested, e.Reason)
}

// InsufficientSpaceError reports a VLSM requirement that does not fit in the
// remaining space of the parent network
type InsufficientSpaceError struct {
	RequestIndex       int
	RequestedHosts     int
	RequiredAddresses  uint64
	RemainingAddresses uint64
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("requirement %d (%d hosts) needs %d addresses but only %d remain",
		e.RequestIndex, e.RequestedHosts, e.RequiredAddresses, e.RemainingAddresses)
}
