package domain

// Analysis bundles everything there is to know about one address inside one
// network: masks, boundaries, usable range, classful and special-use flags,
// and alternate representations.
type Analysis struct {
	Address          Address `json:"address"`
	PrefixLength     int     `json:"prefix_length"`
	SubnetMask       Address `json:"subnet_mask"`
	WildcardMask     Address `json:"wildcard_mask"`
	NetworkAddress   Address `json:"network_address"`
	BroadcastAddress Address `json:"broadcast_address"`
	FirstHost        Address `json:"first_host"`
	LastHost         Address `json:"last_host"`
	TotalAddresses   uint64  `json:"total_addresses"`
	UsableHosts      uint64  `json:"usable_hosts"`
	Class            string  `json:"class"`
	Private          bool    `json:"is_private"`
	Loopback         bool    `json:"is_loopback"`
	LinkLocal        bool    `json:"is_link_local"`
	Multicast        bool    `json:"is_multicast"`
	Binary           string  `json:"binary"`
	Hex              string  `json:"hex"`
}

// Analyze computes the full analysis of addr within the network it shares
// with the given prefix
func Analyze(addr Address, prefix Prefix) Analysis {
	network, _, _ := NormalizeNetwork(addr, prefix)
	hr := network.HostRange()

	return Analysis{
		Address:          addr,
		PrefixLength:     int(prefix),
		SubnetMask:       prefix.MaskAddress(),
		WildcardMask:     prefix.Wildcard(),
		NetworkAddress:   hr.Network,
		BroadcastAddress: hr.Broadcast,
		FirstHost:        hr.FirstUsable,
		LastHost:         hr.LastUsable,
		TotalAddresses:   network.Size(),
		UsableHosts:      hr.UsableHosts,
		Class:            addr.Class(),
		Private:          addr.IsPrivate(),
		Loopback:         addr.IsLoopback(),
		LinkLocal:        addr.IsLinkLocal(),
		Multicast:        addr.IsMulticast(),
		Binary:           addr.Binary(),
		Hex:              addr.Hex(),
	}
}
