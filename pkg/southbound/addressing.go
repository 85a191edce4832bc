package southbound

// Addressing takes raw network-byte-order addresses: 4 or 16 bytes for IP,
// 6 bytes for MAC.
type Addressing interface {
	AddDelAddress(swIfIndex uint32, addr []byte, prefixLen uint8, isIPv6, isAdd bool) error
	AddDelIPNeighbor(swIfIndex uint32, mac, ip []byte, isAdd bool) error
}

type IPv6 interface {
	SuppressRA(swIfIndex uint32) error
}
