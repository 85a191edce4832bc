package vpp

import (
	"fmt"

	"go.fd.io/govpp/binapi/ethernet_types"
	"go.fd.io/govpp/binapi/ip_types"

	"github.com/veesix-networks/vpptest/pkg/southbound"
)

func toAddress(raw []byte) (ip_types.Address, error) {
	switch len(raw) {
	case 4:
		var ip4 ip_types.IP4Address
		copy(ip4[:], raw)
		return ip_types.Address{
			Af: ip_types.ADDRESS_IP4,
			Un: ip_types.AddressUnionIP4(ip4),
		}, nil
	case 16:
		var ip6 ip_types.IP6Address
		copy(ip6[:], raw)
		return ip_types.Address{
			Af: ip_types.ADDRESS_IP6,
			Un: ip_types.AddressUnionIP6(ip6),
		}, nil
	}
	return ip_types.Address{}, fmt.Errorf("%w: ip length %d", southbound.ErrInvalidAddress, len(raw))
}

func toMAC(raw []byte) (ethernet_types.MacAddress, error) {
	var mac ethernet_types.MacAddress
	if len(raw) != len(mac) {
		return mac, fmt.Errorf("%w: mac length %d", southbound.ErrInvalidAddress, len(raw))
	}
	copy(mac[:], raw)
	return mac, nil
}
