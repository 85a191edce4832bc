package vpp

import (
	"fmt"

	interfaces "go.fd.io/govpp/binapi/interface"
	"go.fd.io/govpp/binapi/interface_types"
	"go.fd.io/govpp/binapi/ip_neighbor"
	"go.fd.io/govpp/binapi/ip_types"

	"github.com/veesix-networks/vpptest/pkg/southbound"
)

func (v *VPP) AddDelAddress(swIfIndex uint32, addr []byte, prefixLen uint8, isIPv6, isAdd bool) error {
	address, err := toAddress(addr)
	if err != nil {
		return err
	}
	if isIPv6 != (address.Af == ip_types.ADDRESS_IP6) {
		return fmt.Errorf("%w: %d-byte address with ipv6=%v", southbound.ErrInvalidAddress, len(addr), isIPv6)
	}

	req := &interfaces.SwInterfaceAddDelAddress{
		SwIfIndex: interface_types.InterfaceIndex(swIfIndex),
		IsAdd:     isAdd,
		Prefix: ip_types.AddressWithPrefix{
			Address: address,
			Len:     prefixLen,
		},
	}
	if err := v.request(req, &interfaces.SwInterfaceAddDelAddressReply{}); err != nil {
		return fmt.Errorf("add/del address on sw_if_index %d: %w", swIfIndex, err)
	}

	v.logger.Debug("Updated interface address", "sw_if_index", swIfIndex,
		"address", address.String(), "len", prefixLen, "add", isAdd)
	return nil
}

func (v *VPP) AddDelIPNeighbor(swIfIndex uint32, mac, ip []byte, isAdd bool) error {
	macAddr, err := toMAC(mac)
	if err != nil {
		return err
	}
	address, err := toAddress(ip)
	if err != nil {
		return err
	}

	req := &ip_neighbor.IPNeighborAddDel{
		IsAdd: isAdd,
		Neighbor: ip_neighbor.IPNeighbor{
			SwIfIndex:  interface_types.InterfaceIndex(swIfIndex),
			Flags:      ip_neighbor.IP_API_NEIGHBOR_FLAG_STATIC,
			MacAddress: macAddr,
			IPAddress:  address,
		},
	}
	if err := v.request(req, &ip_neighbor.IPNeighborAddDelReply{}); err != nil {
		return fmt.Errorf("add/del ip neighbor %s on sw_if_index %d: %w", address.String(), swIfIndex, err)
	}

	v.logger.Debug("Updated ip neighbor", "sw_if_index", swIfIndex,
		"mac", macAddr.String(), "ip", address.String(), "add", isAdd)
	return nil
}
