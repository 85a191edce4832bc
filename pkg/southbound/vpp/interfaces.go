package vpp

import (
	"fmt"
	"net"

	"go.fd.io/govpp/binapi/ethernet_types"
	interfaces "go.fd.io/govpp/binapi/interface"
	"go.fd.io/govpp/binapi/interface_types"

	"github.com/veesix-networks/vpptest/pkg/southbound"
)

func (v *VPP) DumpInterfaces() ([]southbound.InterfaceDetails, error) {
	ch, err := v.channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	req := &interfaces.SwInterfaceDump{
		SwIfIndex: interface_types.InterfaceIndex(^uint32(0)),
	}

	stream := ch.SendMultiRequest(req)
	var result []southbound.InterfaceDetails

	for {
		reply := &interfaces.SwInterfaceDetails{}
		stop, err := stream.ReceiveReply(reply)
		if stop {
			break
		}
		if err != nil {
			v.metrics.observe(req, err)
			return nil, fmt.Errorf("dump interfaces: %w", err)
		}

		mac := make([]byte, len(reply.L2Address))
		copy(mac, reply.L2Address[:])

		details := southbound.InterfaceDetails{
			SwIfIndex:    uint32(reply.SwIfIndex),
			SupSwIfIndex: reply.SupSwIfIndex,
			Name:         reply.InterfaceName,
			DevType:      reply.InterfaceDevType,
			L2Address:    mac,
			AdminUp:      reply.Flags&interface_types.IF_STATUS_API_FLAG_ADMIN_UP != 0,
			LinkUp:       reply.Flags&interface_types.IF_STATUS_API_FLAG_LINK_UP != 0,
			SubID:        reply.SubID,
			OuterVlanID:  reply.SubOuterVlanID,
			InnerVlanID:  reply.SubInnerVlanID,
		}
		if len(reply.Mtu) > 0 {
			details.MTU = reply.Mtu[0]
		}
		result = append(result, details)
	}
	v.metrics.observe(req, nil)

	v.logger.Debug("Dumped interfaces", "count", len(result))
	return result, nil
}

func (v *VPP) SetAdminState(swIfIndex uint32, up bool) error {
	var flags interface_types.IfStatusFlags
	if up {
		flags = interface_types.IF_STATUS_API_FLAG_ADMIN_UP
	}

	req := &interfaces.SwInterfaceSetFlags{
		SwIfIndex: interface_types.InterfaceIndex(swIfIndex),
		Flags:     flags,
	}
	if err := v.request(req, &interfaces.SwInterfaceSetFlagsReply{}); err != nil {
		return fmt.Errorf("set interface flags on sw_if_index %d: %w", swIfIndex, err)
	}

	v.logger.Debug("Set interface admin state", "sw_if_index", swIfIndex, "up", up)
	return nil
}

func (v *VPP) SetTable(swIfIndex uint32, isIPv6 bool, tableID uint32) error {
	req := &interfaces.SwInterfaceSetTable{
		SwIfIndex: interface_types.InterfaceIndex(swIfIndex),
		IsIPv6:    isIPv6,
		VrfID:     tableID,
	}
	if err := v.request(req, &interfaces.SwInterfaceSetTableReply{}); err != nil {
		return fmt.Errorf("set table %d on sw_if_index %d: %w", tableID, swIfIndex, err)
	}

	v.logger.Debug("Set interface table", "sw_if_index", swIfIndex, "ipv6", isIPv6, "table_id", tableID)
	return nil
}

func (v *VPP) CreateLoopback(mac net.HardwareAddr) (uint32, error) {
	var macAddr ethernet_types.MacAddress
	if mac != nil {
		if len(mac) != 6 {
			return 0, fmt.Errorf("%w: mac length %d", southbound.ErrInvalidAddress, len(mac))
		}
		copy(macAddr[:], mac)
	}

	req := &interfaces.CreateLoopback{
		MacAddress: macAddr,
	}
	reply := &interfaces.CreateLoopbackReply{}
	if err := v.request(req, reply); err != nil {
		return 0, fmt.Errorf("create loopback: %w", err)
	}

	v.logger.Debug("Created loopback", "sw_if_index", reply.SwIfIndex, "mac", mac.String())
	return uint32(reply.SwIfIndex), nil
}

func (v *VPP) CreateVLANSubif(parent uint32, vlan uint16) (uint32, error) {
	req := &interfaces.CreateVlanSubif{
		SwIfIndex: interface_types.InterfaceIndex(parent),
		VlanID:    uint32(vlan),
	}
	reply := &interfaces.CreateVlanSubifReply{}
	if err := v.request(req, reply); err != nil {
		return 0, fmt.Errorf("create vlan sub-interface %d.%d: %w", parent, vlan, err)
	}

	v.logger.Debug("Created VLAN sub-interface", "parent", parent, "vlan", vlan, "sw_if_index", reply.SwIfIndex)
	return uint32(reply.SwIfIndex), nil
}
