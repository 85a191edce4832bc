package vpp

import (
	"fmt"

	"go.fd.io/govpp/binapi/interface_types"
	"go.fd.io/govpp/binapi/ip6_nd"
)

func (v *VPP) SuppressRA(swIfIndex uint32) error {
	req := &ip6_nd.SwInterfaceIP6ndRaConfig{
		SwIfIndex: interface_types.InterfaceIndex(swIfIndex),
		Suppress:  1,
	}
	if err := v.request(req, &ip6_nd.SwInterfaceIP6ndRaConfigReply{}); err != nil {
		return fmt.Errorf("suppress ipv6 ra on sw_if_index %d: %w", swIfIndex, err)
	}

	v.logger.Debug("Suppressed IPv6 RA", "sw_if_index", swIfIndex)
	return nil
}
