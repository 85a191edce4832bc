package vpp

import (
	"fmt"

	"go.fd.io/govpp/binapi/interface_types"
	"go.fd.io/govpp/binapi/mpls"
)

func (v *VPP) EnableMPLS(swIfIndex uint32) error {
	req := &mpls.SwInterfaceSetMplsEnable{
		SwIfIndex: interface_types.InterfaceIndex(swIfIndex),
		Enable:    true,
	}
	if err := v.request(req, &mpls.SwInterfaceSetMplsEnableReply{}); err != nil {
		return fmt.Errorf("enable MPLS on sw_if_index %d: %w", swIfIndex, err)
	}

	v.logger.Debug("Enabled MPLS", "sw_if_index", swIfIndex)
	return nil
}
