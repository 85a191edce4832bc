package vppif

import (
	"github.com/veesix-networks/vpptest/pkg/identity"
)

// Configuration calls do not touch the record. Errors from the client are
// returned unchanged and nothing is retried.

func (i *Interface) ConfigIP4() error {
	return i.addDelIP4(true)
}

func (i *Interface) UnconfigIP4() error {
	return i.addDelIP4(false)
}

func (i *Interface) addDelIP4(isAdd bool) error {
	addr := i.localIP4.As4()
	i.logger.Debug("Configuring IPv4 address", "interface", i.name, "mac", i.localMAC.String(),
		"address", i.localIP4.String(), "len", identity.IP4PrefixLen, "add", isAdd)
	return i.client.AddDelAddress(i.handle, addr[:], identity.IP4PrefixLen, false, isAdd)
}

func (i *Interface) ConfigIP6() error {
	return i.addDelIP6(true)
}

func (i *Interface) UnconfigIP6() error {
	return i.addDelIP6(false)
}

func (i *Interface) addDelIP6(isAdd bool) error {
	addr := i.localIP6.As16()
	i.logger.Debug("Configuring IPv6 address", "interface", i.name, "mac", i.localMAC.String(),
		"address", i.localIP6.String(), "len", identity.IP6PrefixLen, "add", isAdd)
	return i.client.AddDelAddress(i.handle, addr[:], identity.IP6PrefixLen, true, isAdd)
}

// ConfigureIPv4Neighbors installs a static MAC/IPv4 neighbor entry for every
// remote host, in host order, stopping at the first failure.
func (i *Interface) ConfigureIPv4Neighbors() error {
	for _, h := range i.hosts.Load().hosts {
		mac := h.MACRaw()
		ip := h.IP4Raw()
		i.logger.Debug("Adding IPv4 neighbor", "interface", i.name, "mac", h.MACString(), "ip4", h.IP4String())
		if err := i.client.AddDelIPNeighbor(i.handle, mac[:], ip[:], true); err != nil {
			return err
		}
	}
	return nil
}

// SetTableIP4 binds the interface to an IPv4 table. Call it before
// ConfigIP4.
func (i *Interface) SetTableIP4(tableID uint32) error {
	i.logger.Debug("Setting IPv4 table", "interface", i.name, "table_id", tableID)
	return i.client.SetTable(i.handle, false, tableID)
}

// SetTableIP6 binds the interface to an IPv6 table. Call it before
// ConfigIP6.
func (i *Interface) SetTableIP6(tableID uint32) error {
	i.logger.Debug("Setting IPv6 table", "interface", i.name, "table_id", tableID)
	return i.client.SetTable(i.handle, true, tableID)
}

func (i *Interface) DisableIPv6RA() error {
	i.logger.Debug("Suppressing IPv6 RA", "interface", i.name)
	return i.client.SuppressRA(i.handle)
}

func (i *Interface) AdminUp() error {
	i.logger.Debug("Setting admin up", "interface", i.name, "mac", i.localMAC.String())
	return i.client.SetAdminState(i.handle, true)
}

func (i *Interface) AdminDown() error {
	i.logger.Debug("Setting admin down", "interface", i.name, "mac", i.localMAC.String())
	return i.client.SetAdminState(i.handle, false)
}

func (i *Interface) EnableMPLS() error {
	i.logger.Debug("Enabling MPLS", "interface", i.name)
	return i.client.EnableMPLS(i.handle)
}

// AddSubInterface registers child as nested under i. The child keeps no
// reference back to its parent.
func (i *Interface) AddSubInterface(child *Interface) {
	if child == nil {
		return
	}
	i.subInterfaces = append(i.subInterfaces, child)
}

func (i *Interface) SubInterfaces() []*Interface {
	out := make([]*Interface, len(i.subInterfaces))
	copy(out, i.subInterfaces)
	return out
}
