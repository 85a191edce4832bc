// Package topology turns the interface section of a harness config into
// resolved, configured interface records.
package topology

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/veesix-networks/vpptest/pkg/config/interfaces"
	"github.com/veesix-networks/vpptest/pkg/ifmgr"
	"github.com/veesix-networks/vpptest/pkg/logger"
	"github.com/veesix-networks/vpptest/pkg/southbound"
	"github.com/veesix-networks/vpptest/pkg/vppif"
)

type Dataplane interface {
	southbound.Client
	southbound.Creator
}

type Builder struct {
	dp     Dataplane
	ifMgr  *ifmgr.Manager
	logger *slog.Logger
}

func New(dp Dataplane, ifMgr *ifmgr.Manager) *Builder {
	return &Builder{
		dp:     dp,
		ifMgr:  ifMgr,
		logger: logger.Get(logger.Harness),
	}
}

// Build resolves and configures every entry in order, sub-interfaces right
// after their parent. It stops at the first error.
func (b *Builder) Build(cfgs []*interfaces.InterfaceConfig) ([]*vppif.Interface, error) {
	var result []*vppif.Interface

	for n, cfg := range cfgs {
		iface, err := b.buildInterface(cfg)
		if err != nil {
			return result, fmt.Errorf("interfaces[%d]: %w", n, err)
		}
		result = append(result, iface)

		for s, subCfg := range cfg.SubInterfaces {
			sub, err := b.buildSubInterface(iface, subCfg)
			if err != nil {
				return result, fmt.Errorf("interfaces[%d].sub_interfaces[%d]: %w", n, s, err)
			}
			result = append(result, sub)
		}
	}

	return result, nil
}

func (b *Builder) buildInterface(cfg *interfaces.InterfaceConfig) (*vppif.Interface, error) {
	var handle uint32
	switch {
	case cfg.Handle != nil:
		handle = *cfg.Handle
	case cfg.Loopback:
		var mac net.HardwareAddr
		if cfg.MAC != "" {
			parsed, err := net.ParseMAC(cfg.MAC)
			if err != nil {
				return nil, fmt.Errorf("parse mac: %w", err)
			}
			mac = parsed
		}
		idx, err := b.dp.CreateLoopback(mac)
		if err != nil {
			return nil, err
		}
		handle = idx
	default:
		return nil, fmt.Errorf("no handle or loopback given")
	}

	iface, err := b.ifMgr.Resolve(handle, vppif.WithRemoteHosts(cfg.HostCount()))
	if err != nil {
		return nil, err
	}
	if err := Apply(iface, cfg.Settings); err != nil {
		return nil, err
	}
	return iface, nil
}

func (b *Builder) buildSubInterface(parent *vppif.Interface, cfg interfaces.SubInterfaceConfig) (*vppif.Interface, error) {
	handle, err := b.dp.CreateVLANSubif(parent.Handle(), cfg.VLAN)
	if err != nil {
		return nil, err
	}

	sub, err := b.ifMgr.ResolveSub(parent, handle, vppif.WithRemoteHosts(cfg.HostCount()))
	if err != nil {
		return nil, err
	}
	if err := Apply(sub, cfg.Settings); err != nil {
		return nil, err
	}

	b.logger.Info("Configured sub-interface", "parent", parent.Name(), "name", sub.Name(), "vlan", cfg.VLAN)
	return sub, nil
}

// Apply issues the operations selected in s. Tables are bound before
// addresses are assigned, and the interface is brought up last.
func Apply(iface *vppif.Interface, s interfaces.Settings) error {
	steps := []struct {
		enabled bool
		name    string
		run     func() error
	}{
		{s.IP4Table != nil, "set ip4 table", func() error { return iface.SetTableIP4(*s.IP4Table) }},
		{s.IP6Table != nil, "set ip6 table", func() error { return iface.SetTableIP6(*s.IP6Table) }},
		{s.IP4, "config ip4", iface.ConfigIP4},
		{s.IP6, "config ip6", iface.ConfigIP6},
		{s.Neighbors, "configure neighbors", iface.ConfigureIPv4Neighbors},
		{s.DisableRA, "disable ra", iface.DisableIPv6RA},
		{s.MPLS, "enable mpls", iface.EnableMPLS},
		{s.AdminUp, "admin up", iface.AdminUp},
	}

	for _, step := range steps {
		if !step.enabled {
			continue
		}
		if err := step.run(); err != nil {
			return fmt.Errorf("%s on %s: %w", step.name, iface, err)
		}
	}
	return nil
}
