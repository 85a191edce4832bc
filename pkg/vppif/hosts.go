package vppif

import (
	"fmt"
	"net"

	"inet.af/netaddr"

	"github.com/veesix-networks/vpptest/pkg/identity"
)

// hostSet is never modified after newHostSet returns; replacing the remote
// hosts swaps in a whole new set.
type hostSet struct {
	hosts []identity.Host
	byMAC map[[6]byte]identity.Host
	byIP4 map[netaddr.IP]identity.Host
	byIP6 map[netaddr.IP]identity.Host
}

func newHostSet(hosts []identity.Host) (*hostSet, error) {
	s := &hostSet{
		hosts: make([]identity.Host, len(hosts)),
		byMAC: make(map[[6]byte]identity.Host, len(hosts)),
		byIP4: make(map[netaddr.IP]identity.Host, len(hosts)),
		byIP6: make(map[netaddr.IP]identity.Host, len(hosts)),
	}
	copy(s.hosts, hosts)

	for _, h := range s.hosts {
		if _, dup := s.byMAC[h.MACRaw()]; dup {
			return nil, fmt.Errorf("duplicate remote host mac %s", h.MACString())
		}
		if _, dup := s.byIP4[h.IP4()]; dup {
			return nil, fmt.Errorf("duplicate remote host ip4 %s", h.IP4String())
		}
		if _, dup := s.byIP6[h.IP6()]; dup {
			return nil, fmt.Errorf("duplicate remote host ip6 %s", h.IP6String())
		}
		s.byMAC[h.MACRaw()] = h
		s.byIP4[h.IP4()] = h
		s.byIP6[h.IP6()] = h
	}
	return s, nil
}

func (s *hostSet) mac(key string) (identity.Host, error) {
	mac, err := net.ParseMAC(key)
	if err == nil && len(mac) == 6 {
		if h, ok := s.byMAC[[6]byte(mac)]; ok {
			return h, nil
		}
	}
	return identity.Host{}, &NotFoundError{Kind: KindMAC, Key: key}
}

func (s *hostSet) ip4(key string) (identity.Host, error) {
	ip, err := netaddr.ParseIP(key)
	if err == nil {
		if h, ok := s.byIP4[ip.Unmap()]; ok {
			return h, nil
		}
	}
	return identity.Host{}, &NotFoundError{Kind: KindIP4, Key: key}
}

func (s *hostSet) ip6(key string) (identity.Host, error) {
	ip, err := netaddr.ParseIP(key)
	if err == nil && ip.Is6() {
		if h, ok := s.byIP6[ip]; ok {
			return h, nil
		}
	}
	return identity.Host{}, &NotFoundError{Kind: KindIP6, Key: key}
}

// RemoteHosts returns a copy of the current remote host sequence.
func (i *Interface) RemoteHosts() []identity.Host {
	s := i.hosts.Load()
	out := make([]identity.Host, len(s.hosts))
	copy(out, s.hosts)
	return out
}

// RemoteHost returns the first remote host, the default peer for
// single-host topologies.
func (i *Interface) RemoteHost() (identity.Host, bool) {
	s := i.hosts.Load()
	if len(s.hosts) == 0 {
		return identity.Host{}, false
	}
	return s.hosts[0], true
}

func (i *Interface) HostByMAC(mac string) (identity.Host, error) {
	return i.hosts.Load().mac(mac)
}

func (i *Interface) HostByIP4(ip string) (identity.Host, error) {
	return i.hosts.Load().ip4(ip)
}

func (i *Interface) HostByIP6(ip string) (identity.Host, error) {
	return i.hosts.Load().ip6(ip)
}

// GenerateRemoteHosts replaces the remote hosts with count freshly derived
// ones.
func (i *Interface) GenerateRemoteHosts(count int) error {
	hosts, err := identity.DeriveHosts(i.handle, count)
	if err != nil {
		return err
	}
	return i.SetRemoteHosts(hosts)
}

// SetRemoteHosts replaces the remote hosts and their indices in one step.
// Hosts must be unique in every address form.
func (i *Interface) SetRemoteHosts(hosts []identity.Host) error {
	s, err := newHostSet(hosts)
	if err != nil {
		return err
	}
	i.hosts.Store(s)
	return nil
}
