// Package vppif models a DUT interface under test together with the
// simulated peers attached to it.
//
// An Interface is only handed out once it has been matched against the
// DUT's interface dump, so every value a caller holds carries the DUT's name
// and MAC for the handle.
package vppif

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync/atomic"

	"inet.af/netaddr"

	"github.com/veesix-networks/vpptest/pkg/identity"
	"github.com/veesix-networks/vpptest/pkg/logger"
	"github.com/veesix-networks/vpptest/pkg/southbound"
)

const DefaultRemoteHosts = 1

type Interface struct {
	client southbound.Client
	logger *slog.Logger

	handle   uint32
	localIP4 netaddr.IP
	localIP6 netaddr.IP
	hosts    atomic.Pointer[hostSet]

	name     string
	localMAC net.HardwareAddr
	dump     southbound.InterfaceDetails

	subInterfaces []*Interface
}

type options struct {
	remoteHosts int
	logger      *slog.Logger
}

type Option func(*options)

// WithRemoteHosts sets how many remote hosts are derived at construction.
func WithRemoteHosts(n int) Option {
	return func(o *options) {
		o.remoteHosts = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// pending holds the derived identity of a handle that has not been matched
// against the DUT yet.
type pending struct {
	handle   uint32
	localIP4 netaddr.IP
	localIP6 netaddr.IP
	hosts    *hostSet
}

func derive(handle uint32, remoteHosts int) (*pending, error) {
	ip4, err := identity.LocalIP4(handle)
	if err != nil {
		return nil, err
	}
	ip6, err := identity.LocalIP6(handle)
	if err != nil {
		return nil, err
	}
	hosts, err := identity.DeriveHosts(handle, remoteHosts)
	if err != nil {
		return nil, err
	}
	set, err := newHostSet(hosts)
	if err != nil {
		return nil, err
	}

	return &pending{
		handle:   handle,
		localIP4: ip4,
		localIP6: ip6,
		hosts:    set,
	}, nil
}

func (p *pending) resolve(client southbound.Client, l *slog.Logger) (*Interface, error) {
	details, err := lookup(client, p.handle)
	if err != nil {
		return nil, err
	}

	i := &Interface{
		client:        client,
		logger:        l,
		handle:        p.handle,
		localIP4:      p.localIP4,
		localIP6:      p.localIP6,
		subInterfaces: []*Interface{},
	}
	i.hosts.Store(p.hosts)
	i.apply(details)
	return i, nil
}

// New derives the identity of handle and reconciles it against the DUT's
// interface dump. The handle must already exist on the DUT. A missing entry
// yields a *ReconciliationError; a failing dump call is returned as is.
func New(client southbound.Client, handle uint32, opts ...Option) (*Interface, error) {
	o := options{
		remoteHosts: DefaultRemoteHosts,
		logger:      logger.Get(logger.Interface),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if client == nil {
		return nil, fmt.Errorf("vppif: client is required")
	}

	p, err := derive(handle, o.remoteHosts)
	if err != nil {
		return nil, err
	}
	i, err := p.resolve(client, o.logger)
	if err != nil {
		return nil, err
	}

	args := []any{"sw_if_index", i.handle, "name", i.name, "mac", i.localMAC.String(), "local_ip4", i.localIP4.String()}
	if h, ok := i.RemoteHost(); ok {
		args = append(args, "remote_mac", h.MACString(), "remote_ip4", h.IP4String())
	}
	i.logger.Info("New interface", args...)
	return i, nil
}

// Reconcile refreshes the DUT-reported fields from a new interface dump.
// On error the record keeps its previous values.
func (i *Interface) Reconcile() error {
	details, err := lookup(i.client, i.handle)
	if err != nil {
		return err
	}
	i.apply(details)
	return nil
}

func lookup(client southbound.Client, handle uint32) (southbound.InterfaceDetails, error) {
	dump, err := client.DumpInterfaces()
	if err != nil {
		return southbound.InterfaceDetails{}, err
	}
	for _, d := range dump {
		if d.SwIfIndex == handle {
			return d, nil
		}
	}
	return southbound.InterfaceDetails{}, &ReconciliationError{Handle: handle, Dump: dump}
}

func (i *Interface) apply(d southbound.InterfaceDetails) {
	i.name = trimName(d.Name)
	i.localMAC = decodeMAC(d.L2Address)
	i.dump = d
}

// trimName cuts a wire name at its first NUL.
func trimName(name string) string {
	name, _, _ = strings.Cut(name, "\x00")
	return name
}

// decodeMAC keeps the first six octets of a wire L2 address; older
// dataplanes pad it to eight.
func decodeMAC(raw []byte) net.HardwareAddr {
	n := len(raw)
	if n > 6 {
		n = 6
	}
	mac := make(net.HardwareAddr, n)
	copy(mac, raw[:n])
	return mac
}

func (i *Interface) Handle() uint32 {
	return i.handle
}

func (i *Interface) Name() string {
	return i.name
}

func (i *Interface) LocalMAC() net.HardwareAddr {
	mac := make(net.HardwareAddr, len(i.localMAC))
	copy(mac, i.localMAC)
	return mac
}

func (i *Interface) LocalMACString() string {
	return i.localMAC.String()
}

func (i *Interface) LocalIP4() netaddr.IP {
	return i.localIP4
}

func (i *Interface) LocalIP4String() string {
	return i.localIP4.String()
}

func (i *Interface) LocalIP6() netaddr.IP {
	return i.localIP6
}

// LocalIP6String uses the derivation format, e.g. fd01:0003::1.
func (i *Interface) LocalIP6String() string {
	return fmt.Sprintf("fd01:%04x::1", i.handle)
}

// Dump is the interface dump entry the record was reconciled from.
func (i *Interface) Dump() southbound.InterfaceDetails {
	return i.dump
}

func (i *Interface) String() string {
	return fmt.Sprintf("%s(sw_if_index=%d)", i.name, i.handle)
}
