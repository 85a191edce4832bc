// Package identity derives the addresses of a DUT interface and of the
// simulated peers attached to it. Everything is a pure function of the
// interface handle and a host ordinal, so a topology built twice from the
// same handles is byte-for-byte identical.
package identity

import (
	"fmt"
	"net"

	"inet.af/netaddr"
)

// Host is a simulated remote peer. Values are immutable once derived.
type Host struct {
	mac     [6]byte
	ip4     netaddr.IP
	ip6     netaddr.IP
	handle  uint8
	ordinal uint8
}

func (h Host) MAC() net.HardwareAddr {
	mac := make(net.HardwareAddr, 6)
	copy(mac, h.mac[:])
	return mac
}

func (h Host) MACRaw() [6]byte {
	return h.mac
}

// MACString is the canonical lower-case colon form, e.g. 02:03:00:00:ff:02.
func (h Host) MACString() string {
	return net.HardwareAddr(h.mac[:]).String()
}

func (h Host) IP4() netaddr.IP {
	return h.ip4
}

func (h Host) IP4Raw() [4]byte {
	return h.ip4.As4()
}

func (h Host) IP4String() string {
	return h.ip4.String()
}

func (h Host) IP6() netaddr.IP {
	return h.ip6
}

func (h Host) IP6Raw() [16]byte {
	return h.ip6.As16()
}

// IP6String keeps the zero-padded groups of the derivation format
// (fd01:0003::0002) rather than the compressed RFC 5952 form.
func (h Host) IP6String() string {
	return fmt.Sprintf("fd01:%04x::%04x", h.handle, h.ordinal)
}

func (h Host) Ordinal() uint8 {
	return h.ordinal
}

func (h Host) String() string {
	return fmt.Sprintf("Host<mac=%s ip4=%s ip6=%s>", h.MACString(), h.IP4String(), h.IP6String())
}
