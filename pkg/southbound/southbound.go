package southbound

import (
	"errors"
	"net"
)

var (
	ErrUnavailable    = errors.New("southbound dataplane unavailable")
	ErrInvalidAddress = errors.New("invalid raw address")
)

// Client is the control-plane capability a test interface is configured
// through. Every call blocks until the dataplane replies.
type Client interface {
	Interfaces
	Addressing
	IPv6
	MPLS
}

// Creator allocates new dataplane interfaces. The returned value is the
// handle the dataplane assigned.
type Creator interface {
	CreateLoopback(mac net.HardwareAddr) (uint32, error)
	CreateVLANSubif(parent uint32, vlan uint16) (uint32, error)
}
