package identity

import (
	"errors"
	"fmt"

	"inet.af/netaddr"
)

const (
	// MaxHandle is the largest handle whose identity fits the single octet
	// used for it in the MAC and IPv4 forms.
	MaxHandle = 255

	// MaxHosts is the largest host count per interface. Ordinals start at 2
	// (0 is the network address, 1 the local address) and must fit one octet.
	MaxHosts = 254

	firstHostOrdinal = 2
	localOrdinal     = 1

	IP4PrefixLen = 24
	IP6PrefixLen = 64
)

var (
	ErrHandleOutOfRange = errors.New("interface handle out of range")
	ErrTooManyHosts     = errors.New("remote host count out of range")
)

func checkHandle(handle uint32) error {
	if handle > MaxHandle {
		return fmt.Errorf("%w: %d > %d", ErrHandleOutOfRange, handle, MaxHandle)
	}
	return nil
}

// LocalIP4 returns 172.16.<handle>.1.
func LocalIP4(handle uint32) (netaddr.IP, error) {
	if err := checkHandle(handle); err != nil {
		return netaddr.IP{}, err
	}
	return netaddr.IPv4(172, 16, uint8(handle), localOrdinal), nil
}

// LocalIP6 returns fd01:<handle as %04x>::1.
func LocalIP6(handle uint32) (netaddr.IP, error) {
	if err := checkHandle(handle); err != nil {
		return netaddr.IP{}, err
	}
	return ip6(uint8(handle), localOrdinal), nil
}

// DeriveHost returns the remote host with the given ordinal on handle.
func DeriveHost(handle uint32, ordinal uint8) (Host, error) {
	if err := checkHandle(handle); err != nil {
		return Host{}, err
	}
	h := uint8(handle)
	return Host{
		mac:     [6]byte{0x02, h, 0x00, 0x00, 0xff, ordinal},
		ip4:     netaddr.IPv4(172, 16, h, ordinal),
		ip6:     ip6(h, ordinal),
		handle:  h,
		ordinal: ordinal,
	}, nil
}

// DeriveHosts returns count hosts with ordinals 2..count+1.
func DeriveHosts(handle uint32, count int) ([]Host, error) {
	if err := checkHandle(handle); err != nil {
		return nil, err
	}
	if count < 0 || count > MaxHosts {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrTooManyHosts, count, MaxHosts)
	}

	hosts := make([]Host, 0, count)
	for i := 0; i < count; i++ {
		host, err := DeriveHost(handle, uint8(firstHostOrdinal+i))
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, host)
	}
	return hosts, nil
}

func ip6(handle, ordinal uint8) netaddr.IP {
	var a [16]byte
	a[0], a[1] = 0xfd, 0x01
	a[3] = handle
	a[15] = ordinal
	return netaddr.IPv6Raw(a)
}
