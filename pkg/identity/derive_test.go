package identity

import (
	"errors"
	"testing"
)

func TestDeriveHostHandle3(t *testing.T) {
	h, err := DeriveHost(3, 2)
	if err != nil {
		t.Fatalf("DeriveHost(3, 2) error: %v", err)
	}

	if got := h.MACString(); got != "02:03:00:00:ff:02" {
		t.Errorf("MAC = %s, want 02:03:00:00:ff:02", got)
	}
	if got := h.IP4String(); got != "172.16.3.2" {
		t.Errorf("IPv4 = %s, want 172.16.3.2", got)
	}
	if got := h.IP6String(); got != "fd01:0003::0002" {
		t.Errorf("IPv6 = %s, want fd01:0003::0002", got)
	}
	if got := h.IP6().String(); got != "fd01:3::2" {
		t.Errorf("IPv6 canonical = %s, want fd01:3::2", got)
	}
}

func TestLocalAddresses(t *testing.T) {
	ip4, err := LocalIP4(3)
	if err != nil {
		t.Fatalf("LocalIP4(3) error: %v", err)
	}
	if ip4.String() != "172.16.3.1" {
		t.Errorf("LocalIP4(3) = %s, want 172.16.3.1", ip4)
	}

	ip6, err := LocalIP6(3)
	if err != nil {
		t.Fatalf("LocalIP6(3) error: %v", err)
	}
	if ip6.String() != "fd01:3::1" {
		t.Errorf("LocalIP6(3) = %s, want fd01:3::1", ip6)
	}
}

func TestRawForms(t *testing.T) {
	h, err := DeriveHost(10, 200)
	if err != nil {
		t.Fatalf("DeriveHost error: %v", err)
	}

	if got, want := h.MACRaw(), [6]byte{0x02, 0x0a, 0, 0, 0xff, 0xc8}; got != want {
		t.Errorf("MACRaw = %x, want %x", got, want)
	}
	if got, want := h.IP4Raw(), [4]byte{172, 16, 10, 200}; got != want {
		t.Errorf("IP4Raw = %v, want %v", got, want)
	}
	want6 := [16]byte{0xfd, 0x01, 0x00, 0x0a}
	want6[15] = 0xc8
	if got := h.IP6Raw(); got != want6 {
		t.Errorf("IP6Raw = %x, want %x", got, want6)
	}
}

func TestDeriveHostsDeterministic(t *testing.T) {
	for _, handle := range []uint32{0, 1, 7, 128, MaxHandle} {
		for _, count := range []int{0, 1, 5, MaxHosts} {
			a, err := DeriveHosts(handle, count)
			if err != nil {
				t.Fatalf("DeriveHosts(%d, %d) error: %v", handle, count, err)
			}
			b, _ := DeriveHosts(handle, count)

			if len(a) != count {
				t.Fatalf("DeriveHosts(%d, %d) returned %d hosts", handle, count, len(a))
			}
			for i := range a {
				if a[i] != b[i] {
					t.Fatalf("handle %d host %d differs between runs: %v vs %v", handle, i, a[i], b[i])
				}
			}
		}
	}
}

func TestDeriveHostsOrdinalsAndUniqueness(t *testing.T) {
	hosts, err := DeriveHosts(9, 50)
	if err != nil {
		t.Fatalf("DeriveHosts error: %v", err)
	}

	macs := make(map[string]bool)
	ip4s := make(map[string]bool)
	ip6s := make(map[string]bool)
	for i, h := range hosts {
		if int(h.Ordinal()) != i+2 {
			t.Errorf("host %d ordinal = %d, want %d", i, h.Ordinal(), i+2)
		}
		if macs[h.MACString()] || ip4s[h.IP4String()] || ip6s[h.IP6String()] {
			t.Fatalf("duplicate identity at host %d: %v", i, h)
		}
		macs[h.MACString()] = true
		ip4s[h.IP4String()] = true
		ip6s[h.IP6String()] = true
	}
}

func TestDeriveHostsRange(t *testing.T) {
	tests := []struct {
		name    string
		handle  uint32
		count   int
		wantErr error
	}{
		{"handle too large", MaxHandle + 1, 1, ErrHandleOutOfRange},
		{"negative count", 1, -1, ErrTooManyHosts},
		{"count too large", 1, MaxHosts + 1, ErrTooManyHosts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveHosts(tt.handle, tt.count)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := LocalIP4(256); !errors.Is(err, ErrHandleOutOfRange) {
		t.Fatalf("LocalIP4(256): expected ErrHandleOutOfRange, got %v", err)
	}
}
