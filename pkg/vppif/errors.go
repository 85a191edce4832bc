package vppif

import (
	"errors"
	"fmt"
	"strings"

	"github.com/veesix-networks/vpptest/pkg/southbound"
)

var ErrNotFound = errors.New("host not found")

type AddrKind string

const (
	KindMAC AddrKind = "mac"
	KindIP4 AddrKind = "ip4"
	KindIP6 AddrKind = "ip6"
)

// NotFoundError is returned by host lookups for keys outside the current
// remote host set.
type NotFoundError struct {
	Kind AddrKind
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no remote host with %s %q", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ReconciliationError means the interface dump had no entry for the handle,
// usually because the interface never came up on the DUT.
type ReconciliationError struct {
	Handle uint32
	Dump   []southbound.InterfaceDetails
}

func (e *ReconciliationError) Error() string {
	entries := make([]string, 0, len(e.Dump))
	for _, d := range e.Dump {
		entries = append(entries, fmt.Sprintf("{sw_if_index=%d name=%q l2_address=%x}",
			d.SwIfIndex, trimName(d.Name), d.L2Address))
	}
	return fmt.Sprintf("could not find interface with sw_if_index %d in interface dump [%s]",
		e.Handle, strings.Join(entries, " "))
}
