package interfaces

// InterfaceConfig selects a DUT interface and what to configure on it.
// Exactly one of Handle or Loopback identifies the interface.
type InterfaceConfig struct {
	Settings `yaml:",inline"`

	Handle        *uint32              `json:"handle,omitempty" yaml:"handle,omitempty"`
	Loopback      bool                 `json:"loopback,omitempty" yaml:"loopback,omitempty"`
	MAC           string               `json:"mac,omitempty" yaml:"mac,omitempty"`
	SubInterfaces []SubInterfaceConfig `json:"sub_interfaces,omitempty" yaml:"sub_interfaces,omitempty"`
}

type SubInterfaceConfig struct {
	Settings `yaml:",inline"`

	VLAN uint16 `json:"vlan" yaml:"vlan"`
}

type Settings struct {
	RemoteHosts *int    `json:"remote_hosts,omitempty" yaml:"remote_hosts,omitempty"`
	IP4Table    *uint32 `json:"ip4_table,omitempty" yaml:"ip4_table,omitempty"`
	IP6Table    *uint32 `json:"ip6_table,omitempty" yaml:"ip6_table,omitempty"`
	IP4         bool    `json:"ip4,omitempty" yaml:"ip4,omitempty"`
	IP6         bool    `json:"ip6,omitempty" yaml:"ip6,omitempty"`
	Neighbors   bool    `json:"neighbors,omitempty" yaml:"neighbors,omitempty"`
	DisableRA   bool    `json:"disable_ra,omitempty" yaml:"disable_ra,omitempty"`
	AdminUp     bool    `json:"admin_up,omitempty" yaml:"admin_up,omitempty"`
	MPLS        bool    `json:"mpls,omitempty" yaml:"mpls,omitempty"`
}

// HostCount is the number of remote hosts to derive, 1 when unset.
func (s Settings) HostCount() int {
	if s.RemoteHosts == nil {
		return 1
	}
	return *s.RemoteHosts
}
