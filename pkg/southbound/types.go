package southbound

// InterfaceDetails is one entry of an interface dump as the dataplane
// reported it. Name and L2Address are kept in their wire form.
type InterfaceDetails struct {
	SwIfIndex    uint32
	SupSwIfIndex uint32
	Name         string
	DevType      string
	L2Address    []byte
	AdminUp      bool
	LinkUp       bool
	MTU          uint32
	SubID        uint32
	OuterVlanID  uint16
	InnerVlanID  uint16
}
