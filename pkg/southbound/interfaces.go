package southbound

type Interfaces interface {
	DumpInterfaces() ([]InterfaceDetails, error)
	SetAdminState(swIfIndex uint32, up bool) error
	SetTable(swIfIndex uint32, isIPv6 bool, tableID uint32) error
}
