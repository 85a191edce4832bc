package southbound

type MPLS interface {
	EnableMPLS(swIfIndex uint32) error
}
