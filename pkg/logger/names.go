package logger

const (
	Harness    = "harness"
	Interface  = "vppif"
	Southbound = "southbound"
	IfMgr      = "ifmgr"
	Config     = "config"
)
