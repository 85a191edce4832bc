package config

import (
	"github.com/veesix-networks/vpptest/pkg/config/interfaces"
	"github.com/veesix-networks/vpptest/pkg/config/system"
)

type Config struct {
	Logging    system.LoggingConfig          `json:"logging,omitempty" yaml:"logging,omitempty"`
	Dataplane  system.DataplaneConfig        `json:"dataplane,omitempty" yaml:"dataplane,omitempty"`
	Interfaces []*interfaces.InterfaceConfig `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
}
