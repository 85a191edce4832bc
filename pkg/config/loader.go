package config

import (
	"fmt"
	"net"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/veesix-networks/vpptest/pkg/config/interfaces"
	"github.com/veesix-networks/vpptest/pkg/config/system"
	"github.com/veesix-networks/vpptest/pkg/identity"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Dataplane.APISocket == "" {
		c.Dataplane.APISocket = system.DefaultAPISocket
	}
	if c.Dataplane.ReplyTimeout == 0 {
		c.Dataplane.ReplyTimeout = system.DefaultReplyTimeout
	}
}

func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q must be text or json", c.Logging.Format)
	}
	if c.Dataplane.ReplyTimeout < 0 {
		return fmt.Errorf("dataplane.reply_timeout must not be negative")
	}

	for i, iface := range c.Interfaces {
		if iface == nil {
			return fmt.Errorf("interfaces[%d] is empty", i)
		}
		if err := validateInterface(iface); err != nil {
			return fmt.Errorf("interfaces[%d]: %w", i, err)
		}
	}
	return nil
}

func validateInterface(iface *interfaces.InterfaceConfig) error {
	if (iface.Handle != nil) == iface.Loopback {
		return fmt.Errorf("exactly one of handle or loopback must be set")
	}
	if iface.Handle != nil && *iface.Handle > identity.MaxHandle {
		return fmt.Errorf("handle %d exceeds %d", *iface.Handle, identity.MaxHandle)
	}
	if iface.MAC != "" {
		if !iface.Loopback {
			return fmt.Errorf("mac is only used when creating a loopback")
		}
		mac, err := net.ParseMAC(iface.MAC)
		if err != nil || len(mac) != 6 {
			return fmt.Errorf("invalid mac %q", iface.MAC)
		}
	}
	if err := validateSettings(iface.Settings); err != nil {
		return err
	}

	seen := make(map[uint16]bool)
	for i, sub := range iface.SubInterfaces {
		if sub.VLAN == 0 || sub.VLAN > 4094 {
			return fmt.Errorf("sub_interfaces[%d].vlan %d not in [1, 4094]", i, sub.VLAN)
		}
		if seen[sub.VLAN] {
			return fmt.Errorf("sub_interfaces[%d].vlan %d is duplicated", i, sub.VLAN)
		}
		seen[sub.VLAN] = true
		if err := validateSettings(sub.Settings); err != nil {
			return fmt.Errorf("sub_interfaces[%d]: %w", i, err)
		}
	}
	return nil
}

func validateSettings(s interfaces.Settings) error {
	if n := s.HostCount(); n < 0 || n > identity.MaxHosts {
		return fmt.Errorf("remote_hosts %d not in [0, %d]", n, identity.MaxHosts)
	}
	if s.Neighbors && s.HostCount() == 0 {
		return fmt.Errorf("neighbors requested without remote hosts")
	}
	return nil
}
