package system

import "time"

const (
	DefaultAPISocket    = "/run/vpp/api.sock"
	DefaultReplyTimeout = 5 * time.Second
)

type DataplaneConfig struct {
	APISocket    string        `json:"api_socket,omitempty" yaml:"api_socket,omitempty"`
	ReplyTimeout time.Duration `json:"reply_timeout,omitempty" yaml:"reply_timeout,omitempty"`
}
