package vpp

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.fd.io/govpp/api"

	"github.com/veesix-networks/vpptest/pkg/logger"
	"github.com/veesix-networks/vpptest/pkg/southbound"
)

var (
	_ southbound.Client  = (*VPP)(nil)
	_ southbound.Creator = (*VPP)(nil)
)

// ChannelProvider is satisfied by *core.Connection.
type ChannelProvider interface {
	NewAPIChannel() (api.Channel, error)
}

type VPP struct {
	conn         ChannelProvider
	logger       *slog.Logger
	replyTimeout time.Duration
	metrics      *requestMetrics
}

type VPPConfig struct {
	Connection   ChannelProvider
	ReplyTimeout time.Duration
	// Registerer receives the request counters. Nil keeps them private to
	// this client.
	Registerer prometheus.Registerer
}

func NewVPP(cfg VPPConfig) (*VPP, error) {
	if cfg.Connection == nil {
		return nil, fmt.Errorf("VPP connection is required")
	}

	metrics := newRequestMetrics()
	if cfg.Registerer != nil {
		if err := metrics.register(cfg.Registerer); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	return &VPP{
		conn:         cfg.Connection,
		logger:       logger.Get(logger.Southbound),
		replyTimeout: cfg.ReplyTimeout,
		metrics:      metrics,
	}, nil
}

func (v *VPP) channel() (api.Channel, error) {
	if v.conn == nil {
		return nil, southbound.ErrUnavailable
	}
	ch, err := v.conn.NewAPIChannel()
	if err != nil {
		return nil, fmt.Errorf("create API channel: %w", err)
	}
	if v.replyTimeout > 0 {
		ch.SetReplyTimeout(v.replyTimeout)
	}
	return ch, nil
}

// request opens a channel for a single request/reply exchange.
func (v *VPP) request(req, reply api.Message) error {
	ch, err := v.channel()
	if err != nil {
		v.metrics.observe(req, err)
		return err
	}
	defer ch.Close()

	err = ch.SendRequest(req).ReceiveReply(reply)
	v.metrics.observe(req, err)
	return err
}

func (v *VPP) Requests(message string, failed bool) float64 {
	return v.metrics.value(message, failed)
}
