// Package engine wires configuration, device, socket and tunnel together.
package engine

import (
	"context"
	"fmt"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fmnx/veth/buffer"
	"github.com/fmnx/veth/config"
	"github.com/fmnx/veth/device"
	"github.com/fmnx/veth/dialer"
	"github.com/fmnx/veth/log"
	"github.com/fmnx/veth/metrics"
	"github.com/fmnx/veth/peer"
	"github.com/fmnx/veth/tunnel"
)

type Engine struct {
	device  device.Device
	conn    *net.UDPConn
	tunnel  *tunnel.Tunnel
	metrics *metrics.Server
}

// New opens the device, binds the socket and prepares the tunnel. Nothing
// is forwarded until Run.
func New(ctx context.Context, cfg *config.Config) (*Engine, error) {
	dev, err := parseDevice(cfg.Device, buffer.MTU)
	if err != nil {
		return nil, fmt.Errorf("[ENGINE] open device %s: %w", cfg.Device, err)
	}

	conn, err := dialer.ListenUDP(ctx, cfg.Local, &dialer.Options{
		InterfaceName: cfg.Socket.Interface,
		RoutingMark:   cfg.Socket.Mark,
	})
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("[ENGINE] bind %s: %w", cfg.Local, err)
	}
	if cfg.Socket.Interface != "" {
		log.Infof("[DIALER] bind to interface: %s", cfg.Socket.Interface)
	}

	e := &Engine{
		device: dev,
		conn:   conn,
		tunnel: tunnel.New(dev, conn, peer.NewCell(cfg.RemoteAddr()), cfg.Role()),
	}

	if cfg.Metrics.Listen != "" {
		if err := e.startMetrics(cfg.Metrics); err != nil {
			e.Close()
			return nil, err
		}
	}

	remote := "learning from inbound traffic"
	if addr := cfg.RemoteAddr(); addr.IsValid() {
		remote = addr.String()
	}
	log.Infof(
		"[ENGINE] %s://%s <-> udp://%s -> %s",
		dev.Type(), dev.Name(), conn.LocalAddr(), remote,
	)
	return e, nil
}

func (e *Engine) startMetrics(cfg config.MetricsConfig) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(reg, e.tunnel); err != nil {
		return fmt.Errorf("[ENGINE] register metrics: %w", err)
	}

	srv := metrics.NewServer(cfg.Listen, cfg.Path, reg)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("[ENGINE] %w", err)
	}
	e.metrics = srv
	return nil
}

func (e *Engine) Tunnel() *tunnel.Tunnel {
	return e.tunnel
}

// Run forwards until ctx is cancelled or a path fails, then releases every
// resource.
func (e *Engine) Run(ctx context.Context) error {
	defer e.Close()
	return e.tunnel.Run(ctx)
}

// Close shuts the engine down. It is safe to call after Run.
func (e *Engine) Close() {
	if e.metrics != nil {
		if err := e.metrics.Stop(context.Background()); err != nil {
			log.Warnf("[ENGINE] %v", err)
		}
		e.metrics = nil
	}
	_ = e.conn.Close()
	_ = e.device.Close()
}
