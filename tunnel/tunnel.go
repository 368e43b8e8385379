// Package tunnel forwards Ethernet frames between a link device and a UDP
// socket.
//
// Two paths run concurrently. The inbound path writes every received
// datagram to the device and, in server role, publishes a newly seen sender
// into the peer cell. The outbound path sends every frame read from the
// device to the peer currently held by the cell, or drops it while none is
// known. The paths share nothing but the cell.
package tunnel

import (
	"context"
	"errors"
	"net/netip"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fmnx/veth/log"
	"github.com/fmnx/veth/peer"
)

// Role decides whether the tunnel learns its peer from inbound traffic.
type Role int

const (
	// Server starts without a peer and follows the latest sender.
	Server Role = iota
	// Client sends to a fixed peer supplied at startup.
	Client
)

func (r Role) String() string {
	switch r {
	case Server:
		return "server"
	case Client:
		return "client"
	default:
		return "unknown"
	}
}

// ErrOversizeFrame reports a datagram or frame longer than buffer.MTU.
var ErrOversizeFrame = errors.New("tunnel: frame exceeds mtu")

// Device is the frame-preserving side of the tunnel.
type Device interface {
	Read([]byte) (int, error)
	Write([]byte) (int, error)
	Close() error
}

// PacketConn is the datagram side of the tunnel. *net.UDPConn implements it.
type PacketConn interface {
	ReadFromUDPAddrPort([]byte) (int, netip.AddrPort, error)
	WriteToUDPAddrPort([]byte, netip.AddrPort) (int, error)
	Close() error
}

type Tunnel struct {
	device Device
	conn   PacketConn
	peer   *peer.Cell
	role   Role
	stats  Stats

	closeOnce sync.Once
}

func New(device Device, conn PacketConn, cell *peer.Cell, role Role) *Tunnel {
	return &Tunnel{
		device: device,
		conn:   conn,
		peer:   cell,
		role:   role,
	}
}

func (t *Tunnel) Role() Role {
	return t.role
}

func (t *Tunnel) Peer() *peer.Cell {
	return t.peer
}

func (t *Tunnel) Stats() *Stats {
	return &t.stats
}

// Run forwards frames in both directions until ctx is cancelled or either
// path fails. Run owns the device and the socket and closes both before
// returning, which is also how a blocked path is released. It returns the
// error of the first path that failed, or nil after cancellation.
func (t *Tunnel) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return t.inbound(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return t.outbound(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		t.close()
		return nil
	})

	log.Infof("[TUNNEL] running as %s", t.role)
	if err := g.Wait(); err != nil {
		return err
	}
	log.Infof("[TUNNEL] stopped")
	return nil
}

func (t *Tunnel) close() {
	t.closeOnce.Do(func() {
		_ = t.conn.Close()
		_ = t.device.Close()
	})
}
