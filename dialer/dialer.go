package dialer

import (
	"context"
	"fmt"
	"net"
	"syscall"
)

type Options struct {
	// InterfaceName is the name of interface/device to bind.
	// If a socket is bound to an interface, only packets received
	// from that particular interface are processed by the socket.
	InterfaceName string

	// RoutingMark is the mark for each packet sent through this
	// socket. Changing the mark can be used for mark-based routing
	// without netfilter or for packet filtering.
	RoutingMark int
}

func ListenPacket(ctx context.Context, network, address string) (net.PacketConn, error) {
	return ListenPacketWithOptions(ctx, network, address, &Options{})
}

func ListenPacketWithOptions(ctx context.Context, network, address string, opts *Options) (net.PacketConn, error) {
	lc := &net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			return setSocketOptions(network, address, c, opts)
		},
	}
	return lc.ListenPacket(ctx, network, address)
}

// ListenUDP binds a UDP socket and returns it as *net.UDPConn.
func ListenUDP(ctx context.Context, address string, opts *Options) (*net.UDPConn, error) {
	pc, err := ListenPacketWithOptions(ctx, "udp", address, opts)
	if err != nil {
		return nil, err
	}
	conn, ok := pc.(*net.UDPConn)
	if !ok {
		pc.Close()
		return nil, fmt.Errorf("unexpected packet conn type %T", pc)
	}
	return conn, nil
}
