package tunnel

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/fmnx/veth/buffer"
	"github.com/fmnx/veth/device"
	"github.com/fmnx/veth/log"
)

// inbound moves datagrams from the socket to the device. Frames reach the
// device in arrival order. Only this path writes the peer cell.
func (t *Tunnel) inbound(ctx context.Context) error {
	buf := make([]byte, buffer.FrameBufferSize)
	var last netip.AddrPort

	for {
		n, from, err := t.conn.ReadFromUDPAddrPort(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("[INBOUND] read socket: %w", err)
		}
		from = netip.AddrPortFrom(from.Addr().Unmap(), from.Port())

		if n > buffer.MTU {
			t.stats.Oversize.Add(1)
			log.Warnf("[INBOUND] drop datagram from %s: %v", from, ErrOversizeFrame)
			continue
		}

		frame := buf[:n]
		if log.IsDebugEnabled() {
			log.Debugf("[INBOUND] rcvd %d bytes from %s: %s", n, from, describe(frame))
		}

		if _, err := t.device.Write(frame); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, device.ErrFrameRejected) {
				t.stats.Rejected.Add(1)
				log.Warnf("[INBOUND] drop %d bytes from %s: %v", n, from, err)
				continue
			}
			return fmt.Errorf("[INBOUND] write device: %w", err)
		}
		t.stats.DatagramsIn.Add(1)

		if t.role == Server && from != last {
			last = from
			if t.peer.Store(from) {
				log.Infof("[PEER] now sending to %s", from)
			}
		}
	}
}
