package tunnel

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/fmnx/veth/buffer"
	"github.com/fmnx/veth/log"
)

// outbound moves frames from the device to the current peer. It waits on
// frames and on peer changes at once, so a new peer is picked up without
// polling the cell.
func (t *Tunnel) outbound(ctx context.Context) error {
	frames := make(chan *[]byte)
	readErr := make(chan error, 1)
	go t.readFrames(ctx, frames, readErr)

	w := t.peer.Watch()
	remote, ok := w.Borrow()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("[OUTBOUND] read device: %w", err)
		case <-w.Changed():
			remote, ok = w.Borrow()
			log.Debugf("[OUTBOUND] addr changed: %s", remote)
		case frame := <-frames:
			// A change published before this frame was handed over must
			// win over the stale address.
			select {
			case <-w.Changed():
				remote, ok = w.Borrow()
			default:
			}
			t.send(*frame, remote, ok)
			buffer.Put(frame)
		}
	}
}

// readFrames performs the blocking device reads for outbound. The channel
// is unbuffered so frames are never queued.
func (t *Tunnel) readFrames(ctx context.Context, frames chan<- *[]byte, readErr chan<- error) {
	for {
		b := buffer.Get()
		n, err := t.device.Read(*b)
		if err != nil {
			buffer.Put(b)
			readErr <- err
			return
		}
		if n > buffer.MTU {
			buffer.Put(b)
			t.stats.Oversize.Add(1)
			log.Warnf("[OUTBOUND] drop frame: %v", ErrOversizeFrame)
			continue
		}
		*b = (*b)[:n]

		select {
		case frames <- b:
		case <-ctx.Done():
			buffer.Put(b)
			return
		}
	}
}

func (t *Tunnel) send(frame []byte, remote netip.AddrPort, ok bool) {
	if !ok {
		t.stats.DroppedNoPeer.Add(1)
		log.Debugf("[OUTBOUND] no peer yet, drop %d bytes", len(frame))
		return
	}

	if log.IsDebugEnabled() {
		log.Debugf("[OUTBOUND] send %d bytes to %s: %s", len(frame), remote, describe(frame))
	}
	if _, err := t.conn.WriteToUDPAddrPort(frame, remote); err != nil {
		t.stats.SendErrors.Add(1)
		log.Warnf("[OUTBOUND] send %d bytes to %s: %v", len(frame), remote, err)
		return
	}
	t.stats.FramesOut.Add(1)
}
