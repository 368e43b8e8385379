package tunnel

import (
	"errors"
	"net"
	"net/netip"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fmnx/veth/device"
)

// fakeDevice is an in-memory link device. Frames pushed into frames are
// returned by Read; frames passed to Write appear on written.
type fakeDevice struct {
	frames  chan []byte
	written chan []byte
	readErr chan error
	done    chan struct{}
	once    sync.Once

	rejectWrites atomic.Int32
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		frames:  make(chan []byte),
		written: make(chan []byte, 64),
		readErr: make(chan error, 1),
		done:    make(chan struct{}),
	}
}

func (d *fakeDevice) Read(b []byte) (int, error) {
	select {
	case f := <-d.frames:
		return copy(b, f), nil
	case err := <-d.readErr:
		return 0, err
	case <-d.done:
		return 0, os.ErrClosed
	}
}

func (d *fakeDevice) Write(b []byte) (int, error) {
	if d.rejectWrites.Add(-1) >= 0 {
		return 0, device.ErrFrameRejected
	}
	cp := append([]byte(nil), b...)
	select {
	case d.written <- cp:
		return len(b), nil
	case <-d.done:
		return 0, os.ErrClosed
	}
}

func (d *fakeDevice) Close() error {
	d.once.Do(func() { close(d.done) })
	return nil
}

func (d *fakeDevice) closed() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

type datagram struct {
	payload []byte
	addr    netip.AddrPort
}

// fakeConn is an in-memory datagram socket.
type fakeConn struct {
	incoming chan datagram
	sent     chan datagram
	readErr  chan error
	done     chan struct{}
	once     sync.Once

	failSends atomic.Int32
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		incoming: make(chan datagram),
		sent:     make(chan datagram, 64),
		readErr:  make(chan error, 1),
		done:     make(chan struct{}),
	}
}

func (c *fakeConn) ReadFromUDPAddrPort(b []byte) (int, netip.AddrPort, error) {
	select {
	case d := <-c.incoming:
		return copy(b, d.payload), d.addr, nil
	case err := <-c.readErr:
		return 0, netip.AddrPort{}, err
	case <-c.done:
		return 0, netip.AddrPort{}, net.ErrClosed
	}
}

func (c *fakeConn) WriteToUDPAddrPort(b []byte, addr netip.AddrPort) (int, error) {
	if c.failSends.Add(-1) >= 0 {
		return 0, errors.New("network is unreachable")
	}
	cp := append([]byte(nil), b...)
	select {
	case c.sent <- datagram{payload: cp, addr: addr}:
		return len(b), nil
	case <-c.done:
		return 0, net.ErrClosed
	}
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

const waitFor = 2 * time.Second

func (c *fakeConn) deliver(t *testing.T, payload []byte, from netip.AddrPort) {
	t.Helper()
	select {
	case c.incoming <- datagram{payload: payload, addr: from}:
	case <-time.After(waitFor):
		t.Fatal("inbound path did not receive datagram")
	}
}

func (c *fakeConn) nextSent(t *testing.T) datagram {
	t.Helper()
	select {
	case d := <-c.sent:
		return d
	case <-time.After(waitFor):
		t.Fatal("no datagram sent")
		return datagram{}
	}
}

func (c *fakeConn) requireNoSend(t *testing.T) {
	t.Helper()
	select {
	case d := <-c.sent:
		t.Fatalf("unexpected datagram to %s", d.addr)
	case <-time.After(50 * time.Millisecond):
	}
}

func (d *fakeDevice) push(t *testing.T, frame []byte) {
	t.Helper()
	select {
	case d.frames <- frame:
	case <-time.After(waitFor):
		t.Fatal("outbound path did not read frame")
	}
}

func (d *fakeDevice) nextWritten(t *testing.T) []byte {
	t.Helper()
	select {
	case f := <-d.written:
		return f
	case <-time.After(waitFor):
		t.Fatal("no frame written to device")
		return nil
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, waitFor, 5*time.Millisecond)
}
