// Package peer holds the address of the remote end of the tunnel.
//
// A Cell has at most one writer. Readers take a Watcher and are woken
// through a channel when a new address is published, so they never poll.
package peer

import (
	"net/netip"
	"sync"
	"sync/atomic"
)

// Cell is an observable, optional remote endpoint. The zero AddrPort means
// no peer is known yet.
type Cell struct {
	mu      sync.RWMutex
	addr    netip.AddrPort
	version uint64
	changed chan struct{}

	updates atomic.Uint64
}

func NewCell(initial netip.AddrPort) *Cell {
	return &Cell{
		addr:    normalize(initial),
		changed: make(chan struct{}),
	}
}

// Load returns the current endpoint and whether one is set.
func (c *Cell) Load() (netip.AddrPort, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.addr, c.addr.IsValid()
}

// Store publishes addr and wakes every watcher. Storing the value already
// held is a no-op and reports false.
func (c *Cell) Store(addr netip.AddrPort) bool {
	addr = normalize(addr)

	c.mu.Lock()
	if addr == c.addr {
		c.mu.Unlock()
		return false
	}
	c.addr = addr
	c.version++
	close(c.changed)
	c.changed = make(chan struct{})
	c.mu.Unlock()

	c.updates.Add(1)
	return true
}

// Updates returns how many times a new value has been published.
func (c *Cell) Updates() uint64 {
	return c.updates.Load()
}

// Watch returns a Watcher that has already seen the current value.
func (c *Cell) Watch() *Watcher {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &Watcher{cell: c, seen: c.version}
}

// Watcher tracks which version of a Cell its owner has observed. It is not
// safe for concurrent use; each reader takes its own.
type Watcher struct {
	cell *Cell
	seen uint64
}

var closedCh = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Changed returns a channel that is closed once the cell holds a value the
// watcher has not yet seen through Borrow.
func (w *Watcher) Changed() <-chan struct{} {
	w.cell.mu.RLock()
	defer w.cell.mu.RUnlock()
	if w.cell.version != w.seen {
		return closedCh
	}
	return w.cell.changed
}

// Borrow returns the current endpoint and marks it as seen.
func (w *Watcher) Borrow() (netip.AddrPort, bool) {
	w.cell.mu.RLock()
	defer w.cell.mu.RUnlock()
	w.seen = w.cell.version
	return w.cell.addr, w.cell.addr.IsValid()
}

func normalize(addr netip.AddrPort) netip.AddrPort {
	if !addr.IsValid() {
		return netip.AddrPort{}
	}
	return netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port())
}
