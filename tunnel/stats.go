package tunnel

import "sync/atomic"

// Stats counts what the two paths did with each unit of traffic.
type Stats struct {
	DatagramsIn   atomic.Uint64
	FramesOut     atomic.Uint64
	DroppedNoPeer atomic.Uint64
	Oversize      atomic.Uint64
	Rejected      atomic.Uint64
	SendErrors    atomic.Uint64
}
