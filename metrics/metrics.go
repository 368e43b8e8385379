// Package metrics exports tunnel counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fmnx/veth/tunnel"
)

const namespace = "veth"

// Register adds collectors reading t's counters and peer cell to reg.
func Register(reg prometheus.Registerer, t *tunnel.Tunnel) error {
	s := t.Stats()
	cell := t.Peer()

	counters := []struct {
		name string
		help string
		fn   func() float64
	}{
		{"datagrams_in_total", "Datagrams received and written to the device", func() float64 { return float64(s.DatagramsIn.Load()) }},
		{"frames_out_total", "Frames read from the device and sent to the peer", func() float64 { return float64(s.FramesOut.Load()) }},
		{"dropped_no_peer_total", "Frames dropped because no peer was known", func() float64 { return float64(s.DroppedNoPeer.Load()) }},
		{"oversize_total", "Datagrams or frames dropped for exceeding the MTU", func() float64 { return float64(s.Oversize.Load()) }},
		{"rejected_total", "Frames refused by the device", func() float64 { return float64(s.Rejected.Load()) }},
		{"send_errors_total", "Datagrams the socket failed to send", func() float64 { return float64(s.SendErrors.Load()) }},
		{"peer_updates_total", "Times a new peer address was learned", func() float64 { return float64(cell.Updates()) }},
	}

	for _, c := range counters {
		collector := prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      c.name,
			Help:      c.help,
		}, c.fn)
		if err := reg.Register(collector); err != nil {
			return err
		}
	}

	peerKnown := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "peer_known",
		Help:        "1 when a peer address is known",
		ConstLabels: prometheus.Labels{"role": t.Role().String()},
	}, func() float64 {
		if _, ok := cell.Load(); ok {
			return 1
		}
		return 0
	})
	return reg.Register(peerKnown)
}
