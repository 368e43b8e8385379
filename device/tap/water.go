package tap

import (
	"fmt"

	"github.com/songgao/water"

	"github.com/fmnx/veth/device"
	"github.com/fmnx/veth/log"
)

// Water is a TAP device opened through github.com/songgao/water.
type Water struct {
	iface *water.Interface
	mtu   uint32
}

// OpenWater creates a TAP device with the portable water driver.
func OpenWater(name string, mtu uint32) (device.Device, error) {
	iface, err := water.New(water.Config{
		DeviceType:             water.TAP,
		PlatformSpecificParams: waterParams(name),
	})
	if err != nil {
		return nil, fmt.Errorf("create tap: %w", err)
	}

	w := &Water{iface: iface, mtu: mtu}
	if err := configureWater(w.Name(), mtu); err != nil {
		iface.Close()
		return nil, err
	}

	log.Infof("[TAP] %s is up via water, mtu %d", w.Name(), mtu)
	return w, nil
}

func (w *Water) Name() string {
	return w.iface.Name()
}

func (w *Water) Type() string {
	return WaterDriver
}

func (w *Water) Read(buf []byte) (int, error) {
	return w.iface.Read(buf)
}

func (w *Water) Write(buf []byte) (int, error) {
	n, err := w.iface.Write(buf)
	return n, rejected(err)
}

func (w *Water) Close() error {
	return w.iface.Close()
}

func (w *Water) MTU() int {
	return int(w.mtu)
}

var _ device.Device = (*Water)(nil)
