package tap

import (
	"github.com/fmnx/veth/device"
)

const (
	// Driver is the driver name for native TAP devices.
	Driver = "tap"

	// WaterDriver is the driver name for TAP devices opened through
	// github.com/songgao/water.
	WaterDriver = "water"
)

// Open creates the TAP device name, sets its MTU and brings it up.
func Open(name string, mtu uint32) (device.Device, error) {
	return openPlatform(name, mtu)
}
