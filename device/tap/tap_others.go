//go:build !linux

package tap

import (
	"fmt"
	"runtime"

	"github.com/fmnx/veth/device"
)

func openPlatform(name string, mtu uint32) (device.Device, error) {
	return nil, fmt.Errorf("native tap driver is not supported on %s, use %s://%s", runtime.GOOS, WaterDriver, name)
}
