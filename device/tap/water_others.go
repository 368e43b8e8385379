//go:build !linux

package tap

import (
	"github.com/songgao/water"

	"github.com/fmnx/veth/log"
)

// The device name is chosen by the platform driver.
func waterParams(string) water.PlatformSpecificParams {
	return water.PlatformSpecificParams{}
}

func configureWater(name string, mtu uint32) error {
	log.Warnf("[TAP] cannot configure %s here, set mtu %d and bring it up manually", name, mtu)
	return nil
}

func rejected(err error) error {
	return err
}
