//go:build linux

package tap

import "github.com/songgao/water"

func waterParams(name string) water.PlatformSpecificParams {
	return water.PlatformSpecificParams{Name: name}
}

func configureWater(name string, mtu uint32) error {
	return configure(name, mtu)
}
