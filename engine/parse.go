package engine

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/fmnx/veth/device"
	"github.com/fmnx/veth/device/tap"
)

// deviceURL splits "driver://name" and applies the default driver to a
// bare name.
func deviceURL(s string) (driver, name string, err error) {
	if !strings.Contains(s, "://") {
		s = fmt.Sprintf("%s://%s", tap.Driver /* default driver */, s)
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", "", err
	}
	if u.Host == "" {
		return "", "", errors.New("device name is required")
	}
	return strings.ToLower(u.Scheme), u.Host, nil
}

func parseDevice(s string, mtu uint32) (device.Device, error) {
	driver, name, err := deviceURL(s)
	if err != nil {
		return nil, err
	}

	switch driver {
	case tap.Driver:
		return tap.Open(name, mtu)
	case tap.WaterDriver:
		return tap.OpenWater(name, mtu)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}
