//go:build linux

package tap

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/fmnx/veth/device"
	"github.com/fmnx/veth/log"
)

type TAP struct {
	fd   *os.File
	mtu  uint32
	name string
}

func openPlatform(name string, mtu uint32) (device.Device, error) {
	t := &TAP{name: name, mtu: mtu}

	if len(t.name) >= unix.IFNAMSIZ {
		return nil, fmt.Errorf("interface name too long: %s", t.name)
	}

	fd, actual, err := openNativeTap(t.name)
	if err != nil {
		return nil, fmt.Errorf("create tap: %w", err)
	}
	t.fd = fd
	t.name = actual

	if err := configure(t.name, t.mtu); err != nil {
		t.fd.Close()
		return nil, err
	}

	log.Infof("[TAP] %s is up, mtu %d", t.name, t.mtu)
	return t, nil
}

func openNativeTap(name string) (*os.File, string, error) {
	fd, err := unix.Open("/dev/net/tun", unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, "", fmt.Errorf("open /dev/net/tun: %w", err)
	}

	ifr, err := unix.NewIfreq(name)
	if err != nil {
		unix.Close(fd)
		return nil, "", err
	}
	ifr.SetUint16(unix.IFF_TAP | unix.IFF_NO_PI)

	if err := unix.IoctlIfreq(fd, unix.TUNSETIFF, ifr); err != nil {
		unix.Close(fd)
		return nil, "", fmt.Errorf("TUNSETIFF: %w", err)
	}

	// A nonblocking descriptor is registered with the runtime poller, so
	// Close unblocks a pending Read.
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, "", fmt.Errorf("set nonblock: %w", err)
	}

	return os.NewFile(uintptr(fd), "/dev/net/tun"), ifr.Name(), nil
}

// configure sets the MTU of an existing link and brings it up.
func configure(name string, mtu uint32) error {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return err
	}
	defer unix.Close(fd)

	if mtu > 0 {
		ifr, err := unix.NewIfreq(name)
		if err != nil {
			return err
		}
		ifr.SetUint32(mtu)
		if err := unix.IoctlIfreq(fd, unix.SIOCSIFMTU, ifr); err != nil {
			return fmt.Errorf("set mtu: %w", err)
		}
	}

	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return err
	}
	if err := unix.IoctlIfreq(fd, unix.SIOCGIFFLAGS, ifr); err != nil {
		return fmt.Errorf("get flags: %w", err)
	}
	ifr.SetUint16(ifr.Uint16() | unix.IFF_UP)
	if err := unix.IoctlIfreq(fd, unix.SIOCSIFFLAGS, ifr); err != nil {
		return fmt.Errorf("set link up: %w", err)
	}
	return nil
}

func (t *TAP) Name() string {
	return t.name
}

func (t *TAP) Type() string {
	return Driver
}

func (t *TAP) Read(buf []byte) (int, error) {
	return t.fd.Read(buf)
}

func (t *TAP) Write(buf []byte) (int, error) {
	n, err := t.fd.Write(buf)
	return n, rejected(err)
}

func (t *TAP) Close() error {
	return t.fd.Close()
}

func (t *TAP) MTU() int {
	return int(t.mtu)
}

// rejected maps the kernel's refusal of a single malformed frame onto
// device.ErrFrameRejected.
func rejected(err error) error {
	if err != nil && errors.Is(err, unix.EINVAL) {
		return fmt.Errorf("%w: %w", device.ErrFrameRejected, err)
	}
	return err
}

var _ device.Device = (*TAP)(nil)
