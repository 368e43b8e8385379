//go:build linux

package dialer

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func setSocketOptions(network, address string, c syscall.RawConn, opts *Options) (err error) {
	if opts == nil || (opts.InterfaceName == "" && opts.RoutingMark == 0) {
		return nil
	}

	var innerErr error
	err = c.Control(func(fd uintptr) {
		if opts.InterfaceName != "" {
			if innerErr = unix.BindToDevice(int(fd), opts.InterfaceName); innerErr != nil {
				return
			}
		}
		if opts.RoutingMark != 0 {
			innerErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_MARK, opts.RoutingMark)
		}
	})

	if innerErr != nil {
		err = innerErr
	}
	return
}
