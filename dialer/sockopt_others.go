//go:build !linux

package dialer

import (
	"fmt"
	"runtime"
	"syscall"
)

func setSocketOptions(network, address string, c syscall.RawConn, opts *Options) error {
	if opts == nil || (opts.InterfaceName == "" && opts.RoutingMark == 0) {
		return nil
	}
	return fmt.Errorf("socket options are not supported on %s", runtime.GOOS)
}
