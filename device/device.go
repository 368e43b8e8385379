package device

import "errors"

// ErrFrameRejected is returned by Write when the device refused a single
// frame (for example a runt shorter than an Ethernet header) but remains
// usable.
var ErrFrameRejected = errors.New("device: frame rejected")

// LinkEndpoint is the interface for link layer endpoints carrying whole
// Ethernet frames: one Read yields one frame, one Write emits one frame.
type LinkEndpoint interface {
	// Write writes a frame to the endpoint.
	Write([]byte) (int, error)

	// Read reads a frame from the endpoint.
	Read([]byte) (int, error)

	// Close closes the endpoint. Pending reads return an error.
	Close() error

	// MTU returns the maximum transmission unit.
	MTU() int
}

// Device is the interface implemented by virtual link devices (e.g. tap).
type Device interface {
	LinkEndpoint

	// Name returns the current name of the device.
	Name() string

	// Type returns the driver type of the device.
	Type() string
}
