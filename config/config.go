// Package config loads tunnel configuration using viper.
//
// Values come, in increasing precedence, from defaults, an optional config
// file, VETH_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/spf13/viper"

	"github.com/fmnx/veth/log"
	"github.com/fmnx/veth/tunnel"
)

var ErrInvalidConfig = errors.New("veth: invalid configuration")

type Config struct {
	// Device names the TAP device, optionally prefixed with a driver
	// scheme: "tap0", "tap://tap0" or "water://tap0".
	Device string `mapstructure:"device"`
	// Local is the UDP address to bind, host:port.
	Local string `mapstructure:"local"`
	// Remote is the peer address, host:port. Empty selects server role.
	Remote string `mapstructure:"remote"`

	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Socket  SocketConfig  `mapstructure:"socket"`

	role       tunnel.Role
	remoteAddr netip.AddrPort
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// MetricsConfig enables the Prometheus exporter when Listen is set.
type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
	Path   string `mapstructure:"path"`
}

type SocketConfig struct {
	Interface string `mapstructure:"interface"`
	Mark      int    `mapstructure:"mark"`
}

// New returns a viper instance with defaults and environment overrides
// (e.g. VETH_LOG_LEVEL) installed.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("VETH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("device", "")
	v.SetDefault("local", "")
	v.SetDefault("remote", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("metrics.listen", "")
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("socket.interface", "")
	v.SetDefault("socket.mark", 0)
}

// Load reads path (if not empty) into v, then unmarshals and validates.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field and derives the role. Nothing may start on a
// config that fails here.
func (c *Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("%w: device name is required", ErrInvalidConfig)
	}
	if c.Local == "" {
		return fmt.Errorf("%w: local address is required", ErrInvalidConfig)
	}
	if _, err := net.ResolveUDPAddr("udp", c.Local); err != nil {
		return fmt.Errorf("%w: local address %q: %v", ErrInvalidConfig, c.Local, err)
	}

	c.role = tunnel.Server
	c.remoteAddr = netip.AddrPort{}
	if c.Remote != "" {
		addr, err := parseRemote(c.Remote)
		if err != nil {
			return fmt.Errorf("%w: remote address %q: %v", ErrInvalidConfig, c.Remote, err)
		}
		c.role = tunnel.Client
		c.remoteAddr = addr
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Socket.Mark < 0 {
		return fmt.Errorf("%w: socket mark must not be negative", ErrInvalidConfig)
	}
	return nil
}

func parseRemote(s string) (netip.AddrPort, error) {
	udp, err := net.ResolveUDPAddr("udp", s)
	if err != nil {
		return netip.AddrPort{}, err
	}
	addr := udp.AddrPort()
	addr = netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port())
	if !addr.Addr().IsValid() || addr.Addr().IsUnspecified() {
		return netip.AddrPort{}, errors.New("host must be a concrete address")
	}
	if addr.Port() == 0 {
		return netip.AddrPort{}, errors.New("port must not be zero")
	}
	return addr, nil
}

// Role is Client when a remote address was configured, Server otherwise.
func (c *Config) Role() tunnel.Role {
	return c.role
}

// RemoteAddr returns the resolved remote address; it is invalid in server
// role.
func (c *Config) RemoteAddr() netip.AddrPort {
	return c.remoteAddr
}
