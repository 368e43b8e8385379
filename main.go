package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fmnx/veth/config"
	"github.com/fmnx/veth/engine"
	"github.com/fmnx/veth/log"
)

var (
	Version   = "unknown"
	BuildDate = "unknown"
	BuildType = "DEV"

	configFile string
	settings   = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "veth <device> <local-addr>",
	Short: "veth: virtual L2 connection",
	Long: `veth bridges a local TAP device to a remote peer over UDP.

Without -c the process runs as server and sends to whichever peer last
sent it a datagram. With -c it runs as client and always sends to the
given address.

Examples:
  veth tap0 0.0.0.0:9000                      # server
  veth tap0 0.0.0.0:9001 -c 192.0.2.1:9000    # client
  veth water://tap0 :9000 --log-level debug   # portable driver`,
	Version:       fmt.Sprintf("%s (%s, built %s)", Version, BuildType, BuildDate),
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configFile, "config", "", "Specify the path to a config file")
	flags.StringP("connect", "c", "", "Remote address to send to; selects client role")
	flags.String("log-level", "info", "Log level: debug, info, warn, error, silent")
	flags.String("log-file", "", "Also write logs to this file, rotated by size")
	flags.String("metrics", "", "Serve Prometheus metrics on this address")
	flags.String("bind-interface", "", "Bind the UDP socket to this network interface")
	flags.Int("mark", 0, "Set this fwmark on every datagram sent")

	mustBind(settings, flags, map[string]string{
		"remote":           "connect",
		"log.level":        "log-level",
		"log.file":         "log-file",
		"metrics.listen":   "metrics",
		"socket.interface": "bind-interface",
		"socket.mark":      "mark",
	})
}

func mustBind(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	settings.Set("device", args[0])
	settings.Set("local", args[1])

	cfg, err := config.Load(settings, configFile)
	if err != nil {
		return err
	}

	level, _ := log.ParseLevel(cfg.Log.Level)
	logger, err := log.NewLeveled(level, log.WithFile(cfg.Log.File))
	if err != nil {
		return err
	}
	log.SetLogger(logger)
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := engine.New(ctx, cfg)
	if err != nil {
		return err
	}
	return e.Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
