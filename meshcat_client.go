package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mogaika/meshcat_client/config"
	"github.com/mogaika/meshcat_client/logger"
	"github.com/mogaika/meshcat_client/transport"
)

var rootCmd = &cobra.Command{
	Use:   "meshcat_client",
	Short: "Drive a meshcat viewer over ZeroMQ",
	Long: `meshcat_client builds three.js scenes and sends them to a running meshcat
viewer. It can publish demo scenes and URDF robots, or serve an HTTP bridge.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if _, err := config.Load(path); err != nil {
			return err
		}
		if endpoint, _ := cmd.Flags().GetString("endpoint"); endpoint != "" {
			config.SetEndpoint(endpoint)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			config.SetLogLevel(level)
		}
		c := config.Get()
		logger.Init(c.LogLevel, c.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to yaml config file")
	rootCmd.PersistentFlags().String("endpoint", "", "Viewer ZeroMQ endpoint (default "+config.DefaultEndpoint+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
}

// connect dials the configured endpoint.
func connect(ctx context.Context, opts ...transport.Option) (*transport.Client, error) {
	c := config.Get()
	opts = append([]transport.Option{transport.WithDialRetries(c.DialRetries)}, opts...)
	return transport.Dial(ctx, c.Endpoint, opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
