package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mogaika/meshcat_client/config"
	"github.com/mogaika/meshcat_client/logger"
	"github.com/mogaika/meshcat_client/metrics"
	"github.com/mogaika/meshcat_client/status"
	"github.com/mogaika/meshcat_client/transport"
	"github.com/mogaika/meshcat_client/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP bridge",
	Long: `Accepts JSON scene commands over HTTP and forwards them to the viewer one at a
time. Command results are streamed on /ws and counted on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			c := config.Get()
			c.HTTPAddr = addr
			config.Set(c)
		}

		hub := status.NewHub()
		m := metrics.New()
		client, err := connect(ctx, transport.WithObserver(hub), transport.WithObserver(m))
		if err != nil {
			return err
		}
		defer client.Close()

		worker := transport.NewWorker(client)
		defer worker.Stop()

		hub.Info("Connected to " + client.Endpoint())
		server := web.NewServer(worker, hub, m.Handler())
		err = web.StartServer(ctx, config.Get().HTTPAddr, server)
		if err == http.ErrServerClosed {
			err = nil
		}
		logger.Component("web").Info("Stopped")
		return err
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "HTTP listen address (default "+config.DefaultHTTPAddr+")")
	rootCmd.AddCommand(serveCmd)
}
