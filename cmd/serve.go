package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mezonai/orion/api"
	"github.com/mezonai/orion/logx"
	"github.com/mezonai/orion/monitoring"
	"github.com/mezonai/orion/service"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local HTTP API for a browser UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		monitoring.InitMetrics()
		addr := appConfig.API.ListenAddr
		if cmd.Flags().Changed("listen") {
			addr = serveListen
		}

		airdrop := rt.airdropService()
		svc := api.Services{
			Signing:  service.NewSigningService(rt.inflight, rt.notifier),
			Transfer: service.NewTransferService(rt.inflight, rt.notifier, service.DefaultPollConfig()),
			Airdrop:  airdrop,
			Balance:  service.NewBalanceService(rt.notifier),
			Health:   service.NewHealthService(rt.client, rt.cluster.Name, rt.cluster.URL),
		}
		server := api.NewAPIServer(addr, rt.session, svc, rt.bus, api.CORSConfig{
			AllowedOrigins: appConfig.API.AllowedOrigins,
		})
		server.Start()

		if pub, ok := rt.session.Wallet.PublicKey(); ok {
			logx.Info("SERVE", "Wallet ", pub, " connected to ", rt.cluster.Name)
		} else {
			logx.Warn("SERVE", "No wallet key configured, signing and transfers are disabled")
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logx.Info("SERVE", "Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (default from config)")
}
