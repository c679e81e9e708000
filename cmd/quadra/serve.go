package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alejandrodnm/quadra/internal/adapters/httpapi"
	"github.com/alejandrodnm/quadra/internal/calculator"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator as a JSON HTTP API",
	Long: `Starts the JSON API:

  GET  /health
  GET  /v1/strategies
  POST /v1/splits   {"amount":10000,"months":12,"gold_monthly_pct":2,"flip_6m_pct":5,"algo_annual_pct":30}
  POST /v1/custom   (splits fields + gold_weight_pct, flip_weight_pct, algo_weight_pct, fees)
  POST /v1/goal     {"amount":10000,"months":12,"target_pct":55}
  GET  /metrics     Prometheus metrics`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := calculator.New(serviceConfig(cfg), nil)
		if err != nil {
			return err
		}

		httpCfg := httpapi.Config{
			Addr:           cfg.HTTP.Addr,
			RateLimitRPS:   cfg.HTTP.RateLimitRPS,
			RateLimitBurst: cfg.HTTP.RateLimitBurst,
			ReadTimeout:    cfg.ReadTimeout(),
			WriteTimeout:   cfg.WriteTimeout(),
		}
		if serveAddr != "" {
			httpCfg.Addr = serveAddr
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := httpapi.NewServer(httpCfg, svc).Run(ctx); err != nil {
			return err
		}
		slog.Info("quadra stopped cleanly")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
