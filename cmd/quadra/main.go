package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alejandrodnm/quadra/config"
	"github.com/alejandrodnm/quadra/internal/adapters/notify"
	"github.com/alejandrodnm/quadra/internal/calculator"
)

var (
	configPath string
	verbose    bool
	logFormat  string
	detail     bool

	// cfg se carga en PersistentPreRunE antes de cualquier subcomando.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "quadra",
	Short: "Quadra investment platform profit-split calculator",
	Long: `Quadra splits the profit of a blended investment (gold arbitrage,
6-month flipping and algorithmic trading) between the investor, the
platform and the algo-trading contractor, and searches the strategy that
reaches a target investor yield.

All percentage flags take percent values: --gold 2 means 2% per month.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			loaded.Log.Level = "debug"
		}
		if logFormat != "" {
			loaded.Log.Format = logFormat
		}
		setupLogger(loaded.Log)
		cfg = loaded

		slog.Debug("quadra starting", "config", configPath, "command", cmd.Name())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "set log level to debug")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text|json (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&detail, "detail", false, "print the step-by-step breakdown per instrument")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// serviceConfig traduce la configuración cargada a la del servicio.
func serviceConfig(c *config.Config) calculator.Config {
	return calculator.Config{
		Fees:        c.Fees,
		Strategies:  c.Catalogue(),
		Goal:        c.Goal,
		MinAmount:   c.Limits.MinAmount,
		MinMonths:   c.Limits.MinMonths,
		GoalWorkers: c.Calculator.GoalWorkers,
	}
}

// newConsoleService crea el servicio con el reporter de consola.
func newConsoleService() (*calculator.Service, error) {
	return calculator.New(serviceConfig(cfg), notify.NewConsole(detail))
}

// setupLogger configura slog para todos los subcomandos. Los logs van a
// stderr: stdout queda para las tablas de reparto y la salida del goal seeker,
// de modo que `quadra strategies ... > split.txt` no mezcla ambos.
func setupLogger(logCfg config.LogConfig) {
	level := slog.LevelInfo
	switch logCfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if logCfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler).With("app", "quadra"))
}
