// sysdash: host metrics endpoint and live polling dashboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/vesaa/sysdash/internal/collector"
	"github.com/vesaa/sysdash/internal/config"
	"github.com/vesaa/sysdash/internal/dashboard"
	"github.com/vesaa/sysdash/internal/logger"
	"github.com/vesaa/sysdash/internal/poller"
	"github.com/vesaa/sysdash/internal/server"
	"go.uber.org/zap"
)

const version = "v0.1.0"

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

func main() {
	root := &cobra.Command{
		Use:   "sysdash",
		Short: "sysdash — host metrics endpoint and live dashboard",
		Long: `sysdash samples CPU load, memory, disk usage and temperature on demand
and serves them at GET /api/metrics. The watch command polls that endpoint
and keeps a rolling history for charting.`,
		SilenceUsage: true,
	}

	// ── server subcommand ─────────────────────────────────────────────────────
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Serve GET /api/metrics and the dashboard shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if host, _ := cmd.Flags().GetString("host"); host != "" {
				cfg.ServerHost = host
			}
			if port, _ := cmd.Flags().GetInt("port"); port != 0 {
				cfg.ServerPort = port
			}

			log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return runServer(cfg, log)
		},
	}
	serverCmd.Flags().String("host", "", "Listen host (overrides server_host)")
	serverCmd.Flags().Int("port", 0, "Listen port (overrides server_port)")

	// ── watch subcommand ──────────────────────────────────────────────────────
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll a sysdash server and render live metrics in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if url, _ := cmd.Flags().GetString("url"); url != "" {
				cfg.PollURL = url
			}
			if d, _ := cmd.Flags().GetDuration("interval"); d > 0 {
				cfg.PollIntervalMS = int(d / time.Millisecond)
			}
			if n, _ := cmd.Flags().GetInt("history"); n > 0 {
				cfg.HistorySize = n
			}
			clear, _ := cmd.Flags().GetBool("clear")

			log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return runWatch(cfg, log, clear)
		},
	}
	watchCmd.Flags().String("url", "", "Metrics endpoint, e.g. http://nas.local:3001/api/metrics")
	watchCmd.Flags().Duration("interval", 0, "Poll interval (overrides poll_interval_ms)")
	watchCmd.Flags().Int("history", 0, "Number of readings to keep (overrides history_size)")
	watchCmd.Flags().Bool("clear", true, "Clear the screen before each redraw")

	// ── version subcommand ────────────────────────────────────────────────────
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print sysdash version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sysdash %s\n", version)
		},
	}

	root.AddCommand(serverCmd, watchCmd, versionCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cfg *config.Config, log *zap.Logger) error {
	provider := collector.NewHostProvider(cfg.CPUWindow(), log.Named("provider"))
	api := server.NewAPI(collector.NewSampler(provider, log.Named("sampler")), provider, log.Named("api"))

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{Addr: cfg.Addr(), Handler: server.NewEngine(api, log.Named("http"))}

	info := provider.Describe(context.Background())
	log.Info("metrics API listening",
		zap.String("addr", cfg.Addr()),
		zap.String("hostname", info.Hostname),
		zap.String("os", info.OS),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-quit:
		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func runWatch(cfg *config.Config, log *zap.Logger, clear bool) error {
	client := poller.NewClient(cfg.PollURL, cfg.PollTimeout())
	p := poller.New(client,
		poller.WithInterval(cfg.PollInterval()),
		poller.WithHistorySize(cfg.HistorySize),
		poller.WithLogger(log.Named("poller")),
		poller.WithUpdateHandler(func(v poller.View) {
			if clear {
				fmt.Print(clearScreen)
			}
			fmt.Println(dashboard.Render(v))
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Debug("watching", zap.String("url", cfg.PollURL), zap.Duration("interval", cfg.PollInterval()))
	if clear {
		fmt.Print(clearScreen)
	}
	fmt.Println(dashboard.Render(p.View()))
	return p.Run(ctx)
}
