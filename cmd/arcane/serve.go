package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcane-flight/internal/api"
	"github.com/vovakirdan/arcane-flight/internal/games/arcane"
	"github.com/vovakirdan/arcane-flight/internal/platform/tui"
	"github.com/vovakirdan/arcane-flight/internal/ratelimit"
	"github.com/vovakirdan/arcane-flight/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagHTTPAddr    string
	flagCORSOrigins string
	flagRate        float64
	flagBurst       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server where every connection flies its own run.
Scores are stored per-server (all users share the same leaderboard).

With --http, a read-only HTTP API is served next to it:
  GET /healthz               - liveness
  GET /metrics               - Prometheus metrics
  GET /api/games             - registered games
  GET /api/scores/{game}     - leaderboard (?character=, ?limit=)
  GET /api/stats             - totals for every game
  GET /api/stats/{game}      - totals and per-witch statistics

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcane serve                           # Listen on :23234 with auto-generated key
  arcane serve --ssh :2222               # Listen on port 2222
  arcane serve --http :8080              # Also serve the HTTP API
  arcane serve --rate 1 --burst 10       # Allow faster reconnects

Users can connect with:
  ssh -t localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (host:port), empty disables it")
	serveCmd.Flags().StringVar(&flagCORSOrigins, "cors-origin", "", "Comma-separated browser origins allowed by the API")
	serveCmd.Flags().Float64Var(&flagRate, "rate", ratelimit.DefaultConfig.PerSecond, "New connections per second allowed per IP")
	serveCmd.Flags().IntVar(&flagBurst, "burst", ratelimit.DefaultConfig.Burst, "Connection burst allowed per IP")
}

func runServe(_ *cobra.Command, _ []string) error {
	if _, err := arcane.LoadConfig(); err != nil {
		logger.Warn("using default config", "error", err)
	}

	limits := ratelimit.DefaultConfig
	limits.PerSecond = flagRate
	limits.Burst = flagBurst
	if limits.PerSecond <= 0 || limits.Burst <= 0 {
		return fmt.Errorf("--rate and --burst must be positive")
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.RateLimit = limits

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("arcane-ssh"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	running := 1
	go func() { errCh <- server.ListenAndServe(ctx) }()

	if flagHTTPAddr != "" {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			stop()
			<-errCh
			return fmt.Errorf("cannot open scores database for the API: %w", err)
		}
		defer store.Close()

		// Requests are cheaper than sessions; allow ten times as many.
		apiLimits := limits
		apiLimits.PerSecond *= 10
		apiLimits.Burst *= 10
		limiter := ratelimit.New(apiLimits)
		defer func() {
			limiter.Stop()
			logger.Info("API limiter", limiter.Summary()...)
		}()

		router := api.NewRouter(api.RouterConfig{
			Scores:      store,
			Limiter:     limiter,
			CORSOrigins: splitOrigins(flagCORSOrigins),
			Logger:      logger.WithPrefix("arcane-http"),
		})
		running++
		go func() { errCh <- api.ListenAndServe(ctx, flagHTTPAddr, router) }()
		logger.Info("HTTP API listening", "address", flagHTTPAddr)
	}

	fmt.Printf("Connect with: ssh -t localhost -p %s\n", portOf(flagSSHAddr))
	fmt.Println("Press Ctrl+C to stop")

	// The first failure stops everything.
	var firstErr error
	for i := 0; i < running; i++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}
	return firstErr
}

func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func portOf(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i+1:]
	}
	return addr
}
