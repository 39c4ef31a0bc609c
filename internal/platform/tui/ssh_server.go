package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/arcane-flight/internal/core"
	"github.com/vovakirdan/arcane-flight/internal/metrics"
	"github.com/vovakirdan/arcane-flight/internal/ratelimit"
	"github.com/vovakirdan/arcane-flight/internal/registry"
	"github.com/vovakirdan/arcane-flight/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// GameID is the registered game every session plays.
	GameID string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate per session.
	TickRate int

	// RateLimit throttles new connections per client IP.
	RateLimit ratelimit.Config
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/scores.db",
		GameID:      "arcane",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		RateLimit:   ratelimit.DefaultConfig,
	}
}

// SSHServer wraps a Wish SSH server that hosts one game per session.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	limiter *ratelimit.IPRateLimiter
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server. A scores database that cannot be
// opened is logged and play continues without persistence.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcane-ssh",
		})
	}
	if !registry.Exists(cfg.GameID) {
		return nil, fmt.Errorf("unknown game %q", cfg.GameID)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		limiter: ratelimit.New(cfg.RateLimit),
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.close()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.close()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// The last middleware runs first.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.requirePTY,
			srv.sessionMetrics,
			srv.loggingMiddleware,
			srv.rateLimit,
		),
	)
	if err != nil {
		srv.close()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	game, err := registry.Create(s.config.GameID)
	if err != nil {
		s.logger.Error("cannot create game", "error", err)
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	var store Store
	if s.store != nil {
		store = s.store
	}
	model := NewModel(game, store, cfg, WithLogger(s.logger.With("user", sess.User())))

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// requirePTY turns away sessions without a terminal.
func (s *SSHServer) requirePTY(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if _, _, ok := sess.Pty(); !ok {
			metrics.RecordRejected("no_pty")
			s.logger.Warn("no PTY requested", "user", sess.User())
			wish.Fatalln(sess, "Arcane Flight needs an interactive terminal: ssh -t")
			return
		}
		next(sess)
	}
}

func (s *SSHServer) sessionMetrics(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		metrics.SessionOpened()
		defer metrics.SessionClosed()
		next(sess)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// rateLimit refuses clients that reconnect faster than the configured rate.
func (s *SSHServer) rateLimit(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		ip := remoteIP(sess.RemoteAddr())
		if !s.limiter.Allow(ip) {
			metrics.RecordRejected("rate_limit")
			s.logger.Warn("rate limited", "remote", ip)
			wish.Fatalln(sess, "Too many connections, try again shortly.")
			return
		}
		next(sess)
	}
}

func remoteIP(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

// ListenAndServe runs the SSH server until ctx is cancelled, then shuts it down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "game", s.config.GameID)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.close()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.close()
	return err
}

func (s *SSHServer) close() {
	s.limiter.Stop()
	s.logger.Info("connection limiter", s.limiter.Summary()...)
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
