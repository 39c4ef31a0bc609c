package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcane-flight/internal/ratelimit"
)

func TestSSHServerCloseLogsLimiter(t *testing.T) {
	var buf bytes.Buffer
	srv := &SSHServer{
		limiter: ratelimit.New(ratelimit.Config{PerSecond: 1, Burst: 1}),
		logger:  log.New(&buf),
	}
	srv.limiter.Allow("10.0.0.1")
	srv.limiter.Allow("10.0.0.1")

	srv.close()
	out := buf.String()
	for _, want := range []string{"connection limiter", "allowed=1", "rejected=1", "clients=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}

	// A second close must not panic on the stopped limiter.
	srv.close()
}
