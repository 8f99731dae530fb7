// Package gate decides when the remote service is ready to accept requests.
package gate

import (
	"net/url"
	"strings"
	"time"
)

const (
	// PollInterval is the cadence between health probes.
	PollInterval = 3 * time.Second
	// ProbeTimeout bounds each individual health probe.
	ProbeTimeout = 5 * time.Second
	// ElapsedInterval drives the observability-only elapsed counter.
	ElapsedInterval = time.Second
	// ExpectedWarmupSeconds sizes the progress bar on the waiting screen.
	ExpectedWarmupSeconds = 50
)

// State is the tri-state availability signal.
type State int

const (
	StateUnknown State = iota
	StateUnavailable
	StateAvailable
)

// Gate is the availability state machine. It holds no timers itself; the UI
// schedules probes on PollInterval and elapsed ticks on ElapsedInterval, and
// feeds results back through Observe. Once Available the gate is terminal:
// further observations and ticks are no-ops.
type Gate struct {
	state    State
	attempts int
	elapsed  int
	bypassed bool
}

// New builds a gate for the given service endpoint. Loopback endpoints skip
// the gate entirely; local backends have no cold start to wait out.
func New(serverURL string) *Gate {
	g := &Gate{}
	if isLoopback(serverURL) {
		g.state = StateAvailable
		g.bypassed = true
	}
	return g
}

// Observe records one probe outcome. A failed probe (timeout, transport error,
// or an explicit not-ready response, all treated identically) increments the
// attempt counter. The first ready observation returns true exactly once so
// the caller can unblock the UI; duplicates are suppressed.
func (g *Gate) Observe(ready bool) (became bool) {
	if g.state == StateAvailable {
		return false
	}
	if ready {
		g.state = StateAvailable
		return true
	}
	g.state = StateUnavailable
	g.attempts++
	return false
}

// TickElapsed advances the 1 Hz elapsed counter. It is independent of the poll
// cadence and keeps advancing while a probe is outstanding.
func (g *Gate) TickElapsed() {
	if g.state == StateAvailable {
		return
	}
	g.elapsed++
}

// State reports the current availability state.
func (g *Gate) State() State {
	return g.state
}

// Available reports whether the terminal state has been reached.
func (g *Gate) Available() bool {
	return g.state == StateAvailable
}

// Bypassed reports whether the gate was skipped for a loopback endpoint.
func (g *Gate) Bypassed() bool {
	return g.bypassed
}

// Attempts reports how many probes have failed so far.
func (g *Gate) Attempts() int {
	return g.attempts
}

// ElapsedSeconds reports the observability-only wait counter.
func (g *Gate) ElapsedSeconds() int {
	return g.elapsed
}

func isLoopback(serverURL string) bool {
	u, err := url.Parse(serverURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "" {
		// Tolerate bare host[:port] values without a scheme.
		host = serverURL
		if idx := strings.LastIndex(host, ":"); idx != -1 && !strings.Contains(host, "]") {
			host = host[:idx]
		}
	}
	switch strings.ToLower(host) {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
