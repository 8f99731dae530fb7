package tui

import "time"

type stage int

const (
	stageGate stage = iota
	stageLanding
	stageWorkspace
)

const appTagline = "Chat with your documents."

const (
	minPaneWidth = 24
	dividerWidth = 1
	// workspaceChromeHeight covers the header bar, status line, and margins.
	workspaceChromeHeight = 6
	// toastDuration is how long the quick-tip stays before auto-dismissing.
	toastDuration = 5 * time.Second
	dotInterval   = 500 * time.Millisecond
)

// Tick messages. Each timer is its own chain; the gate's poll cadence and
// elapsed counter must never share a tick.
type (
	pollTickMsg    struct{}
	elapsedTickMsg struct{}
	dotTickMsg     struct{}
	toastTickMsg   struct{}
)

// healthResultMsg reports one readiness probe. A transport error and an
// explicit not-ready response are equivalent.
type healthResultMsg struct {
	ready bool
	err   error
}

// ingestResultMsg reports the outcome of one upload, keyed by handle ID so
// results for a superseded document are discarded.
type ingestResultMsg struct {
	docID int64
	name  string
	err   error
}

// answerResultMsg reports one chat exchange, keyed like ingestResultMsg.
type answerResultMsg struct {
	docID  int64
	answer string
	err    error
}
