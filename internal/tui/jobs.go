package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type jobKind string

const (
	jobKindHealth jobKind = "health"
	jobKindIngest jobKind = "ingest"
	jobKindAsk    jobKind = "ask"
)

type jobRunner func(context.Context) (tea.Msg, error)

// jobBus runs async work off the update loop and logs job lifecycle. Each job
// delivers exactly one tea.Msg back to the program.
type jobBus struct {
	counter int64
	logger  *zap.Logger
}

func newJobBus(logger *zap.Logger) *jobBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &jobBus{logger: logger}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	return func() tea.Msg {
		payload, err := runner(context.Background())
		b.logger.Info("job finished",
			zap.String("job", id),
			zap.String("kind", string(kind)),
			zap.Duration("duration", time.Since(started)),
			zap.Error(err),
		)
		return payload
	}
}
