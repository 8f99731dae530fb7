package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Shaunish123/Insight-PDF-RAG/internal/api"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/conversation"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/gate"
)

func pollTickCmd() tea.Cmd {
	return tea.Tick(gate.PollInterval, func(time.Time) tea.Msg { return pollTickMsg{} })
}

func elapsedTickCmd() tea.Cmd {
	return tea.Tick(gate.ElapsedInterval, func(time.Time) tea.Msg { return elapsedTickMsg{} })
}

func dotTickCmd() tea.Cmd {
	return tea.Tick(dotInterval, func(time.Time) tea.Msg { return dotTickMsg{} })
}

func toastTickCmd() tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastTickMsg{} })
}

// healthProbeJob runs one readiness probe with its own timeout. This is the
// only remote call with a per-call deadline; ingest and chat surface failures
// through transport errors alone.
func healthProbeJob(client *api.Client) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, gate.ProbeTimeout)
		defer cancel()
		ready, err := client.Health(ctx)
		return healthResultMsg{ready: ready && err == nil, err: err}, err
	}
}

func ingestJob(client *api.Client, docID int64, name string, content []byte) jobRunner {
	payload := append([]byte(nil), content...)
	return func(parent context.Context) (tea.Msg, error) {
		err := client.Upload(parent, name, payload)
		return ingestResultMsg{docID: docID, name: name, err: err}, err
	}
}

func askJob(client *api.Client, docID int64, ask conversation.Ask) jobRunner {
	history := make([][2]string, len(ask.History))
	for i, turn := range ask.History {
		history[i] = [2]string(turn)
	}
	return func(parent context.Context) (tea.Msg, error) {
		answer, err := client.Chat(parent, ask.Question, history)
		return answerResultMsg{docID: docID, answer: answer, err: err}, err
	}
}

// ingestFailureMessage builds the advisory assistant message for a failed
// upload. It prefers the service's structured detail over the transport text.
func ingestFailureMessage(err error) string {
	reason := "Unknown error occurred"
	var statusErr *api.StatusError
	switch {
	case errors.As(err, &statusErr) && statusErr.Detail != "":
		reason = statusErr.Detail
	case err != nil:
		reason = err.Error()
	}
	return fmt.Sprintf("❌ Upload Failed: %s\n\nPlease check that:\n- File is a valid PDF\n- File size is under 50MB\n- Backend server is running", reason)
}

// chatFailureMessage classifies a failed question by HTTP status class and
// attaches the matching remediation hint. A missing status means the server
// was never reached.
func chatFailureMessage(err error) string {
	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) {
		return "❌ Connection Error: Cannot reach the server.\n\n🔌 Please check that the backend is running."
	}
	detail := statusErr.Error()
	switch {
	case statusErr.IsServerError():
		return fmt.Sprintf("❌ Error: %s\n\n⚠️ The server encountered an error. Please try again or upload a different PDF.", detail)
	case statusErr.IsClientError():
		return fmt.Sprintf("❌ Error: %s\n\n💡 Tip: Make sure you've uploaded a PDF first.", detail)
	default:
		return fmt.Sprintf("❌ Error: %s", detail)
	}
}
