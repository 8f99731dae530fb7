// Package document owns the lifecycle of the one currently active PDF.
package document

import (
	"fmt"
	"os"
	"strings"
)

// MaxUploadBytes mirrors the service's advertised size ceiling.
const MaxUploadBytes = 50 * 1024 * 1024

// Status tracks the client-side mirror of the ingest call's outcome.
type Status int

const (
	StatusUnsubmitted Status = iota
	StatusIngesting
	StatusReady
	StatusFailed
)

// Handle represents the single document currently loaded. At most one handle
// is active at a time; the monotonic ID keys stale-result suppression when a
// second selection supersedes an in-flight ingestion.
type Handle struct {
	ID          int64
	Name        string
	Content     []byte
	Status      Status
	FailReason  string
	previewPath string
	Preview     string

	submitted bool
}

// Manager creates, replaces, and tears down document handles.
type Manager struct {
	active *Handle
	nextID int64
}

func NewManager() *Manager {
	return &Manager{}
}

// Active returns the current handle, or nil when no document is loaded.
func (m *Manager) Active() *Handle {
	return m.active
}

// IsActive reports whether the given handle ID still identifies the active
// document. Results arriving for a superseded handle must be discarded.
func (m *Manager) IsActive(id int64) bool {
	return m.active != nil && m.active.ID == id
}

// Select adopts a new document, superseding (not queueing behind) any previous
// handle. The previous handle's preview file is released first. The new handle
// starts Unsubmitted; the caller triggers ingestion exactly once via
// MarkSubmitted. Preview text extraction is best effort: a scanned PDF with no
// text layer still produces a usable handle.
func (m *Manager) Select(content []byte, name string) (*Handle, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("document %q is empty", name)
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return nil, fmt.Errorf("only PDF files are supported, got %q", name)
	}
	if len(content) > MaxUploadBytes {
		return nil, fmt.Errorf("document %q exceeds the 50MB limit", name)
	}
	m.release()

	m.nextID++
	handle := &Handle{
		ID:      m.nextID,
		Name:    name,
		Content: content,
		Status:  StatusUnsubmitted,
	}
	path, err := writePreviewFile(content)
	if err != nil {
		return nil, fmt.Errorf("failed to stage document preview: %w", err)
	}
	handle.previewPath = path
	if text, err := ExtractText(content); err == nil {
		handle.Preview = text
	}
	m.active = handle
	return handle, nil
}

// MarkSubmitted flips the handle into Ingesting and returns true exactly once.
// Re-entrant triggering of the same handle is suppressed.
func (m *Manager) MarkSubmitted(h *Handle) bool {
	if h == nil || h.submitted {
		return false
	}
	h.submitted = true
	h.Status = StatusIngesting
	return true
}

// SetReady records a successful ingestion for the given handle ID. Stale
// results are ignored.
func (m *Manager) SetReady(id int64) bool {
	if !m.IsActive(id) {
		return false
	}
	m.active.Status = StatusReady
	return true
}

// SetFailed records a failed ingestion for the given handle ID. Stale results
// are ignored.
func (m *Manager) SetFailed(id int64, reason string) bool {
	if !m.IsActive(id) {
		return false
	}
	m.active.Status = StatusFailed
	m.active.FailReason = reason
	return true
}

// Replace releases the active handle's preview file and clears the handle,
// returning the session to its document-selection state. Resetting the
// conversation log is the caller's responsibility.
func (m *Manager) Replace() {
	m.release()
}

// Close releases any held resources at session teardown.
func (m *Manager) Close() {
	m.release()
}

// PreviewPath exposes the staged preview file for the active handle.
func (h *Handle) PreviewPath() string {
	return h.previewPath
}

func (m *Manager) release() {
	if m.active == nil {
		return
	}
	if m.active.previewPath != "" {
		os.Remove(m.active.previewPath)
	}
	m.active = nil
}

func writePreviewFile(content []byte) (string, error) {
	f, err := os.CreateTemp("", "insightpdf-*.pdf")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
