package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Shaunish123/Insight-PDF-RAG/internal/api"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/conversation"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/document"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/gate"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/layout"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/theme"
)

// Config wires runtime collaborators into the TUI program.
type Config struct {
	ServerURL string
	API       *api.Client
	Theme     *theme.Store
	Logger    *zap.Logger
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	pathInput := textinput.New()
	pathInput.Placeholder = "Path to a PDF, e.g. ~/papers/attention.pdf"
	pathInput.CharLimit = 512
	pathInput.Width = 60

	chatInput := textinput.New()
	chatInput.Placeholder = "Ask a question..."
	chatInput.CharLimit = 500
	chatInput.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	docView := viewport.New(40, 20)
	docView.MouseWheelEnabled = true
	chatView := viewport.New(40, 20)
	chatView.MouseWheelEnabled = true

	mode := theme.Dark
	if config.Theme != nil {
		mode = config.Theme.Load()
	}

	m := &model{
		config:    config,
		gate:      gate.New(config.ServerURL),
		log:       conversation.NewLog(),
		docs:      document.NewManager(),
		split:     layout.NewSplitter(),
		jobs:      newJobBus(config.Logger),
		pathInput: pathInput,
		chatInput: chatInput,
		spinner:   spin,
		docView:   docView,
		chatView:  chatView,
		themeMode: mode,
		styles:    newStyles(mode),
		width:     100,
		height:    30,
		chatDirty: true,
	}
	if m.gate.Available() {
		m.stage = stageLanding
		m.pathInput.Focus()
	} else {
		m.stage = stageGate
	}
	return m
}

type model struct {
	config Config
	stage  stage

	gate  *gate.Gate
	log   *conversation.Log
	docs  *document.Manager
	split *layout.Splitter
	jobs  *jobBus

	pathInput textinput.Model
	chatInput textinput.Model
	spinner   spinner.Model
	docView   viewport.Model
	chatView  viewport.Model

	themeMode theme.Mode
	styles    styleSet

	width  int
	height int

	uploading    bool
	thinking     bool
	toastVisible bool
	toastShown   bool
	aboutVisible bool
	gateDots     string

	infoMessage  string
	errorMessage string
	chatDirty    bool
}

func (m *model) Init() tea.Cmd {
	if m.stage == stageGate {
		// Probe immediately, then settle into the 3-second cadence. The
		// elapsed and dot timers run on their own chains.
		return tea.Batch(
			textinput.Blink,
			m.spinner.Tick,
			m.jobs.Start(jobKindHealth, healthProbeJob(m.config.API)),
			pollTickCmd(),
			elapsedTickCmd(),
			dotTickCmd(),
		)
	}
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.stage == stageGate || m.uploading || m.thinking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			if m.thinking || m.uploading {
				m.markChatDirty()
			}
			return m, cmd
		}
		return m, nil
	case pollTickMsg:
		// Late ticks after the terminal transition are no-ops.
		if m.gate.Available() {
			return m, nil
		}
		return m, tea.Batch(m.jobs.Start(jobKindHealth, healthProbeJob(m.config.API)), pollTickCmd())
	case elapsedTickMsg:
		if m.gate.Available() {
			return m, nil
		}
		m.gate.TickElapsed()
		return m, elapsedTickCmd()
	case dotTickMsg:
		if m.stage != stageGate {
			return m, nil
		}
		if len(m.gateDots) >= 3 {
			m.gateDots = ""
		} else {
			m.gateDots += "."
		}
		return m, dotTickCmd()
	case toastTickMsg:
		m.toastVisible = false
		return m, nil
	case healthResultMsg:
		return m.handleHealthResult(msg)
	case ingestResultMsg:
		return m.handleIngestResult(msg)
	case answerResultMsg:
		return m.handleAnswerResult(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		return m, nil
	}
	return m, nil
}

func (m *model) handleHealthResult(msg healthResultMsg) (tea.Model, tea.Cmd) {
	if m.gate.Available() {
		return m, nil
	}
	became := m.gate.Observe(msg.ready)
	if !became {
		m.config.Logger.Info("backend not ready",
			zap.Int("attempts", m.gate.Attempts()),
			zap.Error(msg.err),
		)
		return m, nil
	}
	m.config.Logger.Info("backend ready", zap.Int("attempts", m.gate.Attempts()))
	m.stage = stageLanding
	m.pathInput.Focus()
	m.infoMessage = ""
	return m, textinput.Blink
}

func (m *model) handleIngestResult(msg ingestResultMsg) (tea.Model, tea.Cmd) {
	if !m.docs.IsActive(msg.docID) {
		// A superseded upload resolved late; discard it.
		m.config.Logger.Info("discarding stale ingest result", zap.Int64("doc_id", msg.docID))
		return m, nil
	}
	m.uploading = false
	if msg.err != nil {
		m.docs.SetFailed(msg.docID, msg.err.Error())
		m.log.AppendAssistant(ingestFailureMessage(msg.err))
	} else {
		m.docs.SetReady(msg.docID)
		m.log.AppendAssistant(fmt.Sprintf("✅ %s processed! I am ready.", msg.name))
	}
	m.markChatDirty()
	return m, nil
}

func (m *model) handleAnswerResult(msg answerResultMsg) (tea.Model, tea.Cmd) {
	if !m.docs.IsActive(msg.docID) {
		m.config.Logger.Info("discarding stale answer", zap.Int64("doc_id", msg.docID))
		return m, nil
	}
	m.thinking = false
	if msg.err != nil {
		m.log.FailAsk(chatFailureMessage(msg.err))
	} else {
		m.log.FinishAsk(msg.answer)
	}
	m.markChatDirty()
	return m, nil
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.stage {
	case stageGate:
		return m, nil
	case stageLanding:
		return m.handleLandingKey(key)
	case stageWorkspace:
		return m.handleWorkspaceKey(key)
	default:
		return m, nil
	}
}

func (m *model) handleLandingKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(key)
	if key.Type != tea.KeyEnter {
		return m, cmd
	}
	path := strings.TrimSpace(m.pathInput.Value())
	if path == "" {
		m.errorMessage = "Enter the path to a PDF file."
		return m, cmd
	}
	return m, tea.Batch(cmd, m.selectDocument(path))
}

// selectDocument loads the file, adopts it as the active handle, re-seeds the
// conversation, and triggers ingestion exactly once.
func (m *model) selectDocument(path string) tea.Cmd {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		m.errorMessage = fmt.Sprintf("Could not read %s: %v", path, err)
		return nil
	}
	handle, err := m.docs.Select(content, filepath.Base(path))
	if err != nil {
		m.errorMessage = err.Error()
		return nil
	}

	m.errorMessage = ""
	m.pathInput.SetValue("")
	m.pathInput.Blur()
	m.stage = stageWorkspace
	m.split.Reset()
	m.log.Seed()
	m.thinking = false
	m.chatInput.SetValue("")
	m.chatInput.Focus()
	m.refreshDocView()
	m.markChatDirty()
	m.applyLayout()

	cmds := []tea.Cmd{textinput.Blink}
	if !m.toastShown {
		m.toastShown = true
		m.toastVisible = true
		cmds = append(cmds, toastTickCmd())
	}
	if m.docs.MarkSubmitted(handle) {
		m.uploading = true
		m.config.Logger.Info("ingesting document",
			zap.Int64("doc_id", handle.ID),
			zap.String("name", handle.Name),
		)
		cmds = append(cmds,
			m.spinner.Tick,
			m.jobs.Start(jobKindIngest, ingestJob(m.config.API, handle.ID, handle.Name, handle.Content)),
		)
	}
	return tea.Batch(cmds...)
}

func (m *model) handleWorkspaceKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		return m, m.submitQuestion()
	case "ctrl+left":
		m.split.Nudge(layout.ShrinkDocument, m.docs.Active() != nil)
		m.applyLayout()
		return m, nil
	case "ctrl+right":
		m.split.Nudge(layout.GrowDocument, m.docs.Active() != nil)
		m.applyLayout()
		return m, nil
	case "ctrl+n":
		m.uploadNew()
		return m, textinput.Blink
	case "ctrl+t":
		m.toggleTheme()
		return m, nil
	case "f1":
		m.aboutVisible = !m.aboutVisible
		return m, nil
	case "esc":
		switch {
		case m.aboutVisible:
			m.aboutVisible = false
		case m.toastVisible:
			m.toastVisible = false
		default:
			m.chatInput.SetValue("")
		}
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(key)
		return m, cmd
	}
	if m.uploading || m.thinking {
		// Input is disabled while a call is in flight, matching the
		// manager-level single-flight guard.
		return m, nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(key)
	return m, cmd
}

func (m *model) submitQuestion() tea.Cmd {
	if m.uploading {
		m.infoMessage = "Analyzing document, one moment..."
		return nil
	}
	handle := m.docs.Active()
	if handle == nil {
		return nil
	}
	ask, ok := m.log.BeginAsk(m.chatInput.Value())
	if !ok {
		// Blank question or an answer still in flight: the log is untouched.
		return nil
	}
	m.chatInput.SetValue("")
	m.thinking = true
	m.infoMessage = ""
	m.markChatDirty()
	return tea.Batch(
		m.spinner.Tick,
		m.jobs.Start(jobKindAsk, askJob(m.config.API, handle.ID, ask)),
	)
}

// uploadNew releases the active document and returns to the landing state.
// The conversation re-seeds when the next document is selected.
func (m *model) uploadNew() {
	m.docs.Replace()
	m.uploading = false
	m.thinking = false
	m.aboutVisible = false
	m.toastVisible = false
	m.stage = stageLanding
	m.chatInput.Blur()
	m.chatInput.SetValue("")
	m.pathInput.SetValue("")
	m.pathInput.Focus()
	m.errorMessage = ""
	m.infoMessage = ""
}

func (m *model) toggleTheme() {
	m.themeMode = theme.Toggle(m.themeMode)
	m.styles = newStyles(m.themeMode)
	if m.config.Theme != nil {
		if err := m.config.Theme.Save(m.themeMode); err != nil {
			m.config.Logger.Warn("failed to persist theme", zap.Error(err))
		}
	}
	m.refreshDocView()
	m.markChatDirty()
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.stage != stageWorkspace {
		return m, nil
	}
	docWidth, _ := m.paneWidths()
	switch msg.Type {
	case tea.MouseLeft:
		if abs(msg.X-docWidth) <= 1 {
			m.split.BeginDrag()
		}
		return m, nil
	case tea.MouseMotion:
		if m.split.Dragging() {
			m.split.PointerMove(msg.X, m.width)
			m.applyLayout()
		}
		return m, nil
	case tea.MouseRelease:
		m.split.EndDrag()
		return m, nil
	case tea.MouseWheelUp, tea.MouseWheelDown:
		var cmd tea.Cmd
		if msg.X < docWidth {
			m.docView, cmd = m.docView.Update(msg)
		} else {
			m.chatView, cmd = m.chatView.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// paneWidths splits the window between the document and chat panes according
// to the layout ratio.
func (m *model) paneWidths() (docWidth, chatWidth int) {
	usable := m.width - dividerWidth
	if usable < 2*minPaneWidth {
		usable = 2 * minPaneWidth
	}
	docWidth = usable * m.split.Ratio() / 100
	if docWidth < minPaneWidth {
		docWidth = minPaneWidth
	}
	if docWidth > usable-minPaneWidth {
		docWidth = usable - minPaneWidth
	}
	chatWidth = usable - docWidth
	return docWidth, chatWidth
}

func (m *model) applyLayout() {
	docWidth, chatWidth := m.paneWidths()
	paneHeight := m.height - workspaceChromeHeight
	if paneHeight < 5 {
		paneHeight = 5
	}
	m.docView.Width = docWidth
	m.docView.Height = paneHeight
	m.chatView.Width = chatWidth
	// The chat pane reserves rows for the input and its help line.
	chatHeight := paneHeight - 3
	if chatHeight < 3 {
		chatHeight = 3
	}
	m.chatView.Height = chatHeight
	m.chatInput.Width = chatWidth - 4
	m.refreshDocView()
	m.markChatDirty()
}

func (m *model) markChatDirty() {
	m.chatDirty = true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
