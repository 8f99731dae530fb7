package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Shaunish123/Insight-PDF-RAG/internal/conversation"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/document"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/gate"
)

func (m *model) View() string {
	switch m.stage {
	case stageGate:
		return m.viewGate()
	case stageLanding:
		return m.viewLanding()
	case stageWorkspace:
		return m.viewWorkspace()
	default:
		return ""
	}
}

func (m *model) viewGate() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render(fmt.Sprintf("%s Waking Up the Server%s", m.spinner.View(), m.gateDots)))
	b.WriteRune('\n')
	b.WriteString(m.styles.helper.Render("The backend goes to sleep after a period of inactivity."))
	b.WriteRune('\n')
	b.WriteString(m.styles.helper.Render(fmt.Sprintf("This usually takes 30-50 seconds. Time elapsed: %ds", m.gate.ElapsedSeconds())))
	b.WriteRune('\n')
	b.WriteRune('\n')
	b.WriteString(m.progressBar())
	b.WriteRune('\n')
	b.WriteRune('\n')
	b.WriteString(m.styles.sectionHeader.Render(fmt.Sprintf("Health Checks %d", m.gate.Attempts())))
	b.WriteString(m.styles.helper.Render("  •  "))
	b.WriteString(m.styles.sectionHeader.Render(fmt.Sprintf("Waiting Time %ds", m.gate.ElapsedSeconds())))
	b.WriteRune('\n')
	b.WriteRune('\n')
	b.WriteString(m.styles.helper.Render("The session will unlock automatically once the server is ready."))
	return m.styles.heroBox.Render(b.String())
}

func (m *model) progressBar() string {
	width := 40
	filled := width * m.gate.ElapsedSeconds() / gate.ExpectedWarmupSeconds
	if filled > width {
		filled = width
	}
	return m.styles.progressFill.Render(strings.Repeat("█", filled)) +
		m.styles.progressEmpty.Render(strings.Repeat("░", width-filled))
}

func (m *model) viewLanding() string {
	var card strings.Builder
	card.WriteString(m.styles.header.Render("Welcome to InsightPDF"))
	card.WriteRune('\n')
	card.WriteString(m.styles.tagline.Render(appTagline))
	card.WriteRune('\n')
	card.WriteRune('\n')
	card.WriteString(m.styles.helper.Render("Upload your technical documents, research papers, or manuals."))
	card.WriteRune('\n')
	card.WriteString(m.styles.helper.Render("The AI will analyze them and answer your questions instantly."))
	card.WriteRune('\n')
	card.WriteRune('\n')
	card.WriteString(m.styles.sectionHeader.Render("Open a PDF"))
	card.WriteRune('\n')
	card.WriteString(m.pathInput.View())
	card.WriteRune('\n')
	card.WriteString(m.styles.helper.Render("PDF files up to 50MB. Press Enter to upload."))
	if m.errorMessage != "" {
		card.WriteRune('\n')
		card.WriteString(m.styles.errorText.Render(m.errorMessage))
	}
	return m.styles.heroBox.Render(card.String())
}

func (m *model) viewWorkspace() string {
	m.refreshChatIfDirty()

	parts := []string{m.headerBar()}
	if m.toastVisible {
		parts = append(parts, m.styles.toast.Render("💡 Quick Tip: Ctrl+←/→ resizes panels, or drag the divider. Esc dismisses."))
	}
	parts = append(parts, m.panesView(), m.statusBar())
	if m.aboutVisible {
		parts = append(parts, m.aboutView())
	}
	return strings.Join(parts, "\n")
}

func (m *model) headerBar() string {
	title := m.styles.header.Render("InsightPDF")
	name := ""
	if handle := m.docs.Active(); handle != nil {
		name = m.styles.helper.Render("  " + handle.Name + "  " + statusBadge(handle.Status))
	}
	return title + name
}

func statusBadge(status document.Status) string {
	switch status {
	case document.StatusIngesting:
		return "[analyzing]"
	case document.StatusReady:
		return "[ready]"
	case document.StatusFailed:
		return "[failed]"
	default:
		return "[pending]"
	}
}

func (m *model) panesView() string {
	divider := m.dividerView()
	chat := m.chatPane()
	doc := m.docView.View()
	return lipgloss.JoinHorizontal(lipgloss.Top, doc, divider, chat)
}

func (m *model) dividerView() string {
	height := m.docView.Height
	if height < 1 {
		height = 1
	}
	style := m.styles.divider
	if m.split.Dragging() {
		style = m.styles.dividerActive
	}
	column := make([]string, height)
	for i := range column {
		column[i] = style.Render("│")
	}
	return strings.Join(column, "\n")
}

func (m *model) chatPane() string {
	var b strings.Builder
	b.WriteString(m.chatView.View())
	b.WriteRune('\n')
	b.WriteString(m.chatInput.View())
	b.WriteRune('\n')
	helper := "Enter: send • Ctrl+N: new document • Ctrl+T: theme • F1: about"
	if m.infoMessage != "" {
		helper = m.infoMessage
	}
	b.WriteString(m.styles.helper.Render(helper))
	return b.String()
}

func (m *model) statusBar() string {
	stats := []string{
		fmt.Sprintf("Split %d%%", m.split.Ratio()),
		fmt.Sprintf("Messages %d", m.log.Len()),
	}
	switch {
	case m.uploading:
		stats = append(stats, "Analyzing Document…")
	case m.thinking:
		stats = append(stats, "Thinking…")
	default:
		stats = append(stats, "Idle")
	}
	stats = append(stats, fmt.Sprintf("Theme %s", m.themeMode))
	return m.styles.statusBar.Render(strings.Join(stats, "  •  "))
}

func (m *model) aboutView() string {
	lines := []string{
		m.styles.sectionHeader.Render("About InsightPDF"),
		m.styles.helper.Render("An AI-powered document assistant: upload a PDF and ask questions"),
		m.styles.helper.Render("about its contents in natural language."),
		m.styles.helper.Render("The heavy lifting (indexing and answering) happens on the backend."),
		m.styles.helper.Render("Press F1 or Esc to close."),
	}
	return m.styles.overlayBox.Render(strings.Join(lines, "\n"))
}

// refreshDocView re-renders the document pane from the active handle.
func (m *model) refreshDocView() {
	handle := m.docs.Active()
	if handle == nil {
		m.docView.SetContent("")
		return
	}
	wrap := m.docView.Width - 2
	if wrap < 20 {
		wrap = 20
	}
	var b strings.Builder
	b.WriteString(m.styles.sectionHeader.Render(handle.Name))
	b.WriteRune('\n')
	b.WriteRune('\n')
	if handle.Preview == "" {
		b.WriteString(m.styles.helper.Render("No text layer found in this PDF. The conversation still works;\nanswers come from the server-side index."))
	} else {
		b.WriteString(wordwrap.String(handle.Preview, wrap))
	}
	m.docView.SetContent(b.String())
	m.docView.SetYOffset(0)
}

func (m *model) refreshChatIfDirty() {
	if !m.chatDirty {
		return
	}
	m.chatDirty = false
	wrap := m.chatView.Width - 4
	if wrap < 20 {
		wrap = 20
	}
	var b strings.Builder
	for i, msg := range m.log.Messages() {
		if i > 0 {
			b.WriteRune('\n')
		}
		label := m.styles.aiLabel.Render("InsightPDF")
		if msg.Role == conversation.RoleUser {
			label = m.styles.userLabel.Render("You")
		}
		b.WriteString(label)
		b.WriteRune('\n')
		b.WriteString(indentMultiline(wordwrap.String(msg.Content, wrap), "  "))
		b.WriteRune('\n')
	}
	switch {
	case m.uploading:
		b.WriteRune('\n')
		b.WriteString(m.styles.helper.Render(fmt.Sprintf("%s Analyzing Document…", m.spinner.View())))
	case m.thinking:
		b.WriteRune('\n')
		b.WriteString(m.styles.helper.Render(fmt.Sprintf("%s Thinking…", m.spinner.View())))
	}
	m.chatView.SetContent(b.String())
	m.chatView.GotoBottom()
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
