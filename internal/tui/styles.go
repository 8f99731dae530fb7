package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Shaunish123/Insight-PDF-RAG/internal/theme"
)

type styleSet struct {
	header        lipgloss.Style
	tagline       lipgloss.Style
	sectionHeader lipgloss.Style
	helper        lipgloss.Style
	errorText     lipgloss.Style
	userLabel     lipgloss.Style
	aiLabel       lipgloss.Style
	divider       lipgloss.Style
	dividerActive lipgloss.Style
	statusBar     lipgloss.Style
	toast         lipgloss.Style
	heroBox       lipgloss.Style
	overlayBox    lipgloss.Style
	progressFill  lipgloss.Style
	progressEmpty lipgloss.Style
}

func newStyles(mode theme.Mode) styleSet {
	if mode == theme.Light {
		return styleSet{
			header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1d4ed8")),
			tagline:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6b7280")),
			sectionHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f2937")),
			helper:        lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
			errorText:     lipgloss.NewStyle().Foreground(lipgloss.Color("#b91c1c")),
			userLabel:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1d4ed8")),
			aiLabel:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c2410c")),
			divider:       lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")),
			dividerActive: lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb")),
			statusBar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Background(lipgloss.Color("#e5e7eb")).Padding(0, 1),
			toast:         lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#2563eb")).Padding(0, 2),
			heroBox:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#2563eb")).Padding(1, 3),
			overlayBox:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#2563eb")).Padding(1, 2),
			progressFill:  lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb")),
			progressEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")),
		}
	}
	return styleSet{
		header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa")),
		tagline:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#9ca3af")),
		sectionHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		helper:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		errorText:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		userLabel:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa")),
		aiLabel:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fb923c")),
		divider:       lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
		dividerActive: lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")),
		statusBar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1),
		toast:         lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#1d4ed8")).Padding(0, 2),
		heroBox:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#60a5fa")).Padding(1, 3),
		overlayBox:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2),
		progressFill:  lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")),
		progressEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
	}
}
