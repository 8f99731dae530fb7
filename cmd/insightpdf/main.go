package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Shaunish123/Insight-PDF-RAG/internal/api"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/config"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/logging"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/theme"
	"github.com/Shaunish123/Insight-PDF-RAG/internal/tui"
)

func main() {
	cfg := config.Load()
	serverURL := flag.String("server", cfg.ServerURL, "base URL of the InsightPDF backend")
	themePath := flag.String("theme", cfg.ThemePath, "path to the persisted theme preference")
	logPath := flag.String("log", cfg.LogPath, "log file path (empty disables logging)")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	logger := logging.New(*logPath)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting insightpdf", zap.String("server", *serverURL))

	client := api.New(api.Config{
		BaseURL: *serverURL,
		Logger:  logger,
	})

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			ServerURL: *serverURL,
			API:       client,
			Theme:     theme.NewStore(*themePath),
			Logger:    logger,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}
