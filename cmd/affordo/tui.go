package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/affordo/internal/calculation"
	"github.com/rgehrsitz/affordo/internal/logging"
	"github.com/rgehrsitz/affordo/internal/tui"
)

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [input-file]",
		Short: "Explore scenarios and the affordability grid interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			// stderr belongs to the terminal UI, so logs only go to a file
			var logger calculation.Logger = calculation.NopLogger{}
			if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
				level := "info"
				if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
					level = "debug"
				}
				zl, err := logging.NewFile(level, logFile)
				if err != nil {
					return err
				}
				defer zl.Sync() //nolint:errcheck
				zl.Info("Starting TUI", zap.String("config", path))
				logger = zl.Sugar()
			}

			p := tea.NewProgram(
				tui.NewModel(path, logger),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("log-file", "", "Write JSON logs to this file while the TUI runs")
	return cmd
}
