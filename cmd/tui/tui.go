// Package tui launches the interactive spending form
package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mozzadell/cc-optimizer/cmd/root"
	"github.com/mozzadell/cc-optimizer/internal/logging"
	"github.com/mozzadell/cc-optimizer/internal/models"
	"github.com/mozzadell/cc-optimizer/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	annual  bool
	maxFee  float64
	noFee   bool
	logFile string
)

// Cmd represents the tui command
var Cmd = &cobra.Command{
	Use:   "tui",
	Short: "Enter spending interactively and build a custom portfolio",
	Long: `Open a terminal form with one field per spending category. Submit to see
the ranked cards, then press space on cards to total them as your own portfolio.`,
	RunE: tuiFunc,
}

func init() {
	Cmd.Flags().BoolVar(&annual, "annual", false, "Amounts are annual instead of monthly")
	Cmd.Flags().Float64Var(&maxFee, "max-fee", 0, "Highest acceptable annual fee")
	Cmd.Flags().BoolVar(&noFee, "no-fee", false, "Only consider cards without an annual fee")
	Cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while the form is open")
}

func tuiFunc(cmd *cobra.Command, args []string) error {
	c := root.AppContainer
	if c == nil {
		return fmt.Errorf("application not initialized")
	}

	// Log lines on the terminal would tear the alternate screen
	var sink io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, models.PermissionReportFile) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		sink = f
	}
	if adapter, ok := c.GetLogger().(*logging.LogrusAdapter); ok {
		adapter.SetOutput(sink)
	}

	opts := models.OptimizeOptions{IsAnnual: annual, NoFeeOnly: noFee}
	if cmd.Flags().Changed("max-fee") {
		fee := maxFee
		opts.MaxAnnualFee = &fee
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	model := tui.New(tui.Config{
		Context:   ctx,
		Submitter: c.GetOptimizer(),
		Options:   opts,
		Generator: c.GetGenerator(),
		TopN:      c.GetConfig().Output.TopN,
		Logger:    c.GetLogger(),
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("interactive form failed: %w", err)
	}
	return nil
}
