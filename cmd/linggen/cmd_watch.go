package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"linggen/internal/card"
	"linggen/internal/cardwatch"
)

var watchOutput string

// watchCmd re-renders a card's emblem whenever the card file changes
var watchCmd = &cobra.Command{
	Use:   "watch [card.yaml]",
	Short: "Re-render a card's emblem on every change",
	Long: `Watches a card file and writes the SVG emblem of its descriptor each
time the file is saved. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "SVG output file (default: card path with .svg)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := watchOutput
	if out == "" {
		out = strings.TrimSuffix(path, ".yaml") + ".svg"
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := func(_ context.Context, s card.Sheet) {
		_ = checkCard(s.Card, time.Now())
		if err := writeSVG(out, s.Scene); err != nil {
			logger.Error("failed to write emblem", zap.Error(err))
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s → %s\n", s.Card.DisplayName(), s.Card.Descriptor, s.Serial, out)
	}

	w, err := cardwatch.New(path, card.NewComposer(nil), handler)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Reload(ctx); err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("watch stopped", zap.Int("reloads", w.GetStats().Reloads))
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
