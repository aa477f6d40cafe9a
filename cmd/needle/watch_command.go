package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/needle-flow/internal/config"
	"github.com/nguyentantai21042004/needle-flow/internal/processor"
	"github.com/nguyentantai21042004/needle-flow/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var analyze bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Convert new videos as they appear in the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(cfg *config.Config) error {
				log := ctx.loggerFor(cmd)
				if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
					return fmt.Errorf("create directory %s: %w", cfg.Paths.Input, err)
				}

				autoAnalyze := analyze || cfg.Watch.Analyze
				opts := processor.Options{AutoAnalyze: autoAnalyze}
				if autoAnalyze {
					prompt, err := cfg.ActivePrompt()
					if err != nil {
						return err
					}
					opts.Analyze = processor.AnalyzeOptions{SkipExisting: cfg.SkipExisting(), Prompt: prompt}
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				proc, err := ctx.newProcessor(runCtx, cmd, opts, autoAnalyze)
				if err != nil {
					return err
				}

				w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Watch.SettleDelay)
				if err != nil {
					return err
				}
				defer w.Stop()

				log.Info(runCtx, "Watching %s (output: %s, analyze: %v). Press Ctrl+C to stop", cfg.Paths.Input, cfg.Paths.Output, autoAnalyze)
				if err := w.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				log.Info(cmd.Context(), "Watcher stopped")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&analyze, "analyze", false, "Analyze each new MP3 right after conversion")
	return cmd
}
