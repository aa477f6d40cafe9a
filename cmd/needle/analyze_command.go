package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/needle-flow/internal/config"
	"github.com/nguyentantai21042004/needle-flow/internal/processor"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var noSkip bool
	var promptFile string
	var model string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze every MP3 with Gemini, reusing stored analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(cfg *config.Config) error {
				if promptFile != "" {
					cfg.Gemini.PromptFile = promptFile
				}
				if model != "" {
					cfg.Gemini.Model = model
				}
				prompt, err := cfg.ActivePrompt()
				if err != nil {
					return err
				}

				proc, err := ctx.newProcessor(cmd.Context(), cmd, processor.Options{}, true)
				if err != nil {
					return err
				}
				report, err := proc.AnalyzeAll(cmd.Context(), processor.AnalyzeOptions{
					SkipExisting: cfg.SkipExisting() && !noSkip,
					Prompt:       prompt,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(report.Outcomes) == 0 {
					fmt.Fprintf(out, "No audio files in %s\n", cfg.AudioDir())
					return nil
				}
				printOutcomes(out, report, shouldColorize(out))

				if failed := report.Count(processor.OutcomeFailed); failed > 0 {
					return fmt.Errorf("%d of %d analyses failed", failed, len(report.Outcomes))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&noSkip, "no-skip", false, "Re-analyze files that already have a stored analysis")
	cmd.Flags().StringVar(&promptFile, "prompt-file", "", "Read the analysis prompt from this file")
	cmd.Flags().StringVar(&model, "model", "", "Override gemini.model")
	return cmd
}

func printOutcomes(out io.Writer, report processor.AnalyzeReport, colorize bool) {
	for _, o := range report.Outcomes {
		name := filepath.Base(o.AudioFile)
		printSection(out, fmt.Sprintf("%s (%s)", name, o.Status), outcomeKind(o.Status), colorize)
		if o.Status == processor.OutcomeFailed {
			fmt.Fprintln(out, renderStatusLine("error", statusError, o.Err.Error(), colorize))
			fmt.Fprintln(out)
			continue
		}
		fmt.Fprintln(out, strings.TrimRight(o.Content, "\n"))
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d analyzed, %d skipped, %d failed\n",
		report.Count(processor.OutcomeAnalyzed),
		report.Count(processor.OutcomeSkipped),
		report.Count(processor.OutcomeFailed))
}
