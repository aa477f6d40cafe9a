package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/needle-flow/internal/config"
	"github.com/nguyentantai21042004/needle-flow/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools, credentials and directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ok := runDoctor(out, cfg, shouldColorize(out)); !ok {
				return fmt.Errorf("doctor found problems")
			}
			return nil
		},
	}
}

// runDoctor prints the report and reports whether every required check passed.
func runDoctor(out io.Writer, cfg *config.Config, colorize bool) bool {
	healthy := true

	printSection(out, "Dependencies", statusInfo, colorize)
	statuses := deps.CheckBinaries(deps.MediaRequirements(cfg.FFmpeg.BinaryPath, cfg.FFmpeg.ProbePath))
	for _, s := range statuses {
		fmt.Fprintln(out, renderDependency(s, colorize))
	}
	if len(deps.Missing(statuses)) > 0 {
		healthy = false
	}

	fmt.Fprintln(out)
	printSection(out, "Gemini", statusInfo, colorize)
	fmt.Fprintln(out, renderStatusLine("Backend", statusInfo, cfg.Gemini.Backend, colorize))
	fmt.Fprintln(out, renderStatusLine("Model", statusInfo, cfg.Gemini.Model, colorize))
	if err := cfg.ValidateCredentials(); err != nil {
		fmt.Fprintln(out, renderStatusLine("Credentials", statusError, err.Error(), colorize))
		healthy = false
	} else {
		fmt.Fprintln(out, renderStatusLine("Credentials", statusOK, "", colorize))
	}
	if _, err := cfg.ActivePrompt(); err != nil {
		fmt.Fprintln(out, renderStatusLine("Prompt", statusError, err.Error(), colorize))
		healthy = false
	} else {
		fmt.Fprintln(out, renderStatusLine("Prompt", statusOK, "", colorize))
	}

	fmt.Fprintln(out)
	printSection(out, "Directories", statusInfo, colorize)
	fmt.Fprintln(out, renderDirStatus("Input", cfg.Paths.Input, colorize))
	fmt.Fprintln(out, renderDirStatus("Audio", cfg.AudioDir(), colorize))
	fmt.Fprintln(out, renderDirStatus("Analysis", cfg.AnalysisDir(), colorize))
	fmt.Fprintln(out, renderDirStatus("Export", cfg.ExportDir(), colorize))

	return healthy
}
