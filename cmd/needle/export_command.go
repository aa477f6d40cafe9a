package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/needle-flow/internal/cache"
	"github.com/nguyentantai21042004/needle-flow/internal/config"
	"github.com/nguyentantai21042004/needle-flow/internal/exporter"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export every stored analysis as a Word document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(cfg *config.Config) error {
				entries, err := cache.New(cfg.AnalysisDir()).ListAll()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintf(out, "No analyses stored in %s\n", cfg.AnalysisDir())
					return nil
				}

				paths, err := exporter.New(cfg.ExportDir(), ctx.loggerFor(cmd)).ExportAll(cmd.Context(), entries)
				for _, p := range paths {
					fmt.Fprintln(out, p)
				}
				if err != nil {
					return fmt.Errorf("export analyses: %w", err)
				}
				return nil
			})
		},
	}
}
