package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/needle-flow/internal/cache"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			entries, err := cache.New(cfg.AnalysisDir()).ListAll()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No analyses stored in %s\n", cfg.AnalysisDir())
				return nil
			}
			fmt.Fprintln(out, renderEntries(entries))
			return nil
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <audio>",
		Short: "Print the stored analysis for an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			found, content, err := cache.New(cfg.AnalysisDir()).Load(args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no analysis stored for %s", filepath.Base(args[0]))
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
}

func renderEntries(entries []cache.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		size, modified := "-", "-"
		if info, err := os.Stat(e.AnalysisPath); err == nil {
			size = humanize.Bytes(uint64(info.Size()))
			modified = humanize.Time(info.ModTime())
		}
		rows = append(rows, []string{e.AudioFile, filepath.Base(e.AnalysisPath), size, modified})
	}
	return renderTable(entryColumns, rows, fmt.Sprintf("%d analyses", len(entries)))
}
