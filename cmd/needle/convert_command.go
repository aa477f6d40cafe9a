package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/needle-flow/internal/config"
	"github.com/nguyentantai21042004/needle-flow/internal/processor"
	"github.com/nguyentantai21042004/needle-flow/internal/transcoder"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [dir]",
		Short: "Convert every video in a directory to a size-capped MP3",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(cfg *config.Config) error {
				dir := cfg.Paths.Input
				if len(args) == 1 {
					dir = args[0]
				}

				proc, err := ctx.newProcessor(cmd.Context(), cmd, processor.Options{}, false)
				if err != nil {
					return err
				}
				report, err := proc.ConvertDirectory(cmd.Context(), dir)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(report.Results) == 0 {
					fmt.Fprintf(out, "No videos found in %s\n", dir)
					return nil
				}
				fmt.Fprintln(out, renderConvertReport(report, shouldColorize(out)))
				return nil
			})
		},
	}
}

func renderConvertReport(report processor.ConvertReport, colorize bool) string {
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		bitrate := "-"
		if res.BitrateKbps > 0 {
			bitrate = strconv.Itoa(res.BitrateKbps) + "k"
		}
		detail := filepath.Base(res.AudioPath)
		if res.Err != nil {
			detail = res.Err.Error()
		} else if res.AudioPath == "" {
			detail = "-"
		}
		status := paint(resultKind(res.Status), res.Status.String(), colorize)
		rows = append(rows, []string{filepath.Base(res.Video), status, bitrate, detail})
	}
	summary := fmt.Sprintf("%d converted, %d existing, %d without audio, %d failed",
		report.Count(transcoder.StatusConverted),
		report.Count(transcoder.StatusExisting),
		report.Count(transcoder.StatusNoAudio),
		report.Count(transcoder.StatusFailed))
	return renderTable(convertColumns, rows, summary)
}
