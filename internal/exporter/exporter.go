// Package exporter renders stored analyses as Word documents.
package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/needle-flow/internal/cache"
	"github.com/nguyentantai21042004/needle-flow/internal/logger"
)

// Exporter writes one .docx per stored analysis.
type Exporter interface {
	Export(ctx context.Context, entry cache.Entry) (string, error)
	ExportAll(ctx context.Context, entries []cache.Entry) ([]string, error)
}

type implExporter struct {
	dir    string
	logger logger.Logger
}

// New creates an Exporter writing into dir.
func New(dir string, log logger.Logger) Exporter {
	return &implExporter{dir: dir, logger: log}
}

func (e *implExporter) Export(ctx context.Context, entry cache.Entry) (string, error) {
	content, err := os.ReadFile(entry.AnalysisPath)
	if err != nil {
		return "", fmt.Errorf("read analysis: %w", err)
	}
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	base := filepath.Base(entry.AnalysisPath)
	outPath := filepath.Join(e.dir, strings.TrimSuffix(base, filepath.Ext(base))+".docx")

	if err := markdownToDocx(entry.AudioFile, string(content), outPath); err != nil {
		return "", fmt.Errorf("write docx: %w", err)
	}
	e.logger.Info(ctx, "Exported %s -> %s", entry.AudioFile, outPath)
	return outPath, nil
}

// ExportAll keeps going past individual failures and returns the first error seen.
func (e *implExporter) ExportAll(ctx context.Context, entries []cache.Entry) ([]string, error) {
	var (
		paths    []string
		firstErr error
	)
	for _, entry := range entries {
		path, err := e.Export(ctx, entry)
		if err != nil {
			e.logger.Error(ctx, "Failed to export %s: %v", entry.AudioFile, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		paths = append(paths, path)
	}
	return paths, firstErr
}
