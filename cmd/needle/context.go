package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/needle-flow/internal/analyzer"
	"github.com/nguyentantai21042004/needle-flow/internal/cache"
	"github.com/nguyentantai21042004/needle-flow/internal/config"
	"github.com/nguyentantai21042004/needle-flow/internal/logger"
	"github.com/nguyentantai21042004/needle-flow/internal/processor"
	"github.com/nguyentantai21042004/needle-flow/internal/transcoder"
	"github.com/nguyentantai21042004/needle-flow/internal/workspace"
	"github.com/nguyentantai21042004/needle-flow/pkg/executor"
)

const defaultConfigPath = "config.yaml"

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     logger.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensureConfig loads the configuration once. An explicit --config must exist;
// the default config.yaml may be absent.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}

		var cfg *config.Config
		var err error
		if path == "" {
			cfg, err = config.LoadOrDefault(defaultConfigPath)
		} else {
			cfg, err = config.Load(path)
		}
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerFor builds the logger from the loaded config. Logs go to stderr so
// command output on stdout stays clean.
func (c *commandContext) loggerFor(cmd *cobra.Command) logger.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || cfg == nil {
			c.logger = logger.Nop()
			return
		}
		log, err := logger.NewWithOptions(logger.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			File:   cfg.Logging.File,
			Output: cmd.ErrOrStderr(),
		})
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "log file unavailable: %v\n", err)
		}
		c.logger = log
	})
	return c.logger
}

func (c *commandContext) newTranscoder(cfg *config.Config, log logger.Logger) transcoder.Transcoder {
	return transcoder.New(transcoder.OptionsFromConfig(cfg), executor.New(), log)
}

// newProcessor wires the transcoder, cache and, when withAnalyzer is set, the
// Gen AI analyzer.
func (c *commandContext) newProcessor(ctx context.Context, cmd *cobra.Command, opts processor.Options, withAnalyzer bool) (processor.Processor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log := c.loggerFor(cmd)

	var an analyzer.Analyzer
	if withAnalyzer {
		an, err = analyzer.New(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("create analyzer: %w", err)
		}
	}

	return processor.New(opts, c.newTranscoder(cfg, log), cache.New(cfg.AnalysisDir()), an, log), nil
}

// withWorkspace prepares the output directories and holds the writer lock
// while fn runs.
func (c *commandContext) withWorkspace(fn func(cfg *config.Config) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	unlock, err := workspace.Lock(cfg.Paths.Output)
	if err != nil {
		return err
	}
	defer unlock()

	if err := workspace.Ensure(cfg); err != nil {
		return err
	}
	return fn(cfg)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func printSection(out io.Writer, title string, kind statusKind, colorize bool) {
	for _, line := range renderSectionHeader(title, kind, colorize) {
		fmt.Fprintln(out, line)
	}
}
