package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/needle-flow/internal/logger"
)

// New creates a Watcher on inputDir. settleDelay is how long a new file is
// left alone before handling, so copies can finish.
func New(inputDir string, handler EventHandler, log logger.Logger, settleDelay time.Duration) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir:    inputDir,
		handler:     handler,
		logger:      log,
		watcher:     watcher,
		settleDelay: settleDelay,
	}, nil
}
