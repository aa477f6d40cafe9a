package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/needle-flow/internal/logger"
	"github.com/nguyentantai21042004/needle-flow/internal/transcoder"
)

type implWatcher struct {
	inputDir    string
	handler     EventHandler
	logger      logger.Logger
	watcher     *fsnotify.Watcher
	settleDelay time.Duration
}

// Start monitors the input directory and hands each new video to the handler.
// Videos are handled one at a time, in arrival order.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.inputDir)
	w.logger.Info(ctx, "Supported formats: %v", transcoder.VideoExtensions)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}
	if !transcoder.IsVideoFile(event.Name) {
		w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
		return
	}

	w.logger.Info(ctx, "New video detected: %s", event.Name)

	select {
	case <-time.After(w.settleDelay):
	case <-ctx.Done():
		return
	}

	if err := w.handler(ctx, event.Name); err != nil {
		w.logger.Error(ctx, "Failed to process %s: %v", event.Name, err)
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
