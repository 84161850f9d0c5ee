package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher monitors a directory for new caption files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one caption file dropped into the watched directory.
type EventHandler func(ctx context.Context, filePath string) error

// settleDelay gives the writer time to finish before the file is read.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        zerolog.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// New creates a Watcher over inputDir with concurrency control.
func New(inputDir string, handler EventHandler, log zerolog.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inputDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		inputDir:      inputDir,
		handler:       handler,
		logger:        log,
		watcher:       fsw,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}

// Start blocks until ctx is cancelled, dispatching a handler call for every
// caption file created under the watched directory.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info().
		Str("dir", w.inputDir).
		Int("maxConcurrent", w.maxConcurrent).
		Msg("caption watcher started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("waiting for in-flight files to finish")
			w.wg.Wait()
			w.logger.Info().Msg("caption watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isCaptionFile(event.Name) {
				w.logger.Debug().Str("path", event.Name).Msg("ignoring non-caption file")
				continue
			}

			w.logger.Info().Str("path", event.Name).Msg("new caption file detected")

			// The create event fires before the writer is done.
			time.Sleep(settleDelay)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, filePath); err != nil {
						w.logger.Error().Err(err).Str("path", filePath).Msg("failed to process caption file")
					}
				}(event.Name)
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

// Stop closes the underlying file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isCaptionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt", ".srt", ".xml", ".srv1":
		return true
	}
	return false
}
