package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/joeatwork/coach/internal/entry"
	"github.com/joeatwork/coach/internal/files"
	"github.com/joeatwork/coach/internal/logging"
)

// Writer creates and rewrites entry files.
type Writer struct {
	manager *files.Manager
	reader  *Reader
	codec   entry.Codec
	logger  *log.Logger
}

// NewWriter wires the dependencies required to manipulate entry files.
func NewWriter(manager *files.Manager, logger *log.Logger) *Writer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Writer{
		manager: manager,
		reader:  NewReader(manager, logger),
		codec:   entry.Coach,
		logger:  logger,
	}
}

// Create writes e as the entry for date. It never overwrites.
func (w *Writer) Create(ctx context.Context, date time.Time, e *entry.Entry) error {
	if w == nil || w.manager == nil {
		return errors.New("writer not initialized with file manager")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := w.manager.EntryPath(date)
	if err := w.manager.CreateNew(path, w.codec.Render(e)); err != nil {
		if errors.Is(err, files.ErrExists) {
			return fmt.Errorf("%s: %w", path, ErrEntryExists)
		}
		return err
	}
	w.logger.Debug("created entry", "path", path)
	return nil
}

// Overwrite replaces whatever is stored for date with e.
func (w *Writer) Overwrite(ctx context.Context, date time.Time, e *entry.Entry) error {
	if w == nil || w.manager == nil {
		return errors.New("writer not initialized with file manager")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := w.manager.EntryPath(date)
	if err := w.manager.Replace(path, w.codec.Render(e)); err != nil {
		return err
	}
	w.logger.Debug("replaced entry", "path", path)
	return nil
}

// Update loads the entry for date, applies mutate, and writes the result back
// atomically. Nothing is written if mutate fails.
func (w *Writer) Update(ctx context.Context, date time.Time, mutate func(*entry.Entry) error) (*entry.Entry, error) {
	if w == nil || w.manager == nil {
		return nil, errors.New("writer not initialized with file manager")
	}

	e, err := w.reader.Entry(ctx, date)
	if err != nil {
		return nil, err
	}
	if err := mutate(e); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := w.manager.EntryPath(date)
	if err := w.manager.Replace(path, w.codec.Render(e)); err != nil {
		return nil, err
	}
	w.logger.Debug("updated entry", "path", path)
	return e, nil
}
