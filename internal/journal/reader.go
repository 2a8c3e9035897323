package journal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/joeatwork/coach/internal/entry"
	"github.com/joeatwork/coach/internal/files"
	"github.com/joeatwork/coach/internal/logging"
)

// Reader loads entries from the files.Manager layout.
type Reader struct {
	manager *files.Manager
	codec   entry.Codec
	logger  *log.Logger
}

// NewReader wires a reader using the shared files.Manager. A nil logger
// discards output.
func NewReader(manager *files.Manager, logger *log.Logger) *Reader {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Reader{manager: manager, codec: entry.Coach, logger: logger}
}

// Entry returns the parsed entry for date.
func (r *Reader) Entry(ctx context.Context, date time.Time) (*entry.Entry, error) {
	if r == nil || r.manager == nil {
		return nil, errors.New("reader not initialized with file manager")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.load(r.manager.EntryPath(date))
}

// Previous returns the nearest entry before date, looking back at most
// lookback days, along with the day it belongs to.
func (r *Reader) Previous(ctx context.Context, date time.Time, lookback int) (*entry.Entry, time.Time, error) {
	if r == nil || r.manager == nil {
		return nil, time.Time{}, errors.New("reader not initialized with file manager")
	}
	for days := 1; days <= lookback; days++ {
		if err := ctx.Err(); err != nil {
			return nil, time.Time{}, err
		}
		day := date.AddDate(0, 0, -days)
		e, err := r.load(r.manager.EntryPath(day))
		if err != nil {
			if errors.Is(err, ErrEntryNotFound) {
				continue
			}
			return nil, time.Time{}, err
		}
		return e, day, nil
	}
	return nil, time.Time{}, ErrEntryNotFound
}

func (r *Reader) load(path string) (*entry.Entry, error) {
	text, err := r.manager.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	r.logger.Debug("loaded entry", "path", path, "bytes", len(text))

	e, err := r.codec.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// Dated pairs an entry with the day it was filed under.
type Dated struct {
	Date  time.Time
	Entry *entry.Entry
}

// Between returns the entries from start through end inclusive, oldest
// first. Days without a file are skipped.
func (r *Reader) Between(ctx context.Context, start, end time.Time) ([]Dated, error) {
	if r == nil || r.manager == nil {
		return nil, errors.New("reader not initialized with file manager")
	}
	if end.Before(start) {
		start, end = end, start
	}

	var found []Dated
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := r.load(r.manager.EntryPath(day))
		if err != nil {
			if errors.Is(err, ErrEntryNotFound) {
				continue
			}
			return nil, err
		}
		found = append(found, Dated{Date: day, Entry: e})
	}
	return found, nil
}
