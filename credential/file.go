package credential

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileConfig configures a file-backed token credential.
type FileConfig struct {
	// Path of the file holding the token. Leading and trailing whitespace
	// is trimmed on read.
	Path string
	// Logger for reload events. If nil, logs are discarded.
	Logger *slog.Logger
}

// File is a token credential backed by a file that is rewritten out of
// band, such as a projected service account token. The file's parent
// directory is watched so atomic rename-style updates are observed, and
// each successful read publishes a fresh immutable snapshot.
type File struct {
	path    string
	log     *slog.Logger
	watcher *fsnotify.Watcher
	current atomic.Pointer[fetchedToken]
	done    chan struct{}
}

// NewFile reads the token file once and starts watching it for changes.
// Callers must Close the credential when done with it.
func NewFile(cfg FileConfig) (*File, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	f := &File{
		path: cfg.Path,
		log:  log,
		done: make(chan struct{}),
	}
	if err := f.reload(); err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("credential: watch token file: %w", err)
	}
	// Watch the directory rather than the file so that writers replacing
	// the file by rename are still observed.
	if err := watcher.Add(filepath.Dir(cfg.Path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("credential: watch token file: %w", err)
	}
	f.watcher = watcher
	go f.watch()
	return f, nil
}

func (f *File) watch() {
	base := filepath.Base(f.path)
	for {
		select {
		case <-f.done:
			return
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if err := f.reload(); err != nil {
				f.log.Warn("token.file.reload.fail", slog.String("path", f.path), slog.String("err", err.Error()))
				continue
			}
			f.log.Debug("token.file.reload", slog.String("path", f.path))
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.log.Warn("token.file.watch.fail", slog.String("path", f.path), slog.String("err", err.Error()))
		}
	}
}

func (f *File) reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("credential: read token file: %w", err)
	}
	f.current.Store(&fetchedToken{token: bytes.TrimSpace(data)})
	return nil
}

func (f *File) AuthStep() (time.Duration, error) { return 0, nil }

// FetchToken returns the most recently read snapshot of the file.
func (f *File) FetchToken() (FetchedToken, error) {
	return f.current.Load(), nil
}

// Close stops watching the token file.
func (f *File) Close() error {
	close(f.done)
	return f.watcher.Close()
}
