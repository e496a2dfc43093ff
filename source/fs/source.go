// Package fs provides a file-backed Source with change watching.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/yacchi/dedokoro/source"
	"github.com/yacchi/dedokoro/watcher"
)

// Source reads a configuration file from the local filesystem.
//
// Subscribe watches the file's parent directory rather than the file
// itself: editors and deployment tools replace files by rename, and a
// watch on the old inode goes quiet after the first change.
type Source struct {
	path string
}

var (
	_ source.Source    = (*Source)(nil)
	_ source.Watchable = (*Source)(nil)
)

// New returns a Source for the file at path.
func New(path string) *Source {
	return &Source{path: filepath.Clean(path)}
}

// Path returns the cleaned file path.
func (s *Source) Path() string {
	return s.path
}

// Describe returns the file path.
func (s *Source) Describe() string {
	return s.path
}

// Load reads the file. A missing file is reported through
// source.ErrNotExist.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", source.ErrNotExist, s.path)
		}
		return nil, err
	}
	return data, nil
}

// Subscribe starts watching the file for modification, creation, and
// replacement. Notifications are event-only (nil data); subscribers
// re-read the file via Load. The watch keeps running if the file is
// temporarily absent, as long as its directory exists.
func (s *Source) Subscribe(ctx context.Context, notify watcher.NotifyFunc) (watcher.StopFunc, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(s.path)); err != nil {
		fw.Close()
		return nil, err
	}

	name := filepath.Base(s.path)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				notify(nil, nil)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				notify(nil, err)
			}
		}
	}()

	stop := func(ctx context.Context) error {
		err := fw.Close()
		wg.Wait()
		return err
	}
	return stop, nil
}
