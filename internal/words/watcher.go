package words

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/carillon/internal/log"
)

// Watch invalidates the source's cached pool whenever its backing file
// changes, so edits to a local word list show up on the next quiz run.
// It returns immediately; the watch goroutine stops when ctx is canceled.
// URL sources are not watchable and return nil without starting anything.
func Watch(ctx context.Context, s *Source) error {
	if isURL(s.Location()) {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory, not the file: editors replace files on save,
	// which drops a direct file watch.
	dir := filepath.Dir(s.Location())
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	target := filepath.Clean(s.Location())
	log.SafeGo("words.watch", func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					log.Debug(log.CatWords, "word list changed, invalidating cache",
						"path", event.Name, "op", event.Op.String())
					s.Invalidate()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn(log.CatWords, "word list watcher error", "error", err)
			}
		}
	})
	return nil
}
