package cli

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/core/ingest"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and upload new or changed files",
	Long: `watch uploads every supported file that is created or written in the
given directory. Write bursts are debounced per path so a file being
copied in is uploaded once, after it settles.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workspace, err := requireWorkspace()
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(args[0]); err != nil {
			return fmt.Errorf("watch %s: %w", args[0], err)
		}

		ctx := cmd.Context()
		log := application.Logger

		submit := func(path string) {
			if _, err := application.Session.Submit(ctx, workspace, &ingest.LocalFileSource{Path: path}); err != nil {
				log.Warn("watched file rejected", zap.String("path", path), zap.Error(err))
			}
		}

		// One debouncer per path; a rapid write burst collapses into a
		// single upload once the file goes quiet.
		debouncers := make(map[string]*ingest.Debouncer)
		defer func() {
			for _, d := range debouncers {
				d.Stop()
			}
		}()

		fmt.Printf("Watching %s for workspace %s. Press Ctrl-C to stop.\n", args[0], workspace)
		for {
			select {
			case <-ctx.Done():
				application.Session.Close()
				return application.Session.Wait()
			case event, ok := <-watcher.Events:
				if !ok {
					return application.Session.Wait()
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if !ingest.SupportedFile(event.Name) {
					continue
				}
				d, exists := debouncers[event.Name]
				if !exists {
					d = ingest.NewDebouncer(application.Config.URLDebounce, submit)
					debouncers[event.Name] = d
				}
				d.Update(event.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return application.Session.Wait()
				}
				log.Error("watcher error", zap.Error(err))
			}
		}
	},
}
