package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-stacks-go/internal/lint"
	"github.com/lex00/wetwire-stacks-go/manifest"
	"github.com/lex00/wetwire-stacks-go/stack"
)

// newWatchCmd creates the "watch" subcommand for auto-rebuilding on
// manifest changes.
func newWatchCmd() *cobra.Command {
	var (
		lintOnly     bool
		debounce     time.Duration
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "watch <manifest>",
		Short: "Auto-rebuild on manifest changes",
		Long: `Watch monitors the manifest for changes and automatically rebuilds.

The watch command:
- Monitors the manifest file for changes
- Runs lint on each change
- Rebuilds if lint passes (unless --lint-only)
- Debounces rapid changes to avoid excessive rebuilds

Examples:
    wetwire-stacks watch stack.yaml
    wetwire-stacks watch stack.yaml --lint-only
    wetwire-stacks watch stack.yaml -o template.json --debounce 1s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], watchOptions{
				lintOnly:     lintOnly,
				debounce:     debounce,
				outputFormat: outputFormat,
				outputFile:   outputFile,
			})
		},
	}

	cmd.Flags().BoolVar(&lintOnly, "lint-only", false, "Only run lint, skip build")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format for build: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for build (default: stdout)")

	return cmd
}

type watchOptions struct {
	lintOnly     bool
	debounce     time.Duration
	outputFormat string
	outputFile   string
}

// runWatch monitors the manifest and runs lint/build on changes. Editors
// often replace files on save, so the manifest's directory is watched and
// events are filtered by name.
func runWatch(manifestPath string, opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	absPath, err := filepath.Abs(manifestPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}
	fmt.Printf("Watching: %s\n", absPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial lint/build...")
	lintAndBuild(absPath, opts)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Name != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			// Debounce: reset timer on each change.
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Printf("\n[%s] Change detected, rebuilding...\n", time.Now().Format("15:04:05"))
			lintAndBuild(absPath, opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// lintAndBuild runs lint and optionally build on the manifest. Failures are
// reported but never stop the watch loop.
func lintAndBuild(manifestPath string, opts watchOptions) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load failed: %v\n", err)
		return
	}

	result := lint.Lint(m, lint.Options{})
	if result.Success {
		fmt.Println("Lint: OK")
	} else {
		for _, issue := range result.Issues {
			fmt.Printf("Lint: %s [%s] %s: %s\n", issue.Rule, issue.Severity, issue.Component, issue.Message)
		}
	}

	if opts.lintOnly {
		return
	}

	s, err := manifest.Build(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
		return
	}
	tmpl, err := s.Template()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
		return
	}

	var data []byte
	switch opts.outputFormat {
	case "yaml":
		data, err = stack.ToYAML(tmpl)
	default:
		data, err = stack.ToJSON(tmpl)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
		return
	}

	if opts.outputFile == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(opts.outputFile, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
		return
	}
	fmt.Printf("Build: wrote %s (%d resources)\n", opts.outputFile, len(tmpl.Resources))
}
