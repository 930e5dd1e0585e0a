package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fieldtuner/fieldtuner/internal/config/store"
	"github.com/fieldtuner/fieldtuner/internal/config/watcher"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Report external changes to the profile until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext(flagProfile, flagVerbose, true)
			if err != nil {
				return err
			}

			w, err := watcher.New(ctx.Store.SourcePath(), watcher.WithLogger(ctx.Log))
			if err != nil {
				return err
			}
			defer w.Close()

			signals := make(chan os.Signal, 1)
			signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "watching %s (ctrl-c to stop)\n", w.Path())

			for {
				select {
				case <-signals:
					return nil
				case ch, ok := <-w.Changes():
					if !ok {
						return nil
					}
					if ch.Removed {
						fmt.Fprintf(out, "%s profile removed\n", ch.Time.Format("15:04:05"))
						continue
					}
					before := snapshot(ctx.Store)
					if err := ctx.Store.Reload(); err != nil {
						ctx.Log.Warn("reload failed: %v", err)
						continue
					}
					diffs := diffKeys(before, ctx.Store)
					if len(diffs) == 0 {
						fmt.Fprintf(out, "%s profile rewritten, no value changes\n", ch.Time.Format("15:04:05"))
						continue
					}
					for _, d := range diffs {
						fmt.Fprintf(out, "%s %s: %q -> %q\n", ch.Time.Format("15:04:05"), d.key, d.old, d.new)
					}
				}
			}
		},
	}
}

type keyDiff struct {
	key string
	old string
	new string
}

// snapshot copies the store's current entries.
func snapshot(s *store.Store) map[string]string {
	out := make(map[string]string, s.Len())
	for _, key := range s.Keys() {
		val, _ := s.Lookup(key)
		out[key] = val
	}
	return out
}

// diffKeys compares a snapshot against the store's reloaded state, in the
// store's key order, with removed keys at the end.
func diffKeys(before map[string]string, s *store.Store) []keyDiff {
	var diffs []keyDiff
	for _, key := range s.Keys() {
		val, _ := s.Lookup(key)
		old, existed := before[key]
		if !existed || old != val {
			diffs = append(diffs, keyDiff{key: key, old: old, new: val})
		}
		delete(before, key)
	}

	removed := make([]string, 0, len(before))
	for key := range before {
		removed = append(removed, key)
	}
	sort.Strings(removed)
	for _, key := range removed {
		diffs = append(diffs, keyDiff{key: key, old: before[key]})
	}
	return diffs
}
