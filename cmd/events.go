package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/linkrank/internal/telemetry"
)

var eventsCmd = &cobra.Command{
	Use:   "events <file>",
	Short: "View a JSONL telemetry file written by rank --events",
	Long: `Reads and formats the JSONL telemetry events of one or more rank runs.

With --follow (-f), watches the file for new events (like tail -f).`,
	Args: cobra.ExactArgs(1),
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	follow, _ := cmd.Flags().GetBool("follow")
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("events: open %s: %w", path, err)
	}
	defer f.Close()

	// Print all existing events.
	tail := &eventTail{r: bufio.NewReader(f)}
	if err := tail.drain(cmd.OutOrStdout(), !follow); err != nil {
		return fmt.Errorf("events: read %s: %w", path, err)
	}

	if !follow {
		return nil
	}
	return tailFollow(cmd.Context(), cmd.OutOrStdout(), tail, path)
}

// eventTail reads JSONL lines from a file that may still be growing.
type eventTail struct {
	r       *bufio.Reader
	partial string // bytes of a line whose newline has not arrived yet
}

// drain prints every complete line currently readable. A trailing line
// without a newline is held back unless final is set.
func (t *eventTail) drain(w io.Writer, final bool) error {
	for {
		chunk, err := t.r.ReadString('\n')
		t.partial += chunk
		if err == io.EOF {
			if final {
				printLine(w, t.partial)
				t.partial = ""
			}
			return nil
		}
		if err != nil {
			return err
		}
		printLine(w, t.partial)
		t.partial = ""
	}
}

func printLine(w io.Writer, line string) {
	line = strings.TrimSpace(line)
	if line != "" {
		printEvent(w, line)
	}
}

// tailFollow watches the file for new data using fsnotify and prints new
// events until ctx is canceled.
func tailFollow(ctx context.Context, w io.Writer, tail *eventTail, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("events: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("events: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			if err := tail.drain(w, false); err != nil {
				return fmt.Errorf("events: read %s: %w", path, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("events: watch %s: %w", path, err)
		}
	}
}

// printEvent decodes a JSONL line and prints a human-readable representation.
func printEvent(w io.Writer, line string) {
	var evt telemetry.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		fmt.Fprintf(w, "??? %s\n", line)
		return
	}

	ts := evt.Timestamp.Format(time.TimeOnly)
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", ts))
	parts = append(parts, evt.Kind)

	if evt.RunID != "" {
		parts = append(parts, fmt.Sprintf("run=%s", shortRunID(evt.RunID)))
	}
	if evt.Source != "" {
		parts = append(parts, fmt.Sprintf("source=%s", evt.Source))
	}
	if evt.Data != nil {
		if m, ok := evt.Data.(map[string]any); ok {
			parts = append(parts, formatDataMap(m))
		} else {
			data, _ := json.Marshal(evt.Data)
			parts = append(parts, string(data))
		}
	}

	fmt.Fprintln(w, strings.Join(parts, " "))
}

// shortRunID keeps the first uuid group, enough to tell runs apart.
func shortRunID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// formatDataMap formats a data map as key=value pairs sorted by key.
func formatDataMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, m[k])
	}
	return b.String()
}
